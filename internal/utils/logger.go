package utils

import (
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.SetFormatter(&logrus.JSONFormatter{})
}

func SetupLogger(level string) {
	switch level {
	case "trace":
		Logger.SetLevel(logrus.TraceLevel)
	case "debug":
		Logger.SetLevel(logrus.DebugLevel)
	case "info":
		Logger.SetLevel(logrus.InfoLevel)
	case "warn":
		Logger.SetLevel(logrus.WarnLevel)
	case "error":
		Logger.SetLevel(logrus.ErrorLevel)
	default:
		Logger.SetLevel(logrus.InfoLevel)
	}
}

// VehicleFields 차량 식별 필드 생성
func VehicleFields(manufacturer, serialNumber string) logrus.Fields {
	return logrus.Fields{
		"manufacturer": manufacturer,
		"serialNumber": serialNumber,
	}
}

// Component 컴포넌트 이름이 붙은 로그 엔트리 반환
func Component(name string) *logrus.Entry {
	return Logger.WithField("component", name)
}
