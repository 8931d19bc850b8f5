package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultTimeoutSeconds = 30

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MQTT
	MQTTBroker        string
	MQTTClientID      string
	MQTTUsername      string
	MQTTPassword      string
	MQTTInterfaceName string
	MQTTQoS           byte

	// Bridge identity used for the connection topic and the last will
	BridgeManufacturer string
	BridgeSerialNumber string

	// Application
	HTTPPort       string
	LogLevel       string
	StrictDecode   bool
	TimeoutSeconds int
	Timeout        time.Duration
}

// Load .env 파일(선택)과 환경 변수에서 설정 로드
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	timeoutSeconds, _ := strconv.Atoi(getEnv("TIMEOUT_SECONDS", "30"))
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}
	qos, _ := strconv.Atoi(getEnv("MQTT_QOS", "0"))
	if qos < 0 || qos > 2 {
		qos = 0
	}
	strict, _ := strconv.ParseBool(getEnv("STRICT_DECODE", "false"))

	return &Config{
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "vda5050_bridge"),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            redisDB,
		MQTTBroker:         getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID:       getEnv("MQTT_CLIENT_ID", "VDA5050_BRIDGE"),
		MQTTUsername:       getEnv("MQTT_USERNAME", ""),
		MQTTPassword:       getEnv("MQTT_PASSWORD", ""),
		MQTTInterfaceName:  getEnv("MQTT_INTERFACE_NAME", "uagv"),
		MQTTQoS:            byte(qos),
		BridgeManufacturer: getEnv("BRIDGE_MANUFACTURER", "bridge"),
		BridgeSerialNumber: getEnv("BRIDGE_SERIAL_NUMBER", "master-control"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StrictDecode:       strict,
		TimeoutSeconds:     timeoutSeconds,
		Timeout:            time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
