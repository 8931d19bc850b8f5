package messaging

import (
	"context"
	"fmt"
	"time"

	"vda5050-bridge/internal/metrics"
	"vda5050-bridge/internal/utils"
	"vda5050-bridge/internal/vda5050"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

// Handler 디코딩된 메시지 처리 인터페이스
type Handler interface {
	HandleOrder(ctx context.Context, msg *vda5050.Order) error
	HandleInstantActions(ctx context.Context, msg *vda5050.InstantActions) error
	HandleState(ctx context.Context, msg *vda5050.State) error
	HandleVisualization(ctx context.Context, msg *vda5050.Visualization) error
	HandleConnection(ctx context.Context, msg *vda5050.Connection) error
	HandleFactsheet(ctx context.Context, msg *vda5050.Factsheet) error
}

// Router 토픽으로 메시지 종류를 판별해 디코딩 후 Handler 에 전달
type Router struct {
	topics     Topics
	handler    Handler
	metrics    *metrics.Metrics
	decodeOpts []vda5050.DecodeOption
	timeout    time.Duration
}

// NewRouter 새 메시지 라우터 생성
func NewRouter(topics Topics, handler Handler, m *metrics.Metrics, strict bool, timeout time.Duration) *Router {
	utils.Logger.Infof("🏗️ CREATING Message Router")

	r := &Router{
		topics:  topics,
		handler: handler,
		metrics: m,
		timeout: timeout,
	}
	if strict {
		r.decodeOpts = append(r.decodeOpts, vda5050.Strict())
	}

	utils.Logger.Infof("✅ Message Router CREATED")
	return r
}

// RouteMessage MQTT 콜백 진입점. 에러는 로그로만 남김
func (r *Router) RouteMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.Route(ctx, msg.Topic(), msg.Payload()); err != nil {
		utils.Logger.WithField("topic", msg.Topic()).Warnf("⚠️ Message dropped: %v", err)
	}
}

// Route 토픽과 payload 를 해석해 Handler 호출
func (r *Router) Route(ctx context.Context, topic string, payload []byte) error {
	kind, manufacturer, serialNumber, err := r.topics.Parse(topic)
	if err != nil {
		return err
	}

	log := utils.Logger.WithFields(utils.VehicleFields(manufacturer, serialNumber)).WithField("kind", kind)

	decoded, err := DecodeMessage(kind, payload, r.decodeOpts...)
	if err != nil {
		r.metrics.DecodeFailed(string(kind), err)
		path, _ := vda5050.ErrorPath(err)
		log.WithFields(logrus.Fields{
			"reason": vda5050.ErrorKind(err),
			"path":   path,
		}).Errorf("❌ Failed to decode %s: %v", kind, err)
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	r.metrics.Decoded(string(kind))

	if header, ok := HeaderOf(decoded); ok {
		if header.Manufacturer != manufacturer || header.SerialNumber != serialNumber {
			log.Warnf("⚠️ Header identity %s/%s does not match topic", header.Manufacturer, header.SerialNumber)
		}
	}

	return r.dispatch(ctx, decoded)
}

func (r *Router) dispatch(ctx context.Context, decoded any) error {
	switch m := decoded.(type) {
	case *vda5050.Order:
		return r.handler.HandleOrder(ctx, m)
	case *vda5050.InstantActions:
		return r.handler.HandleInstantActions(ctx, m)
	case *vda5050.State:
		return r.handler.HandleState(ctx, m)
	case *vda5050.Visualization:
		return r.handler.HandleVisualization(ctx, m)
	case *vda5050.Connection:
		return r.handler.HandleConnection(ctx, m)
	case *vda5050.Factsheet:
		return r.handler.HandleFactsheet(ctx, m)
	default:
		return fmt.Errorf("no handler for %T", decoded)
	}
}
