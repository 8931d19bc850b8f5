package messaging

import (
	"fmt"

	"vda5050-bridge/internal/metrics"
	"vda5050-bridge/internal/utils"
	"vda5050-bridge/internal/vda5050"
)

// Publisher VDA5050 메시지 발행자
type Publisher struct {
	client  Client
	topics  Topics
	qos     byte
	metrics *metrics.Metrics
}

// NewPublisher 새 발행자 생성
func NewPublisher(client Client, topics Topics, qos byte, m *metrics.Metrics) *Publisher {
	return &Publisher{
		client:  client,
		topics:  topics,
		qos:     qos,
		metrics: m,
	}
}

// PublishOrder 오더 메시지 발행. 인코딩된 payload 반환
func (p *Publisher) PublishOrder(order *vda5050.Order) ([]byte, error) {
	payload, err := vda5050.EncodeOrder(order)
	if err != nil {
		return nil, err
	}
	return payload, p.publish(KindOrder, order.Header, payload)
}

// PublishInstantActions 즉시 액션 메시지 발행
func (p *Publisher) PublishInstantActions(actions *vda5050.InstantActions) ([]byte, error) {
	payload, err := vda5050.EncodeInstantActions(actions)
	if err != nil {
		return nil, err
	}
	return payload, p.publish(KindInstantActions, actions.Header, payload)
}

func (p *Publisher) publish(kind Kind, header vda5050.Header, payload []byte) error {
	topic := p.topics.Topic(kind, header.Manufacturer, header.SerialNumber)
	if err := p.client.Publish(topic, p.qos, false, payload); err != nil {
		utils.Logger.Errorf("❌ Failed to publish %s to %s: %v", kind, topic, err)
		return fmt.Errorf("publish %s: %w", kind, err)
	}

	p.metrics.Published(string(kind))
	utils.Logger.WithFields(utils.VehicleFields(header.Manufacturer, header.SerialNumber)).
		Infof("📤 Published %s (headerId %d)", kind, header.HeaderID)
	return nil
}
