package messaging

import (
	"fmt"
	"sync"

	"vda5050-bridge/internal/utils"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Subscriber MQTT 구독 관리자
type Subscriber struct {
	client Client
	router *Router
	topics Topics
	qos    byte
	kinds  []Kind

	resubscribe sync.Once
}

// NewSubscriber 새 구독자 생성. kinds 가 비어 있으면 차량 발행 토픽 전체 구독
func NewSubscriber(client Client, router *Router, topics Topics, qos byte, kinds ...Kind) *Subscriber {
	utils.Logger.Infof("🏗️ CREATING MQTT Subscriber")

	if len(kinds) == 0 {
		kinds = InboundKinds
	}

	subscriber := &Subscriber{
		client: client,
		router: router,
		topics: topics,
		qos:    qos,
		kinds:  kinds,
	}

	utils.Logger.Infof("✅ MQTT Subscriber CREATED")
	return subscriber
}

// SubscribeAll 모든 필요한 토픽 구독. 성공하면 재연결 때마다 다시 구독
func (s *Subscriber) SubscribeAll() error {
	if err := s.subscribe(); err != nil {
		return err
	}
	s.resubscribe.Do(func() {
		s.client.AddConnectListener(func() {
			utils.Logger.Infof("🔄 Restoring subscriptions after reconnect")
			if err := s.subscribe(); err != nil {
				utils.Logger.Errorf("❌ Failed to restore subscriptions: %v", err)
			}
		})
	})
	return nil
}

func (s *Subscriber) subscribe() error {
	utils.Logger.Infof("🔔 STARTING All Subscriptions")

	for _, kind := range s.kinds {
		topic := s.topics.SubscriptionPattern(kind)
		utils.Logger.Infof("🔔 SUBSCRIBING TO: %s", topic)

		if err := s.client.Subscribe(topic, s.qos, s.handleMessage); err != nil {
			utils.Logger.Errorf("❌ SUBSCRIPTION FAILED: %s - %v", topic, err)
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
	}

	utils.Logger.Infof("🎉 ALL SUBSCRIPTIONS COMPLETED")
	return nil
}

// handleMessage 수신된 메시지를 라우터에 전달
func (s *Subscriber) handleMessage(client mqtt.Client, msg mqtt.Message) {
	utils.Logger.Debugf("📨 MESSAGE RECEIVED Topic  : %s", msg.Topic())
	s.router.RouteMessage(client, msg)
}
