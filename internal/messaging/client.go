package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"vda5050-bridge/internal/config"
	"vda5050-bridge/internal/message"
	"vda5050-bridge/internal/metrics"
	"vda5050-bridge/internal/utils"
	"vda5050-bridge/internal/vda5050"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ErrNotConnected 브로커 연결이 없음
var ErrNotConnected = errors.New("messaging: MQTT client is not connected")

// Client MQTT 클라이언트 인터페이스
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) error
	Subscribe(topic string, qos byte, callback MessageHandler) error
	Disconnect(quiesce uint)
	IsConnected() bool
	// AddConnectListener fn 을 (재)연결될 때마다 호출
	AddConnectListener(fn func())
}

// MessageHandler 메시지 핸들러 타입
type MessageHandler func(client mqtt.Client, msg mqtt.Message)

// MQTTClient MQTT 클라이언트 구현체. 브리지 자신의 connection 토픽에 유언(CONNECTIONBROKEN)을 등록
type MQTTClient struct {
	client    mqtt.Client
	config    *config.Config
	topics    Topics
	generator *message.Generator
	metrics   *metrics.Metrics

	mu        sync.Mutex
	listeners []func()
}

// NewMQTTClient 새 MQTT 클라이언트 생성 후 연결
func NewMQTTClient(cfg *config.Config, topics Topics, generator *message.Generator, m *metrics.Metrics) (*MQTTClient, error) {
	utils.Logger.Infof("🏗️ CREATING MQTT Client")

	c := &MQTTClient{
		config:    cfg,
		topics:    topics,
		generator: generator,
		metrics:   m,
	}

	will, err := c.connectionPayload(vda5050.ConnectionStateConnectionBroken)
	if err != nil {
		return nil, fmt.Errorf("build last will: %w", err)
	}

	opts := newClientOptions(cfg, c.connectionTopic(), will)
	opts.SetOnConnectHandler(c.onConnect)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		c.metrics.SetConnected(false)
		utils.Logger.Errorf("❌ MQTT connection lost: %v", err)
	})

	c.client = mqtt.NewClient(opts)

	// 연결 시도
	token := c.client.Connect()
	if !token.WaitTimeout(cfg.Timeout) {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: timeout after %s", cfg.MQTTBroker, cfg.Timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", cfg.MQTTBroker, err)
	}

	utils.Logger.Infof("✅ MQTT Client CREATED")
	return c, nil
}

// newClientOptions 브로커 접속 옵션과 retained 유언 설정
func newClientOptions(cfg *config.Config, willTopic string, willPayload []byte) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBroker)
	opts.SetClientID(cfg.MQTTClientID)
	opts.SetUsername(cfg.MQTTUsername)
	opts.SetPassword(cfg.MQTTPassword)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)
	opts.SetCleanSession(true)
	opts.SetBinaryWill(willTopic, willPayload, cfg.MQTTQoS, true)
	return opts
}

func (c *MQTTClient) connectionTopic() string {
	return c.topics.Topic(KindConnection, c.config.BridgeManufacturer, c.config.BridgeSerialNumber)
}

func (c *MQTTClient) connectionPayload(state vda5050.ConnectionState) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	conn, err := c.generator.Connection(ctx, c.config.BridgeManufacturer, c.config.BridgeSerialNumber, state)
	if err != nil {
		return nil, err
	}
	return vda5050.EncodeConnection(conn)
}

// AddConnectListener 재연결 시 실행할 작업 등록. clean session 이므로 구독 복구에 사용
func (c *MQTTClient) AddConnectListener(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// onConnect 연결(재연결 포함) 시 ONLINE 발행 후 리스너 실행
func (c *MQTTClient) onConnect(client mqtt.Client) {
	c.metrics.SetConnected(true)
	utils.Logger.Info("✅ MQTT client connected")

	c.publishOnline(client)

	c.mu.Lock()
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (c *MQTTClient) publishOnline(client mqtt.Client) {
	payload, err := c.connectionPayload(vda5050.ConnectionStateOnline)
	if err != nil {
		utils.Logger.Errorf("❌ Failed to build ONLINE connection message: %v", err)
		return
	}

	token := client.Publish(c.connectionTopic(), c.config.MQTTQoS, true, payload)
	if !token.WaitTimeout(c.config.Timeout) || token.Error() != nil {
		utils.Logger.Errorf("❌ Failed to publish ONLINE connection message: %v", token.Error())
		return
	}
	c.metrics.Published(string(KindConnection))
}

// Publish 메시지 발행
func (c *MQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) error {
	if !c.client.IsConnected() {
		return ErrNotConnected
	}

	utils.Logger.Debugf("📤 MQTT SENDING Topic  : %s", topic)
	utils.Logger.Debugf("📤 MQTT SENDING QoS    : %d, Retained: %v", qos, retained)

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(c.config.Timeout) {
		utils.Logger.Errorf("❌ MQTT SEND TIMEOUT: %s", topic)
		return fmt.Errorf("publish %s: timeout after %s", topic, c.config.Timeout)
	}
	if err := token.Error(); err != nil {
		utils.Logger.Errorf("❌ MQTT SEND FAILED: %s - %v", topic, err)
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	utils.Logger.Debugf("✅ MQTT SEND SUCCESS: %s", topic)
	return nil
}

// Subscribe 토픽 구독
func (c *MQTTClient) Subscribe(topic string, qos byte, callback MessageHandler) error {
	if !c.client.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Subscribe(topic, qos, mqtt.MessageHandler(callback))
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, token.Error())
	}

	utils.Logger.Infof("✅ Subscribed to topic: %s", topic)
	return nil
}

// Disconnect OFFLINE 발행 후 연결 해제
func (c *MQTTClient) Disconnect(quiesce uint) {
	if !c.client.IsConnected() {
		return
	}

	payload, err := c.connectionPayload(vda5050.ConnectionStateOffline)
	if err != nil {
		utils.Logger.Errorf("❌ Failed to build OFFLINE connection message: %v", err)
	} else if err := c.Publish(c.connectionTopic(), c.config.MQTTQoS, true, payload); err != nil {
		utils.Logger.Errorf("❌ Failed to publish OFFLINE connection message: %v", err)
	} else {
		c.metrics.Published(string(KindConnection))
	}

	c.client.Disconnect(quiesce)
	c.metrics.SetConnected(false)
	utils.Logger.Info("MQTT client disconnected")
}

// IsConnected 연결 상태 확인
func (c *MQTTClient) IsConnected() bool {
	return c.client.IsConnected()
}
