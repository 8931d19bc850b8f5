package messaging

import (
	"errors"
	"fmt"
	"strings"

	"vda5050-bridge/internal/vda5050"
)

// ErrInvalidTopic 토픽이 VDA5050 형식이 아님
var ErrInvalidTopic = errors.New("messaging: invalid topic")

// Kind 토픽의 마지막 세그먼트이자 메시지 종류
type Kind string

const (
	KindOrder          Kind = "order"
	KindInstantActions Kind = "instantActions"
	KindState          Kind = "state"
	KindVisualization  Kind = "visualization"
	KindConnection     Kind = "connection"
	KindFactsheet      Kind = "factsheet"
)

// Kinds 모든 메시지 종류
var Kinds = []Kind{KindOrder, KindInstantActions, KindState, KindVisualization, KindConnection, KindFactsheet}

// InboundKinds 차량이 발행하는 메시지 종류
var InboundKinds = []Kind{KindState, KindVisualization, KindConnection, KindFactsheet}

func (k Kind) IsValid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Topics {interfaceName}/v{major}/{manufacturer}/{serialNumber}/{kind} 토픽 생성기
type Topics struct {
	InterfaceName string
	MajorVersion  uint64
}

// NewTopics 프로토콜 버전의 major 로 토픽 생성기 생성
func NewTopics(interfaceName, version string) (Topics, error) {
	major, err := vda5050.MajorVersion(version)
	if err != nil {
		return Topics{}, err
	}
	return Topics{InterfaceName: interfaceName, MajorVersion: major}, nil
}

func (t Topics) prefix() string {
	return fmt.Sprintf("%s/v%d", t.InterfaceName, t.MajorVersion)
}

// Topic 차량별 토픽
func (t Topics) Topic(kind Kind, manufacturer, serialNumber string) string {
	return fmt.Sprintf("%s/%s/%s/%s", t.prefix(), manufacturer, serialNumber, kind)
}

// SubscriptionPattern 모든 차량의 kind 토픽을 받는 와일드카드 패턴
func (t Topics) SubscriptionPattern(kind Kind) string {
	return t.Topic(kind, "+", "+")
}

// Parse 토픽에서 종류와 차량 식별자 추출
func (t Topics) Parse(topic string) (Kind, string, string, error) {
	rest, ok := strings.CutPrefix(topic, t.prefix()+"/")
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q does not start with %s", ErrInvalidTopic, topic, t.prefix())
	}
	return ParseTopic(rest)
}

// ParseTopic {manufacturer}/{serialNumber}/{kind} 또는 전체 토픽에서 마지막 세 세그먼트 추출
func ParseTopic(topic string) (Kind, string, string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}
	n := len(parts)
	manufacturer, serialNumber, kind := parts[n-3], parts[n-2], Kind(parts[n-1])
	if manufacturer == "" || serialNumber == "" {
		return "", "", "", fmt.Errorf("%w: %q has an empty vehicle segment", ErrInvalidTopic, topic)
	}
	if !kind.IsValid() {
		return "", "", "", fmt.Errorf("%w: unknown message kind %q", ErrInvalidTopic, kind)
	}
	return kind, manufacturer, serialNumber, nil
}

// DecodeMessage kind 에 맞는 디코더로 payload 해석
func DecodeMessage(kind Kind, payload []byte, opts ...vda5050.DecodeOption) (any, error) {
	switch kind {
	case KindOrder:
		return vda5050.DecodeOrder(payload, opts...)
	case KindInstantActions:
		return vda5050.DecodeInstantActions(payload, opts...)
	case KindState:
		return vda5050.DecodeState(payload, opts...)
	case KindVisualization:
		return vda5050.DecodeVisualization(payload, opts...)
	case KindConnection:
		return vda5050.DecodeConnection(payload, opts...)
	case KindFactsheet:
		return vda5050.DecodeFactsheet(payload, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown message kind %q", ErrInvalidTopic, kind)
	}
}

// EncodeMessage 메시지 종류를 판별해 인코딩
func EncodeMessage(msg any) (Kind, []byte, error) {
	var (
		kind Kind
		data []byte
		err  error
	)
	switch m := msg.(type) {
	case *vda5050.Order:
		kind = KindOrder
		data, err = vda5050.EncodeOrder(m)
	case *vda5050.InstantActions:
		kind = KindInstantActions
		data, err = vda5050.EncodeInstantActions(m)
	case *vda5050.State:
		kind = KindState
		data, err = vda5050.EncodeState(m)
	case *vda5050.Visualization:
		kind = KindVisualization
		data, err = vda5050.EncodeVisualization(m)
	case *vda5050.Connection:
		kind = KindConnection
		data, err = vda5050.EncodeConnection(m)
	case *vda5050.Factsheet:
		kind = KindFactsheet
		data, err = vda5050.EncodeFactsheet(m)
	default:
		return "", nil, fmt.Errorf("messaging: cannot encode %T", msg)
	}
	return kind, data, err
}

// HeaderOf 메시지의 헤더 반환
func HeaderOf(msg any) (vda5050.Header, bool) {
	switch m := msg.(type) {
	case *vda5050.Order:
		return m.Header, true
	case *vda5050.InstantActions:
		return m.Header, true
	case *vda5050.State:
		return m.Header, true
	case *vda5050.Visualization:
		return m.Header, true
	case *vda5050.Connection:
		return m.Header, true
	case *vda5050.Factsheet:
		return m.Header, true
	default:
		return vda5050.Header{}, false
	}
}
