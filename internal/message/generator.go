package message

import (
	"context"
	"fmt"
	"time"

	"vda5050-bridge/internal/common/idgen"
	"vda5050-bridge/internal/vda5050"
)

// 브리지가 보내는 즉시 액션 타입
const (
	ActionTypeFactsheetRequest = "factsheetRequest"
	ActionTypeInitPosition     = "initPosition"
	ActionTypeCancelOrder      = "cancelOrder"
	ActionTypeStateRequest     = "stateRequest"
)

// Pose initPosition 파라미터
type Pose struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Theta      float64 `json:"theta"`
	MapID      string  `json:"mapId"`
	LastNodeID string  `json:"lastNodeId"`
}

// Generator 헤더와 메시지 봉투 생성기
type Generator struct {
	sequencer idgen.HeaderSequencer
	ids       *idgen.Generator
	now       func() time.Time
}

// NewGenerator 새 메시지 생성기 생성
func NewGenerator(sequencer idgen.HeaderSequencer) *Generator {
	return &Generator{
		sequencer: sequencer,
		ids:       idgen.Action,
		now:       time.Now,
	}
}

// Header 차량용 새 헤더 생성 (headerId 발급, 현재 시각, 프로토콜 버전)
func (g *Generator) Header(ctx context.Context, manufacturer, serialNumber string) (vda5050.Header, error) {
	headerID, err := g.sequencer.Next(ctx, manufacturer, serialNumber)
	if err != nil {
		return vda5050.Header{}, fmt.Errorf("next header id for %s/%s: %w", manufacturer, serialNumber, err)
	}

	return vda5050.Header{
		HeaderID:     headerID,
		Timestamp:    vda5050.FormatTimestamp(g.now()),
		Version:      vda5050.ProtocolVersion,
		Manufacturer: manufacturer,
		SerialNumber: serialNumber,
	}, nil
}

// Connection 연결 상태 메시지 생성
func (g *Generator) Connection(ctx context.Context, manufacturer, serialNumber string, state vda5050.ConnectionState) (*vda5050.Connection, error) {
	header, err := g.Header(ctx, manufacturer, serialNumber)
	if err != nil {
		return nil, err
	}

	return &vda5050.Connection{
		Header:          header,
		ConnectionState: state,
		LastStateChange: header.Timestamp,
	}, nil
}

// InstantActions 즉시 액션 메시지 생성
func (g *Generator) InstantActions(ctx context.Context, manufacturer, serialNumber string, actions ...vda5050.Action) (*vda5050.InstantActions, error) {
	header, err := g.Header(ctx, manufacturer, serialNumber)
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []vda5050.Action{}
	}

	return &vda5050.InstantActions{Header: header, Actions: actions}, nil
}

// Stamp 외부에서 받은 오더에 새 헤더 부여
func (g *Generator) Stamp(ctx context.Context, manufacturer, serialNumber string, order *vda5050.Order) error {
	header, err := g.Header(ctx, manufacturer, serialNumber)
	if err != nil {
		return err
	}
	order.Header = header
	return nil
}

// FactsheetRequest 팩트시트 요청 액션
func (g *Generator) FactsheetRequest() vda5050.Action {
	return g.action(ActionTypeFactsheetRequest, vda5050.BlockingTypeNone, nil)
}

// StateRequest 상태 요청 액션
func (g *Generator) StateRequest() vda5050.Action {
	return g.action(ActionTypeStateRequest, vda5050.BlockingTypeNone, nil)
}

// CancelOrder 오더 취소 액션
func (g *Generator) CancelOrder() vda5050.Action {
	return g.action(ActionTypeCancelOrder, vda5050.BlockingTypeNone, nil)
}

// InitPosition 위치 초기화 액션
func (g *Generator) InitPosition(pose Pose) vda5050.Action {
	return g.action(ActionTypeInitPosition, vda5050.BlockingTypeNone, []any{
		parameter("x", vda5050.Number(pose.X)),
		parameter("y", vda5050.Number(pose.Y)),
		parameter("theta", vda5050.Number(pose.Theta)),
		parameter("mapId", pose.MapID),
		parameter("lastNodeId", pose.LastNodeID),
	})
}

func (g *Generator) action(actionType string, blocking vda5050.BlockingType, params []any) vda5050.Action {
	a := vda5050.Action{
		ActionID:     g.ids.ActionID(),
		ActionType:   actionType,
		BlockingType: blocking,
	}
	if params != nil {
		a.ActionParameters = params
	}
	return a
}

func parameter(key string, value any) map[string]any {
	return map[string]any{"key": key, "value": value}
}
