package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"vda5050-bridge/internal/message"
	"vda5050-bridge/internal/messaging"
	"vda5050-bridge/internal/metrics"
	"vda5050-bridge/internal/models"
	"vda5050-bridge/internal/repository"
	"vda5050-bridge/internal/utils"
	"vda5050-bridge/internal/validation"
	"vda5050-bridge/internal/vda5050"

	"github.com/sirupsen/logrus"
)

// factsheetRequestTimeout ONLINE 전환 후 백그라운드 팩트시트 요청 제한 시간
const factsheetRequestTimeout = 10 * time.Second

var (
	// ErrValidationFailed 구조 검증 실패. errors.As 로 *ValidationError 를 꺼내 위반 목록 확인
	ErrValidationFailed = errors.New("service: message failed validation")

	// ErrStaleOrderUpdate 같은 orderId 의 orderUpdateId 가 활성 오더보다 낮음
	ErrStaleOrderUpdate = errors.New("service: stale order update")
)

// ValidationError 검증 위반 목록을 담은 에러
type ValidationError struct {
	Kind       messaging.Kind
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("service: %s failed validation: %s", e.Kind, e.Violations)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// Unwrap 개별 위반으로 errors.Is(err, validation.ErrViolation) 가능
func (e *ValidationError) Unwrap() error { return e.Violations.Err() }

// Publisher 발행 인터페이스
type Publisher interface {
	PublishOrder(order *vda5050.Order) ([]byte, error)
	PublishInstantActions(actions *vda5050.InstantActions) ([]byte, error)
}

// OrderStore 활성 오더 저장소 인터페이스
type OrderStore interface {
	Save(ctx context.Context, order *vda5050.Order) error
	Active(ctx context.Context, manufacturer, serialNumber string) (*vda5050.Order, error)
	Clear(ctx context.Context, manufacturer, serialNumber string) error
}

// Archive 메시지 아카이브 인터페이스
type Archive interface {
	Save(ctx context.Context, rec *models.MessageRecord) error
	List(ctx context.Context, filter repository.ArchiveFilter) ([]models.MessageRecord, error)
}

// BridgeService 마스터 컨트롤과 차량 사이의 VDA5050 메시지 처리
type BridgeService struct {
	publisher   Publisher
	orders      OrderStore
	archive     Archive
	generator   *message.Generator
	metrics     *metrics.Metrics
	connections *utils.StatusCache
	self        string

	mu         sync.Mutex
	orderLocks map[string]*sync.Mutex
	factsheets map[string]*vda5050.Factsheet
	background sync.WaitGroup
}

// NewBridgeService 새 브리지 서비스 생성
func NewBridgeService(publisher Publisher, orders OrderStore, archive Archive, generator *message.Generator,
	m *metrics.Metrics, connections *utils.StatusCache) *BridgeService {
	utils.Logger.Infof("🏗️ CREATING BridgeService")

	service := &BridgeService{
		publisher:   publisher,
		orders:      orders,
		archive:     archive,
		generator:   generator,
		metrics:     m,
		connections: connections,
		orderLocks:  make(map[string]*sync.Mutex),
		factsheets:  make(map[string]*vda5050.Factsheet),
	}

	utils.Logger.Infof("✅ BridgeService CREATED")
	return service
}

// WithBridgeIdentity 브리지 자신의 connection 메시지를 차량 처리에서 제외
func (s *BridgeService) WithBridgeIdentity(manufacturer, serialNumber string) *BridgeService {
	s.self = vehicleKey(manufacturer, serialNumber)
	return s
}

func vehicleKey(manufacturer, serialNumber string) string {
	return manufacturer + "/" + serialNumber
}

// lockOrders 차량별 오더 발행 직렬화. orderUpdateId 확인과 저장 사이에 다른 발행이 끼지 않음
func (s *BridgeService) lockOrders(key string) func() {
	s.mu.Lock()
	l, ok := s.orderLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.orderLocks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Wait 백그라운드 작업(팩트시트 요청) 완료 대기
func (s *BridgeService) Wait() {
	s.background.Wait()
}

func vehicleLog(manufacturer, serialNumber string) *logrus.Entry {
	return utils.Component("bridge").WithFields(utils.VehicleFields(manufacturer, serialNumber))
}

// SendOrder 헤더 부여, 검증, orderUpdateId 확인 후 오더 발행
func (s *BridgeService) SendOrder(ctx context.Context, manufacturer, serialNumber string, order *vda5050.Order) (*vda5050.Order, error) {
	log := vehicleLog(manufacturer, serialNumber).WithField("orderId", order.OrderID)

	defer s.lockOrders(vehicleKey(manufacturer, serialNumber))()

	if err := s.generator.Stamp(ctx, manufacturer, serialNumber, order); err != nil {
		return nil, err
	}

	if vs := validation.ValidateOrder(order); len(vs) > 0 {
		return nil, s.rejected(log, messaging.KindOrder, vs)
	}

	active, err := s.orders.Active(ctx, manufacturer, serialNumber)
	if err != nil {
		return nil, err
	}
	if active != nil && active.OrderID == order.OrderID && order.OrderUpdateID < active.OrderUpdateID {
		log.Warnf("⚠️ Order update %d is older than active update %d", order.OrderUpdateID, active.OrderUpdateID)
		return nil, fmt.Errorf("%w: orderUpdateId %d < %d for order %s",
			ErrStaleOrderUpdate, order.OrderUpdateID, active.OrderUpdateID, order.OrderID)
	}

	payload, err := s.publisher.PublishOrder(order)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		log.Errorf("❌ Failed to store active order: %v", err)
	}
	s.record(ctx, log, messaging.KindOrder, order.Header, models.DirectionOutbound, payload, 0)

	log.Infof("🚚 Order sent (update %d, %d nodes, %d edges)", order.OrderUpdateID, len(order.Nodes), len(order.Edges))
	return order, nil
}

// SendInstantActions 활성 오더와 actionId 충돌을 확인한 뒤 즉시 액션 발행
func (s *BridgeService) SendInstantActions(ctx context.Context, manufacturer, serialNumber string, actions []vda5050.Action) (*vda5050.InstantActions, error) {
	log := vehicleLog(manufacturer, serialNumber)

	msg, err := s.generator.InstantActions(ctx, manufacturer, serialNumber, actions...)
	if err != nil {
		return nil, err
	}

	active, err := s.orders.Active(ctx, manufacturer, serialNumber)
	if err != nil {
		return nil, err
	}

	if vs := validation.ValidateInstantActions(msg, validation.WithActiveOrder(active)); len(vs) > 0 {
		return nil, s.rejected(log, messaging.KindInstantActions, vs)
	}
	for _, actionType := range s.UndeclaredActions(manufacturer, serialNumber, vda5050.ActionScopeInstant, msg.Actions) {
		log.WithField("actionType", actionType).Warn("⚠️ Action type is not declared for instant use in the vehicle factsheet")
	}

	payload, err := s.publisher.PublishInstantActions(msg)
	if err != nil {
		return nil, err
	}
	s.record(ctx, log, messaging.KindInstantActions, msg.Header, models.DirectionOutbound, payload, 0)

	log.Infof("⚡ %d instant action(s) sent", len(msg.Actions))
	return msg, nil
}

// UndeclaredActions 차량 팩트시트에 scope 로 선언되지 않은 액션 타입 목록.
// 팩트시트를 아직 받지 못했거나 factsheetRequest 인 경우는 제외
func (s *BridgeService) UndeclaredActions(manufacturer, serialNumber string, scope vda5050.ActionScope, actions []vda5050.Action) []string {
	s.mu.Lock()
	f := s.factsheets[vehicleKey(manufacturer, serialNumber)]
	s.mu.Unlock()
	if f == nil {
		return nil
	}

	var undeclared []string
	for _, a := range actions {
		if a.ActionType == message.ActionTypeFactsheetRequest || f.Supports(a.ActionType, scope) {
			continue
		}
		undeclared = append(undeclared, a.ActionType)
	}
	return undeclared
}

// RequestFactsheet factsheetRequest 즉시 액션 발행
func (s *BridgeService) RequestFactsheet(ctx context.Context, manufacturer, serialNumber string) (*vda5050.InstantActions, error) {
	return s.SendInstantActions(ctx, manufacturer, serialNumber, []vda5050.Action{s.generator.FactsheetRequest()})
}

// RequestState stateRequest 즉시 액션 발행
func (s *BridgeService) RequestState(ctx context.Context, manufacturer, serialNumber string) (*vda5050.InstantActions, error) {
	return s.SendInstantActions(ctx, manufacturer, serialNumber, []vda5050.Action{s.generator.StateRequest()})
}

// CancelOrder cancelOrder 즉시 액션 발행
func (s *BridgeService) CancelOrder(ctx context.Context, manufacturer, serialNumber string) (*vda5050.InstantActions, error) {
	return s.SendInstantActions(ctx, manufacturer, serialNumber, []vda5050.Action{s.generator.CancelOrder()})
}

// InitPosition initPosition 즉시 액션 발행
func (s *BridgeService) InitPosition(ctx context.Context, manufacturer, serialNumber string, pose message.Pose) (*vda5050.InstantActions, error) {
	return s.SendInstantActions(ctx, manufacturer, serialNumber, []vda5050.Action{s.generator.InitPosition(pose)})
}

// Connections 차량별 마지막 연결 상태
func (s *BridgeService) Connections() map[string]string {
	snapshot := s.connections.Snapshot()
	result := make(map[string]string, len(snapshot))
	for key, entry := range snapshot {
		result[key] = entry.Status
	}
	return result
}

// HandleState 상태 메시지 검증, 차량 에러 로그, 아카이브
func (s *BridgeService) HandleState(ctx context.Context, state *vda5050.State) error {
	log := vehicleLog(state.Manufacturer, state.SerialNumber)

	active, err := s.orders.Active(ctx, state.Manufacturer, state.SerialNumber)
	if err != nil {
		log.Warnf("⚠️ Active order unavailable, validating state without it: %v", err)
		active = nil
	}

	var opts []validation.Option
	if active != nil {
		opts = append(opts, validation.WithActiveOrder(active))
	}
	vs := validation.ValidateState(state, opts...)
	s.logViolations(log, messaging.KindState, vs)

	for _, e := range state.Errors {
		entry := log.WithField("errorType", e.ErrorType)
		if e.ErrorDescription != nil {
			entry = entry.WithField("description", *e.ErrorDescription)
		}
		switch e.ErrorLevel {
		case vda5050.ErrorLevelFatal:
			entry.Error("🛑 Vehicle reported FATAL error")
		default:
			entry.Warn("⚠️ Vehicle reported WARNING")
		}
	}
	if state.HasFatalError() && active != nil {
		log.WithField("orderId", active.OrderID).Error("🛑 Active order is blocked by a FATAL vehicle error")
	}

	if active != nil && orderFinished(state, active) {
		if err := s.orders.Clear(ctx, state.Manufacturer, state.SerialNumber); err != nil {
			log.Errorf("❌ Failed to clear finished order: %v", err)
		} else {
			log.WithField("orderId", active.OrderID).Info("🏁 Order finished")
		}
	}

	payload, err := vda5050.EncodeState(state)
	if err != nil {
		return err
	}
	return s.archiveInbound(ctx, messaging.KindState, state.Header, payload, len(vs))
}

// orderFinished 활성 오더의 모든 노드/엣지를 지났고 실행 중인 액션이 없음
func orderFinished(state *vda5050.State, active *vda5050.Order) bool {
	if state.OrderID == nil || *state.OrderID != active.OrderID {
		return false
	}
	if len(state.NodeStates) > 0 || len(state.EdgeStates) > 0 {
		return false
	}
	for _, a := range state.ActionStates {
		if a.ActionStatus != vda5050.ActionStatusFinished && a.ActionStatus != vda5050.ActionStatusFailed {
			return false
		}
	}
	return true
}

// HandleConnection 연결 상태가 바뀐 경우에만 로그. ONLINE 전환 시 팩트시트 요청
func (s *BridgeService) HandleConnection(ctx context.Context, conn *vda5050.Connection) error {
	log := vehicleLog(conn.Manufacturer, conn.SerialNumber)

	key := vehicleKey(conn.Manufacturer, conn.SerialNumber)
	if key == s.self {
		log.Debugf("Ignoring own connection message: %s", conn.ConnectionState)
		return nil
	}

	vs := validation.ValidateConnection(conn)
	s.logViolations(log, messaging.KindConnection, vs)

	changed, previous := s.connections.Observe(key, string(conn.ConnectionState))
	if !changed {
		log.Debugf("Connection state unchanged: %s", conn.ConnectionState)
	} else {
		log = log.WithField("previous", previous)
		switch conn.ConnectionState {
		case vda5050.ConnectionStateOnline:
			log.Info("🔌 Vehicle is now ONLINE")
		case vda5050.ConnectionStateOffline:
			log.Warn("🔌 Vehicle is now OFFLINE")
		default:
			log.Error("🔌 Vehicle connection is BROKEN")
		}
	}

	payload, err := vda5050.EncodeConnection(conn)
	if err == nil {
		err = s.archiveInbound(ctx, messaging.KindConnection, conn.Header, payload, len(vs))
	}

	if changed && conn.ConnectionState == vda5050.ConnectionStateOnline {
		s.requestFactsheetAsync(ctx, log, conn.Manufacturer, conn.SerialNumber)
	}
	return err
}

// requestFactsheetAsync MQTT 콜백 밖에서 팩트시트 요청. 콜백 안에서 발행 완료를 기다리지 않음
func (s *BridgeService) requestFactsheetAsync(ctx context.Context, log *logrus.Entry, manufacturer, serialNumber string) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), factsheetRequestTimeout)
		defer cancel()
		if _, err := s.RequestFactsheet(ctx, manufacturer, serialNumber); err != nil {
			log.Errorf("❌ Failed to request factsheet: %v", err)
		}
	}()
}

// HandleFactsheet 팩트시트 검증 후 아카이브
func (s *BridgeService) HandleFactsheet(ctx context.Context, f *vda5050.Factsheet) error {
	log := vehicleLog(f.Manufacturer, f.SerialNumber)

	vs := validation.ValidateFactsheet(f)
	s.logViolations(log, messaging.KindFactsheet, vs)

	s.mu.Lock()
	s.factsheets[vehicleKey(f.Manufacturer, f.SerialNumber)] = f
	s.mu.Unlock()
	log.Infof("📋 Factsheet received: %s %s (%s, %d actions)", f.Type, f.TypeVersion, f.AgvKinematic, len(f.Actions))

	payload, err := vda5050.EncodeFactsheet(f)
	if err != nil {
		return err
	}
	return s.archiveInbound(ctx, messaging.KindFactsheet, f.Header, payload, len(vs))
}

// HandleVisualization 검증만 수행. 빈도가 높아 아카이브하지 않음
func (s *BridgeService) HandleVisualization(_ context.Context, v *vda5050.Visualization) error {
	log := vehicleLog(v.Manufacturer, v.SerialNumber)
	s.logViolations(log, messaging.KindVisualization, validation.ValidateVisualization(v))
	log.Trace("Visualization received")
	return nil
}

// HandleOrder 자신이 발행한 오더의 에코
func (s *BridgeService) HandleOrder(_ context.Context, o *vda5050.Order) error {
	vehicleLog(o.Manufacturer, o.SerialNumber).Debugf("Ignoring order echo %s/%d", o.OrderID, o.OrderUpdateID)
	return nil
}

// HandleInstantActions 자신이 발행한 즉시 액션의 에코
func (s *BridgeService) HandleInstantActions(_ context.Context, ia *vda5050.InstantActions) error {
	vehicleLog(ia.Manufacturer, ia.SerialNumber).Debugf("Ignoring instantActions echo (headerId %d)", ia.HeaderID)
	return nil
}

// Messages 아카이브 조회
func (s *BridgeService) Messages(ctx context.Context, filter repository.ArchiveFilter) ([]models.MessageRecord, error) {
	return s.archive.List(ctx, filter)
}

func (s *BridgeService) rejected(log *logrus.Entry, kind messaging.Kind, vs validation.Violations) error {
	log.WithField("kinds", vs.Kinds()).Errorf("❌ %s rejected with %d violation(s)", kind, len(vs))
	s.logViolations(log, kind, vs)
	return &ValidationError{Kind: kind, Violations: vs}
}

func (s *BridgeService) logViolations(log *logrus.Entry, kind messaging.Kind, vs validation.Violations) {
	if len(vs) == 0 {
		return
	}
	s.metrics.Violations(string(kind), vs)
	for _, v := range vs {
		log.WithFields(logrus.Fields{
			"violation": v.Kind,
			"path":      v.Path,
		}).Warnf("⚠️ %s violation: %s", kind, v.Message)
	}
}

func (s *BridgeService) archiveInbound(ctx context.Context, kind messaging.Kind, h vda5050.Header, payload []byte, violations int) error {
	return s.archive.Save(ctx, newRecord(kind, h, models.DirectionInbound, payload, violations))
}

// record 발행이 끝난 메시지의 아카이브. 실패해도 발행 결과에는 영향 없음
func (s *BridgeService) record(ctx context.Context, log *logrus.Entry, kind messaging.Kind, h vda5050.Header,
	dir models.Direction, payload []byte, violations int) {
	if err := s.archive.Save(ctx, newRecord(kind, h, dir, payload, violations)); err != nil {
		log.Errorf("❌ Failed to archive %s: %v", kind, err)
	}
}

func newRecord(kind messaging.Kind, h vda5050.Header, dir models.Direction, payload []byte, violations int) *models.MessageRecord {
	return &models.MessageRecord{
		Kind:           string(kind),
		Manufacturer:   h.Manufacturer,
		SerialNumber:   h.SerialNumber,
		HeaderID:       h.HeaderID,
		Timestamp:      h.Timestamp,
		Direction:      dir,
		Payload:        string(payload),
		ViolationCount: violations,
	}
}
