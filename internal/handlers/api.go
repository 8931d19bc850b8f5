package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"vda5050-bridge/internal/common/idgen"
	"vda5050-bridge/internal/message"
	"vda5050-bridge/internal/messaging"
	"vda5050-bridge/internal/metrics"
	"vda5050-bridge/internal/models"
	"vda5050-bridge/internal/repository"
	"vda5050-bridge/internal/service"
	"vda5050-bridge/internal/utils"
	"vda5050-bridge/internal/validation"
	"vda5050-bridge/internal/vda5050"

	"github.com/labstack/echo/v4"
)

// BridgeAPI is the part of the bridge service exposed over HTTP.
type BridgeAPI interface {
	SendOrder(ctx context.Context, manufacturer, serialNumber string, order *vda5050.Order) (*vda5050.Order, error)
	SendInstantActions(ctx context.Context, manufacturer, serialNumber string, actions []vda5050.Action) (*vda5050.InstantActions, error)
	RequestFactsheet(ctx context.Context, manufacturer, serialNumber string) (*vda5050.InstantActions, error)
	RequestState(ctx context.Context, manufacturer, serialNumber string) (*vda5050.InstantActions, error)
	CancelOrder(ctx context.Context, manufacturer, serialNumber string) (*vda5050.InstantActions, error)
	InitPosition(ctx context.Context, manufacturer, serialNumber string, pose message.Pose) (*vda5050.InstantActions, error)
	Messages(ctx context.Context, filter repository.ArchiveFilter) ([]models.MessageRecord, error)
	Connections() map[string]string
}

// APIHandler handles all API requests related to the bridge service.
type APIHandler struct {
	bridge    BridgeAPI
	metrics   *metrics.Metrics
	strict    bool
	connected func() bool
}

// NewAPIHandler creates a new instance of APIHandler. strict is the default
// decoding mode of the validate endpoint.
func NewAPIHandler(bridge BridgeAPI, m *metrics.Metrics, strict bool, connected func() bool) *APIHandler {
	if connected == nil {
		connected = func() bool { return false }
	}
	return &APIHandler{
		bridge:    bridge,
		metrics:   m,
		strict:    strict,
		connected: connected,
	}
}

// RegisterRoutes mounts the API on e.
func (h *APIHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.HealthCheck)
	if h.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))
	}

	api := e.Group("/api/v1")
	api.POST("/validate/:kind", h.Validate)
	api.POST("/robots/:manufacturer/:serialNumber/order", h.SendOrder)
	api.POST("/robots/:manufacturer/:serialNumber/instantActions", h.SendInstantActions)
	api.POST("/robots/:manufacturer/:serialNumber/commands/:command", h.SendCommand)
	api.GET("/robots", h.GetRobots)
	api.GET("/robots/:serialNumber/messages", h.GetMessages)
}

// HealthCheck provides a simple health status of the service.
func (h *APIHandler) HealthCheck(c echo.Context) error {
	data := map[string]interface{}{
		"service":       "vda5050-bridge",
		"timestamp":     time.Now().Unix(),
		"mqttConnected": h.connected(),
	}
	return c.JSON(http.StatusOK, utils.SuccessResponse("Service is healthy", data))
}

// ValidationResult is the body of a validate response.
type ValidationResult struct {
	Valid      bool                  `json:"valid"`
	Violations validation.Violations `json:"violations"`
}

// Validate decodes the body as the message kind in the path and runs the
// structural validator on it.
func (h *APIHandler) Validate(c echo.Context) error {
	kind := messaging.Kind(c.Param("kind"))
	if !kind.IsValid() {
		return utils.NewBadRequestError("Unknown message kind: " + string(kind))
	}

	strict := h.strict
	if raw := c.QueryParam("strict"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return utils.NewBadRequestError("Invalid strict parameter: must be a boolean", err)
		}
		strict = parsed
	}

	body, err := readBody(c)
	if err != nil {
		return err
	}

	var opts []vda5050.DecodeOption
	if strict {
		opts = append(opts, vda5050.Strict())
	}
	decoded, err := messaging.DecodeMessage(kind, body, opts...)
	if err != nil {
		h.metrics.DecodeFailed(string(kind), err)
		return decodeError(err)
	}

	vs := validation.Validate(decoded)
	if vs == nil {
		vs = validation.Violations{}
	}
	h.metrics.Violations(string(kind), vs)
	return c.JSON(http.StatusOK, ValidationResult{Valid: len(vs) == 0, Violations: vs})
}

// SendOrder publishes the order in the body to a vehicle. Header keys in the
// body are replaced by the bridge's own, and a missing orderId is generated.
func (h *APIHandler) SendOrder(c echo.Context) error {
	manufacturer, serialNumber := c.Param("manufacturer"), c.Param("serialNumber")

	body, err := readBodyWithHeader(c, manufacturer, serialNumber, map[string]interface{}{"orderId": idgen.OrderID()})
	if err != nil {
		return err
	}
	order, err := vda5050.DecodeOrder(body, h.decodeOptions()...)
	if err != nil {
		return decodeError(err)
	}

	sent, err := h.bridge.SendOrder(c.Request().Context(), manufacturer, serialNumber, order)
	if err != nil {
		return serviceError(err)
	}

	data := map[string]interface{}{
		"orderId":       sent.OrderID,
		"orderUpdateId": sent.OrderUpdateID,
		"headerId":      sent.HeaderID,
		"timestamp":     sent.Timestamp,
	}
	return c.JSON(http.StatusAccepted, utils.SuccessResponse("Order sent", data))
}

// SendInstantActions publishes {"actions": [...]} to a vehicle.
func (h *APIHandler) SendInstantActions(c echo.Context) error {
	manufacturer, serialNumber := c.Param("manufacturer"), c.Param("serialNumber")

	body, err := readBodyWithHeader(c, manufacturer, serialNumber, nil)
	if err != nil {
		return err
	}
	req, err := vda5050.DecodeInstantActions(body, h.decodeOptions()...)
	if err != nil {
		return decodeError(err)
	}

	sent, err := h.bridge.SendInstantActions(c.Request().Context(), manufacturer, serialNumber, req.Actions)
	if err != nil {
		return serviceError(err)
	}
	return instantActionsAccepted(c, "Instant actions sent", sent)
}

// SendCommand sends one of the standard instant actions. initPosition takes
// the pose as body.
func (h *APIHandler) SendCommand(c echo.Context) error {
	ctx := c.Request().Context()
	manufacturer, serialNumber := c.Param("manufacturer"), c.Param("serialNumber")
	command := c.Param("command")

	var (
		sent *vda5050.InstantActions
		err  error
	)
	switch command {
	case message.ActionTypeFactsheetRequest:
		sent, err = h.bridge.RequestFactsheet(ctx, manufacturer, serialNumber)
	case message.ActionTypeStateRequest:
		sent, err = h.bridge.RequestState(ctx, manufacturer, serialNumber)
	case message.ActionTypeCancelOrder:
		sent, err = h.bridge.CancelOrder(ctx, manufacturer, serialNumber)
	case message.ActionTypeInitPosition:
		var pose message.Pose
		if err := c.Bind(&pose); err != nil {
			return utils.NewBadRequestError("Invalid pose", err)
		}
		if pose.MapID == "" {
			return utils.NewBadRequestError("Pose requires mapId")
		}
		sent, err = h.bridge.InitPosition(ctx, manufacturer, serialNumber, pose)
	default:
		return utils.NewNotFoundError("Unknown command: " + command)
	}
	if err != nil {
		return serviceError(err)
	}
	return instantActionsAccepted(c, command+" sent", sent)
}

// GetRobots lists the last known connection state of every vehicle.
func (h *APIHandler) GetRobots(c echo.Context) error {
	connections := h.bridge.Connections()
	return c.JSON(http.StatusOK, utils.ListResponse{Items: connections, Count: len(connections)})
}

func instantActionsAccepted(c echo.Context, msg string, sent *vda5050.InstantActions) error {
	actionIDs := make([]string, len(sent.Actions))
	for i, a := range sent.Actions {
		actionIDs[i] = a.ActionID
	}
	data := map[string]interface{}{
		"headerId":  sent.HeaderID,
		"actionIds": actionIDs,
	}
	return c.JSON(http.StatusAccepted, utils.SuccessResponse(msg, data))
}

// GetMessages lists archived messages of a vehicle, newest first.
func (h *APIHandler) GetMessages(c echo.Context) error {
	filter := repository.ArchiveFilter{
		SerialNumber: c.Param("serialNumber"),
		Kind:         c.QueryParam("kind"),
	}
	if filter.Kind != "" && !messaging.Kind(filter.Kind).IsValid() {
		return utils.NewBadRequestError("Unknown message kind: " + filter.Kind)
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return utils.NewBadRequestError("Invalid limit parameter: must be a non-negative integer")
		}
		filter.Limit = limit
	}

	records, err := h.bridge.Messages(c.Request().Context(), filter)
	if err != nil {
		return utils.NewInternalServerError("Failed to load messages", err)
	}
	if len(records) == 0 && filter.Kind == "" {
		return utils.NewNotFoundError("No messages recorded for vehicle " + filter.SerialNumber)
	}
	return c.JSON(http.StatusOK, utils.ListResponse{Items: records, Count: len(records), Limit: filter.Limit})
}

func (h *APIHandler) decodeOptions() []vda5050.DecodeOption {
	if h.strict {
		return []vda5050.DecodeOption{vda5050.Strict()}
	}
	return nil
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, utils.NewBadRequestError("Failed to read request body", err)
	}
	if len(body) == 0 {
		return nil, utils.NewBadRequestError("Request body is empty")
	}
	return body, nil
}

// readBodyWithHeader returns the body object with placeholder header keys so
// that a header-less request decodes. The service replaces them on send.
// defaults fill keys that are absent or empty strings.
func readBodyWithHeader(c echo.Context, manufacturer, serialNumber string, defaults map[string]interface{}) ([]byte, error) {
	body, err := readBody(c)
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return nil, utils.NewBadRequestError("Request body must be a JSON object", err)
	}

	for key, value := range defaults {
		if raw, ok := doc[key]; ok && string(raw) != `""` && string(raw) != "null" {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, utils.NewInternalServerError("Failed to build document", err)
		}
		doc[key] = encoded
	}

	header := map[string]interface{}{
		"headerId":     0,
		"timestamp":    vda5050.FormatTimestamp(time.Now()),
		"version":      vda5050.ProtocolVersion,
		"manufacturer": manufacturer,
		"serialNumber": serialNumber,
	}
	for key, value := range header {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, utils.NewInternalServerError("Failed to build header", err)
		}
		doc[key] = raw
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, utils.NewInternalServerError("Failed to build document", err)
	}
	return out, nil
}

// ErrorDetail locates a codec error in the document.
type ErrorDetail struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
}

func decodeError(err error) *utils.AppError {
	path, _ := vda5050.ErrorPath(err)
	return utils.NewBadRequestError(err.Error(), err).
		WithDetails(ErrorDetail{Kind: vda5050.ErrorKind(err), Path: path})
}

func serviceError(err error) *utils.AppError {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.NewUnprocessableError("Message failed validation", err).WithDetails(verr.Violations)
	case errors.Is(err, service.ErrStaleOrderUpdate):
		return utils.NewConflictError(err.Error(), err)
	case errors.Is(err, messaging.ErrNotConnected):
		return utils.NewServiceUnavailableError("MQTT broker is not connected", err)
	case errors.Is(err, vda5050.ErrEncode):
		path, _ := vda5050.ErrorPath(err)
		return utils.NewUnprocessableError(err.Error(), err).
			WithDetails(ErrorDetail{Kind: vda5050.ErrorKind(err), Path: path})
	default:
		return utils.NewInternalServerError("Failed to send message", err)
	}
}
