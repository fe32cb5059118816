package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "demo/marketplace/internal/errors"
	"demo/marketplace/internal/logger"
	"demo/marketplace/internal/model"
	"demo/marketplace/internal/validate"
)

const (
	msgInvalidJSON  = "Invalid JSON body"
	msgInvalidLimit = "Invalid limit"
	msgTooLarge     = "Request body too large"
	msgServerError  = "Server error"

	defaultBodyLimit = 10 << 20
)

var errTrailingData = errors.New("unexpected data after JSON body")

// OrderService is the order lifecycle as seen by the HTTP layer.
type OrderService interface {
	SubmitOrder(ctx context.Context, o model.NewOrder) (model.OrderSummary, error)
	ListActiveOrders(ctx context.Context, limit int) ([]model.Order, error)
	RecordPurchase(ctx context.Context, orderHash, buyerAddress string) (model.Order, error)
}

type Options struct {
	BodyLimit int64 // max request body in bytes
	ListLimit int   // listing size when ?limit is absent
}

type Handler struct {
	orders    OrderService
	logger    *zap.Logger
	bodyLimit int64
	listLimit int
	now       func() time.Time
}

func NewHandler(orders OrderService, log *zap.Logger, opts Options) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = defaultBodyLimit
	}
	return &Handler{
		orders:    orders,
		logger:    log,
		bodyLimit: opts.BodyLimit,
		listLimit: validate.Limit(opts.ListLimit),
		now:       time.Now,
	}
}

type purchaseRequest struct {
	OrderHash    string `json:"orderHash"`
	BuyerAddress string `json:"buyerAddress"`
}

type submitResponse struct {
	Success bool               `json:"success"`
	Order   model.OrderSummary `json:"order"`
}

type listResponse struct {
	Success bool          `json:"success"`
	Orders  []model.Order `json:"orders"`
}

type purchaseResponse struct {
	Success bool        `json:"success"`
	Order   model.Order `json:"order"`
}

type statusResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

type errorResponse struct {
	Success bool                         `json:"success"`
	Error   string                       `json:"error"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

// Status is the liveness probe. It never touches the database.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, statusResponse{
		OK:   true,
		Time: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	var req model.NewOrder
	if !h.decodeBody(w, r, &req) {
		return
	}

	summary, err := h.orders.SubmitOrder(r.Context(), req)
	if err != nil {
		h.handleError(w, log, err)
		return
	}

	log.Info("order submitted", zap.String("orderId", summary.ID), zap.String("orderHash", req.OrderHash))
	h.writeJSON(w, http.StatusOK, submitResponse{Success: true, Order: summary})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	limit := h.listLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, msgInvalidLimit, apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = validate.Limit(n)
	}

	orders, err := h.orders.ListActiveOrders(r.Context(), limit)
	if err != nil {
		h.handleError(w, log, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listResponse{Success: true, Orders: orders})
}

func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	var req purchaseRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	order, err := h.orders.RecordPurchase(r.Context(), req.OrderHash, req.BuyerAddress)
	if err != nil {
		h.handleError(w, log, err)
		return
	}

	log.Info("purchase recorded", zap.String("orderId", order.ID), zap.String("orderHash", req.OrderHash))
	h.writeJSON(w, http.StatusOK, purchaseResponse{Success: true, Order: order})
}

// decodeBody reads a size-capped JSON body into dst. An empty body decodes
// to the zero value so that required-field validation reports it. Anything
// after the first JSON value makes the body invalid.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.bodyLimit))
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err == nil {
		if err = dec.Decode(&struct{}{}); errors.Is(err, io.EOF) {
			return true
		}
		if err == nil {
			err = errTrailingData
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		return false
	}

	logger.FromContext(r.Context(), h.logger).Warn("invalid JSON body", zap.Error(err))
	h.writeError(w, http.StatusBadRequest, msgInvalidJSON, apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	})
	return false
}

func (h *Handler) handleError(w http.ResponseWriter, log *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		h.writeError(w, http.StatusBadRequest, ve.Message, ve.Details...)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		h.writeError(w, http.StatusNotFound, nfe.Message)
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		h.writeError(w, http.StatusConflict, ce.Message)
		return
	}

	if se, ok := apperrors.IsStoreError(err); ok {
		log.Error("store failure", zap.String("op", se.Op), zap.Error(se.Cause))
	} else {
		log.Error("unexpected error", zap.Error(err))
	}
	h.writeError(w, http.StatusInternalServerError, msgServerError)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, details ...apperrors.ValidationDetail) {
	h.writeJSON(w, status, errorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
