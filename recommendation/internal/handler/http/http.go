package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	catalogmodel "cinecircle/catalog/pkg/model"
	"cinecircle/gen"
	"cinecircle/pkg/auth"
	"cinecircle/pkg/logging"
	ratingmodel "cinecircle/rating/pkg/model"
	"cinecircle/recommendation/internal/controller/recommendation"
	"cinecircle/recommendation/internal/dismissal"
	"cinecircle/recommendation/pkg/model"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Handler defines a recommendation HTTP handler.
type Handler struct {
	ctrl   *recommendation.Controller
	logger *zap.Logger
}

// New creates a new recommendation HTTP handler.
func New(ctrl *recommendation.Controller, logger *zap.Logger) *Handler {
	logger = logger.With(
		zap.String(logging.FieldComponent, "handler"),
		zap.String(logging.FieldType, "http"),
	)
	return &Handler{ctrl: ctrl, logger: logger}
}

// Register installs the handler routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/recommend", h.HandleRecommend)
	mux.HandleFunc("/dismiss", h.HandleDismiss)
	mux.HandleFunc("/undo", h.HandleUndo)
	mux.HandleFunc("/collective", h.HandleCollective)
}

// HandleRecommend handles POST /recommend requests. The body has the
// same shape as the gRPC request.
func (h *Handler) HandleRecommend(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body gen.RecommendRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r, err := model.RequestFromProto(&body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.ctrl.Recommend(req.Context(), r)
	switch {
	case err == nil:
	case errors.Is(err, recommendation.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, recommendation.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	case errors.Is(err, recommendation.ErrNotMember):
		w.WriteHeader(http.StatusForbidden)
		return
	default:
		h.logger.Warn("Recommend error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.encode(w, model.ResultToProto(res))
}

// HandleDismiss handles POST /dismiss?user_id=...&item_id=...&token=... requests.
func (h *Handler) HandleDismiss(w http.ResponseWriter, req *http.Request) {
	userID, itemID, ok := h.authorize(w, req)
	if !ok {
		return
	}
	deadline, err := h.ctrl.Dismiss(req.Context(), userID, itemID)
	if err != nil {
		h.logger.Warn("Dismiss error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.encode(w, struct {
		UndoDeadline time.Time `json:"undoDeadline"`
	}{deadline})
}

// HandleUndo handles POST /undo?user_id=...&item_id=...&token=... requests.
func (h *Handler) HandleUndo(w http.ResponseWriter, req *http.Request) {
	userID, itemID, ok := h.authorize(w, req)
	if !ok {
		return
	}
	err := h.ctrl.UndoDismiss(req.Context(), userID, itemID)
	if err != nil && errors.Is(err, dismissal.ErrUndoExpired) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	} else if err != nil {
		h.logger.Warn("Undo error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCollective handles PUT /collective requests.
func (h *Handler) HandleCollective(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body gen.Collective
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	err := h.ctrl.PutCollective(req.Context(), model.CollectiveFromProto(&body))
	if err != nil && errors.Is(err, recommendation.ErrInvalidRequest) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		h.logger.Warn("Collective put error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorize parses the dismissal query and checks the token. It writes
// the error response itself and reports false on failure.
func (h *Handler) authorize(w http.ResponseWriter, req *http.Request) (ratingmodel.UserID, catalogmodel.ItemID, bool) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return "", 0, false
	}
	userID := ratingmodel.UserID(req.FormValue("user_id"))
	itemID, err := strconv.ParseInt(req.FormValue("item_id"), 10, 64)
	if userID == "" || err != nil || itemID <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return "", 0, false
	}
	if err := h.ctrl.Authorize(req.FormValue("token"), userID); err != nil {
		if errors.Is(err, auth.ErrTokenIsEmpty) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusUnauthorized)
		}
		return "", 0, false
	}
	return userID, catalogmodel.ItemID(itemID), true
}

func (h *Handler) encode(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Response encode error", zap.Error(err))
	}
}
