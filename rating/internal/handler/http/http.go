package http

import (
	"errors"
	"net/http"
	"strconv"

	"cinecircle/pkg/auth"
	"cinecircle/pkg/logging"
	"cinecircle/rating/internal/controller/rating"
	"cinecircle/rating/pkg/model"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Handler defines a rating HTTP handler.
type Handler struct {
	ctrl   *rating.Controller
	logger *zap.Logger
}

// New creates a new rating HTTP handler.
func New(ctrl *rating.Controller, logger *zap.Logger) *Handler {
	logger = logger.With(
		zap.String(logging.FieldComponent, "handler"),
		zap.String(logging.FieldType, "http"),
	)
	return &Handler{ctrl: ctrl, logger: logger}
}

// Register installs the handler routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/rating", h.HandleRating)
	mux.HandleFunc("/ratings", h.HandleRatings)
	mux.HandleFunc("/compatibility", h.HandleCompatibility)
}

// HandleRating handles PUT and DELETE /rating requests.
func (h *Handler) HandleRating(w http.ResponseWriter, req *http.Request) {
	userID := model.UserID(req.FormValue("user_id"))
	itemID, err := strconv.ParseInt(req.FormValue("item_id"), 10, 64)
	if userID == "" || err != nil || itemID <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.ctrl.Authorize(req.FormValue("token"), userID); err != nil {
		if errors.Is(err, auth.ErrTokenIsEmpty) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch req.Method {
	case http.MethodPut:
		var body struct {
			OverallScore *int               `json:"overallScore"`
			Dimensions   map[string]float64 `json:"dimensions"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		r, err := h.ctrl.PutRating(req.Context(), userID, model.ItemID(itemID), body.OverallScore, body.Dimensions)
		if err != nil && errors.Is(err, rating.ErrInvalidRating) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		} else if err != nil {
			h.logger.Warn("Repository put error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		h.encode(w, r)
	case http.MethodDelete:
		err := h.ctrl.DeleteRating(req.Context(), userID, model.ItemID(itemID))
		if err != nil && errors.Is(err, rating.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		} else if err != nil {
			h.logger.Warn("Repository delete error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleRatings handles GET /ratings?user=... requests.
func (h *Handler) HandleRatings(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	users := userIDs(req)
	if len(users) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	ratings, err := h.ctrl.GetRatings(req.Context(), users)
	if err != nil {
		h.logger.Warn("Repository list error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.encode(w, ratings)
}

// HandleCompatibility handles GET /compatibility?user=... requests.
func (h *Handler) HandleCompatibility(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	report, err := h.ctrl.Compatibility(req.Context(), userIDs(req))
	if err != nil {
		h.logger.Warn("Compatibility error", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.encode(w, report)
}

func (h *Handler) encode(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Response encode error", zap.Error(err))
	}
}

func userIDs(req *http.Request) []model.UserID {
	var res []model.UserID
	for _, u := range req.URL.Query()["user"] {
		res = append(res, model.UserID(u))
	}
	return res
}
