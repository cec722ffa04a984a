package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/subwatch/subwatch/internal/model"
)

const recentActionsLimit = 20

type Handler struct {
	store   Store
	session Session
	logger  *zap.Logger
}

func New(store Store, session Session, logger *zap.Logger) *Handler {
	return &Handler{
		store:   store,
		session: session,
		logger:  logger,
	}
}

func (h *Handler) Register(router chi.Router) {
	router.Get("/healthz", h.Health)
	router.Get("/status", h.Status)
}

type channelResponse struct {
	TGID     int64  `json:"tg_id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

type actionResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Action    string `json:"action"`
	TimeUTC   string `json:"time_utc"`
}

type statusResponse struct {
	Authorized    bool             `json:"authorized"`
	Channel       *channelResponse `json:"channel"`
	Subscribers   int              `json:"subscribers"`
	RecentActions []actionResponse `json:"recent_actions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := statusResponse{
		Authorized:    h.session.IsAuthorized(ctx),
		RecentActions: []actionResponse{},
	}

	channel, err := h.store.GetChannel(ctx)
	if err != nil && !errors.Is(err, model.ErrNoChannel) {
		h.logger.Error(fmt.Sprintf("failed to get channel: %v", err))
		h.writeError(w, "failed to read store", http.StatusInternalServerError)
		return
	}
	if channel != nil {
		response.Channel = &channelResponse{
			TGID:     channel.TGID,
			Name:     channel.Name,
			Username: channel.Username,
		}
	}

	count, err := h.store.CountSubscribers(ctx)
	if err != nil {
		h.logger.Error(fmt.Sprintf("failed to count subscribers: %v", err))
		h.writeError(w, "failed to read store", http.StatusInternalServerError)
		return
	}
	response.Subscribers = count

	actions, err := h.store.RecentActions(ctx, recentActionsLimit)
	if err != nil {
		h.logger.Error(fmt.Sprintf("failed to get recent actions: %v", err))
		h.writeError(w, "failed to read store", http.StatusInternalServerError)
		return
	}

	for _, action := range actions {
		response.RecentActions = append(response.RecentActions, actionResponse{
			UserID:    action.UserID,
			Username:  action.Username,
			FirstName: action.FirstName,
			LastName:  action.LastName,
			Action:    string(action.Action),
			TimeUTC:   action.TimeUTC.UTC().Format(time.RFC3339),
		})
	}

	h.writeJSON(w, response, http.StatusOK)
}

// ----------------------------- helpers -----------------------------

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}
