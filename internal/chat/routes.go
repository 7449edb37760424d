package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrmate-ai/hrmate/internal/dialogue"
)

// TurnProcessor runs one conversation turn. *dialogue.Engine implements it.
type TurnProcessor interface {
	Process(ctx context.Context, in dialogue.TurnInput) dialogue.TurnOutput
}

// RegisterRoutes mounts the chat API routes.
func RegisterRoutes(r chi.Router, engine TurnProcessor, store *Store, logger *zap.SugaredLogger) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", handleChat(engine, store, logger))
		r.Get("/{session_id}/history", handleHistory(store))
	})
}

type chatRequest struct {
	Message   string `json:"message"`
	UserID    int64  `json:"user_id"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string                     `json:"response"`
	Intent    string                     `json:"intent"`
	Data      *dialogue.SubmissionResult `json:"data,omitempty"`
	SessionID string                     `json:"session_id"`
}

func handleChat(engine TurnProcessor, store *Store, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}
		if req.UserID == 0 {
			http.Error(w, `{"error":"user_id is required"}`, http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		snapshot, err := store.LatestSnapshot(r.Context(), req.SessionID, req.UserID)
		if err != nil {
			logger.Errorw("loading snapshot failed", "error", err, "session_id", req.SessionID)
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		out := engine.Process(r.Context(), dialogue.TurnInput{
			Message:  req.Message,
			UserID:   req.UserID,
			Snapshot: snapshot,
		})

		turn := &Turn{
			SessionID: req.SessionID,
			UserID:    req.UserID,
			Message:   req.Message,
			Response:  out.Response,
			Intent:    out.Intent,
			Snapshot:  out.Snapshot,
		}
		if err := store.SaveTurn(r.Context(), turn); err != nil {
			logger.Errorw("saving turn failed", "error", err, "session_id", req.SessionID)
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{
			Response:  out.Response,
			Intent:    out.Intent,
			Data:      out.Submission,
			SessionID: req.SessionID,
		})
	}
}

func handleHistory(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")
		turns, err := store.History(r.Context(), sessionID)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if turns == nil {
			turns = []Turn{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(turns)
	}
}
