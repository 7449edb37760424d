package requests

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the leave request API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/requests", func(r chi.Router) {
		r.Get("/", handleListByUser(store))
		r.Get("/all", handleListAll(store))
		r.Get("/{id}", handleGet(store))
		r.Patch("/{id}/approve", handleReview(store, StatusApproved))
		r.Patch("/{id}/reject", handleReview(store, StatusRejected))
	})
}

func handleListByUser(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil {
			http.Error(w, `{"error":"user_id parameter is required"}`, http.StatusBadRequest)
			return
		}

		reqs, err := store.ListByUser(r.Context(), userID)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if reqs == nil {
			reqs = []LeaveRequest{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reqs)
	}
}

func handleListAll(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		switch status {
		case "", StatusPending, StatusApproved, StatusRejected:
		default:
			http.Error(w, `{"error":"invalid status filter"}`, http.StatusBadRequest)
			return
		}

		reqs, err := store.ListAll(r.Context(), status)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if reqs == nil {
			reqs = []LeaveRequest{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reqs)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, `{"error":"invalid request id"}`, http.StatusBadRequest)
			return
		}

		req, err := store.GetByID(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(req)
	}
}

type reviewRequest struct {
	ReviewerID int64 `json:"reviewer_id"`
}

func handleReview(store *Store, status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, `{"error":"invalid request id"}`, http.StatusBadRequest)
			return
		}

		var body reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if body.ReviewerID == 0 {
			http.Error(w, `{"error":"reviewer_id is required"}`, http.StatusBadRequest)
			return
		}

		var req *LeaveRequest
		if status == StatusApproved {
			req, err = store.Approve(r.Context(), id, body.ReviewerID)
		} else {
			req, err = store.Reject(r.Context(), id, body.ReviewerID)
		}
		if errors.Is(err, ErrNotFound) {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(req)
	}
}
