package http

import (
	"errors"
	"net/http"

	"collie/internal/log"
	"collie/internal/trips"
)

type (
	tripCreateRequest struct {
		Title string `json:"title"`
	}

	tripUpdateRequest struct {
		Title string `json:"title"`
	}

	joinRequest struct {
		Name string `json:"name"`
	}

	optionCreateRequest struct {
		Type  string `json:"type"`
		Label string `json:"label"`
	}

	voteRequest struct {
		MemberID string `json:"member_id"`
		Type     string `json:"type"`
		Option   string `json:"option"`
	}
)

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.Create(r.Context(), sanitizeInput(req.Title))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create trip")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"trip_id": id})
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load trip")
		return
	}
	summary.TotalSpent = round2(summary.TotalSpent)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRenameTrip(w http.ResponseWriter, r *http.Request) {
	var req tripUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	title := sanitizeInput(req.Title)
	if err := s.store.Rename(r.Context(), r.PathValue("id"), title); err != nil {
		if errors.Is(err, trips.ErrEmptyTitle) {
			writeError(w, http.StatusBadRequest, "Title cannot be empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to rename trip")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "title": title})
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.Members(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list members")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	memberID, err := s.store.Join(r.Context(), r.PathValue("id"), sanitizeInput(req.Name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to join trip")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"member_id": memberID})
}

func (s *Server) handleGetOptions(w http.ResponseWriter, r *http.Request) {
	title, options, err := s.store.Options(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load options")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"title": title, "options": options})
}

func (s *Server) handleAddOption(w http.ResponseWriter, r *http.Request) {
	var req optionCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	options, err := s.store.AddOption(r.Context(), r.PathValue("id"), trips.VoteKind(req.Type), sanitizeInput(req.Label))
	if err != nil {
		switch {
		case errors.Is(err, trips.ErrEmptyLabel):
			writeError(w, http.StatusBadRequest, "label cannot be empty")
		case errors.Is(err, trips.ErrInvalidKind):
			writeError(w, http.StatusBadRequest, "type must be destination or dates")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to add option")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "options": options})
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	tripID := r.PathValue("id")
	kind := trips.VoteKind(req.Type)

	var before trips.Winner
	if kind == trips.VoteDestination {
		if results, err := s.store.Results(ctx, tripID); err == nil {
			before = results.Winner
		}
	}

	if err := s.store.Vote(ctx, tripID, req.MemberID, kind, sanitizeInput(req.Option)); err != nil {
		if errors.Is(err, trips.ErrInvalidKind) {
			writeError(w, http.StatusBadRequest, "type must be destination or dates")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	s.notifyWinnerChange(r, tripID, kind, before)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// notifyWinnerChange publishes a prefetch message when the vote moved
// the destination winner. Best effort: publish failures only log.
func (s *Server) notifyWinnerChange(r *http.Request, tripID string, kind trips.VoteKind, before trips.Winner) {
	if s.publisher == nil || kind != trips.VoteDestination {
		return
	}

	ctx := r.Context()
	results, err := s.store.Results(ctx, tripID)
	if err != nil {
		return
	}

	winner := results.Winner.Destination
	if winner == "" || winner == before.Destination {
		return
	}

	if err := s.publisher.PublishPrefetch(ctx, tripID, winner); err != nil {
		log.FromContext(ctx).WarnContext(ctx, "Failed to publish prefetch message",
			log.FieldError, err,
			log.FieldTripID, tripID,
			log.FieldDestination, winner)
	}
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.store.Results(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to tally votes")
		return
	}
	writeJSON(w, http.StatusOK, results)
}
