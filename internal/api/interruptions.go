package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/routine/internal/domain"
)

func (h *Handler) interruptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createInterruption(w, r)
	case http.MethodGet:
		h.listInterruptions(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) createInterruption(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req LogInterruptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	input, err := req.toInput(claims.Subject)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	interruption, err := h.service.LogInterruption(r.Context(), input)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInterruptionView(*interruption))
}

func (h *Handler) listInterruptions(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	to := h.now()
	from := to.AddDate(0, 0, -30)
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := parseInstantField(raw, "from")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := parseInstantField(raw, "to")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		to = parsed
	}

	interruptions, err := h.service.ListInterruptions(r.Context(), claims.Subject, from, to)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]InterruptionView, 0, len(interruptions))
	for _, i := range interruptions {
		items = append(items, toInterruptionView(i))
	}
	writeJSON(w, http.StatusOK, ListInterruptionsResponse{Items: items})
}

// LogInterruptionRequest is the payload for POST /v1/interruptions.
type LogInterruptionRequest struct {
	Type            string  `json:"type"`
	Time            string  `json:"time"`
	EndTime         *string `json:"end_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	ActivityID      *string `json:"activity_id"`
	Note            *string `json:"note"`
}

// Validate ensures request correctness.
func (r LogInterruptionRequest) Validate() error {
	if strings.TrimSpace(r.Type) == "" {
		return errors.New("type is required")
	}
	if strings.TrimSpace(r.Time) == "" {
		return errors.New("time is required")
	}
	return nil
}

func (r LogInterruptionRequest) toInput(userID string) (domain.LogInterruptionInput, error) {
	at, err := parseInstantField(r.Time, "time")
	if err != nil {
		return domain.LogInterruptionInput{}, err
	}
	end, err := parseOptionalInstant(r.EndTime, "end_time")
	if err != nil {
		return domain.LogInterruptionInput{}, err
	}

	return domain.LogInterruptionInput{
		UserID:          userID,
		ActivityID:      r.ActivityID,
		Time:            at,
		EndTime:         end,
		DurationMinutes: r.DurationMinutes,
		Type:            domain.InterruptionType(r.Type),
		Note:            r.Note,
	}, nil
}

// InterruptionView exposes full details about an interruption.
type InterruptionView struct {
	InterruptionID  string     `json:"interruption_id"`
	Type            string     `json:"type"`
	Time            time.Time  `json:"time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	ActivityID      *string    `json:"activity_id,omitempty"`
	Note            *string    `json:"note,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ListInterruptionsResponse packages list results.
type ListInterruptionsResponse struct {
	Items []InterruptionView `json:"items"`
}

func toInterruptionView(i domain.Interruption) InterruptionView {
	return InterruptionView{
		InterruptionID:  i.ID,
		Type:            string(i.Type),
		Time:            i.Time,
		EndTime:         i.EndTime,
		DurationMinutes: i.DurationMinutes,
		ActivityID:      i.ActivityID,
		Note:            i.Note,
		CreatedAt:       i.CreatedAt,
	}
}
