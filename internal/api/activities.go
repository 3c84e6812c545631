package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/routine/internal/domain"
	"example.com/routine/internal/persistence"
)

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createActivity(w, r)
	case http.MethodGet:
		h.listActivities(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req CreateActivityRequest
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

	activity, err := h.service.LogActivity(r.Context(), input)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActivityView(*activity))
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
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

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	activities, next, err := h.service.ListActivities(r.Context(), claims.Subject, from, to, cursor, limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		items = append(items, toActivityView(a))
	}
	writeJSON(w, http.StatusOK, ListActivitiesResponse{
		Items:      items,
		NextCursor: persistence.EncodeCursor(next),
	})
}

// CreateActivityRequest is the payload for POST /v1/activities.
type CreateActivityRequest struct {
	Category         string  `json:"category"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Note             *string `json:"note"`
	EnergyCost       *string `json:"energy_cost"`
	WorkType         *string `json:"work_type"`
	PlannedStartTime *string `json:"planned_start_time"`
	PlannedEndTime   *string `json:"planned_end_time"`
	TaskID           *string `json:"task_id"`
}

// Validate ensures request correctness.
func (r CreateActivityRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.StartTime) == "" {
		return errors.New("start_time is required")
	}
	if strings.TrimSpace(r.EndTime) == "" {
		return errors.New("end_time is required")
	}
	return nil
}

func (r CreateActivityRequest) toInput(userID string) (domain.LogActivityInput, error) {
	start, err := parseInstantField(r.StartTime, "start_time")
	if err != nil {
		return domain.LogActivityInput{}, err
	}
	end, err := parseInstantField(r.EndTime, "end_time")
	if err != nil {
		return domain.LogActivityInput{}, err
	}
	plannedStart, err := parseOptionalInstant(r.PlannedStartTime, "planned_start_time")
	if err != nil {
		return domain.LogActivityInput{}, err
	}
	plannedEnd, err := parseOptionalInstant(r.PlannedEndTime, "planned_end_time")
	if err != nil {
		return domain.LogActivityInput{}, err
	}

	input := domain.LogActivityInput{
		UserID:           userID,
		Category:         domain.ActivityCategory(r.Category),
		StartTime:        start,
		EndTime:          end,
		Note:             r.Note,
		PlannedStartTime: plannedStart,
		PlannedEndTime:   plannedEnd,
		TaskID:           r.TaskID,
	}
	if r.EnergyCost != nil {
		cost := domain.EnergyCost(*r.EnergyCost)
		if !cost.Valid() {
			return domain.LogActivityInput{}, errors.New("invalid energy_cost")
		}
		input.EnergyCost = &cost
	}
	if r.WorkType != nil {
		workType := domain.WorkType(*r.WorkType)
		if !workType.Valid() {
			return domain.LogActivityInput{}, errors.New("invalid work_type")
		}
		input.WorkType = &workType
	}
	return input, nil
}

// ActivityView exposes full details about an activity.
type ActivityView struct {
	ActivityID       string     `json:"activity_id"`
	Category         string     `json:"category"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	DurationMinutes  float64    `json:"duration_minutes"`
	Note             *string    `json:"note,omitempty"`
	EnergyCost       *string    `json:"energy_cost,omitempty"`
	WorkType         *string    `json:"work_type,omitempty"`
	PlannedStartTime *time.Time `json:"planned_start_time,omitempty"`
	PlannedEndTime   *time.Time `json:"planned_end_time,omitempty"`
	TaskID           *string    `json:"task_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ListActivitiesResponse packages list results.
type ListActivitiesResponse struct {
	Items      []ActivityView `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

func toActivityView(a domain.Activity) ActivityView {
	view := ActivityView{
		ActivityID:       a.ID,
		Category:         string(a.Category),
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		DurationMinutes:  a.DurationMinutes(),
		Note:             a.Note,
		PlannedStartTime: a.PlannedStartTime,
		PlannedEndTime:   a.PlannedEndTime,
		TaskID:           a.TaskID,
		CreatedAt:        a.CreatedAt,
	}
	if a.EnergyCost != nil {
		cost := string(*a.EnergyCost)
		view.EnergyCost = &cost
	}
	if a.WorkType != nil {
		workType := string(*a.WorkType)
		view.WorkType = &workType
	}
	return view
}
