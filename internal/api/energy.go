package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/routine/internal/domain"
)

func (h *Handler) energy(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.logEnergy(w, r)
	case http.MethodGet:
		h.listEnergyLogs(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) logEnergy(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req LogEnergyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	date, err := parseDateField(req.Date, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	input := domain.LogEnergyInput{
		UserID:      claims.Subject,
		Date:        date,
		EnergyLevel: req.EnergyLevel,
		StressLevel: req.StressLevel,
		SleepHours:  req.SleepHours,
		Note:        req.Note,
	}
	if req.Mood != nil {
		mood := domain.Mood(*req.Mood)
		input.Mood = &mood
	}

	log, err := h.service.LogEnergy(r.Context(), input)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnergyLogView(*log))
}

func (h *Handler) listEnergyLogs(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	today := domain.DateOf(h.now())
	from, to := today.AddDays(-30), today
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := parseDateField(raw, "from")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := parseDateField(raw, "to")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		to = parsed
	}

	logs, err := h.service.ListEnergyLogs(r.Context(), claims.Subject, from, to)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]EnergyLogView, 0, len(logs))
	for _, l := range logs {
		items = append(items, toEnergyLogView(l))
	}
	writeJSON(w, http.StatusOK, ListEnergyLogsResponse{Items: items})
}

func (h *Handler) energyToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	log, err := h.service.TodayEnergy(r.Context(), claims.Subject)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnergyLogView(*log))
}

// LogEnergyRequest is the payload for POST /v1/energy.
type LogEnergyRequest struct {
	Date        string   `json:"date"`
	EnergyLevel int      `json:"energy_level"`
	StressLevel int      `json:"stress_level"`
	Mood        *string  `json:"mood"`
	SleepHours  *float64 `json:"sleep_hours"`
	Note        *string  `json:"note"`
}

// Validate ensures request correctness.
func (r LogEnergyRequest) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	return nil
}

// EnergyLogView exposes full details about an energy log.
type EnergyLogView struct {
	EnergyID    string      `json:"energy_id"`
	Date        domain.Date `json:"date"`
	EnergyLevel int         `json:"energy_level"`
	StressLevel int         `json:"stress_level"`
	Mood        *string     `json:"mood,omitempty"`
	SleepHours  *float64    `json:"sleep_hours,omitempty"`
	Note        *string     `json:"note,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ListEnergyLogsResponse packages list results.
type ListEnergyLogsResponse struct {
	Items []EnergyLogView `json:"items"`
}

func toEnergyLogView(l domain.EnergyLog) EnergyLogView {
	view := EnergyLogView{
		EnergyID:    l.ID,
		Date:        l.Date,
		EnergyLevel: l.EnergyLevel,
		StressLevel: l.StressLevel,
		SleepHours:  l.SleepHours,
		Note:        l.Note,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Mood != nil {
		mood := string(*l.Mood)
		view.Mood = &mood
	}
	return view
}
