package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// export streams the caller's last year of activities and interruptions as a
// single CSV, one row per record with a leading record_type column.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	activities, err := h.service.ActivitiesInWindow(r.Context(), claims.Subject, 365)
	if err != nil {
		serviceError(w, err)
		return
	}
	interruptions, err := h.service.InterruptionsInWindow(r.Context(), claims.Subject, 365)
	if err != nil {
		serviceError(w, err)
		return
	}

	filename := fmt.Sprintf("tracker-export-%s.csv", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"record_type", "id", "category_or_type", "start_or_time", "end_time", "duration_minutes", "note"})

	for _, a := range activities {
		note := ""
		if a.Note != nil {
			note = *a.Note
		}
		_ = writer.Write([]string{
			"activity",
			a.ID,
			string(a.Category),
			a.StartTime.Format(time.RFC3339),
			a.EndTime.Format(time.RFC3339),
			strconv.FormatFloat(a.DurationMinutes(), 'f', 1, 64),
			note,
		})
	}
	for _, i := range interruptions {
		end := ""
		if i.EndTime != nil {
			end = i.EndTime.Format(time.RFC3339)
		}
		duration := ""
		if i.DurationMinutes != nil {
			duration = strconv.Itoa(*i.DurationMinutes)
		}
		note := ""
		if i.Note != nil {
			note = *i.Note
		}
		_ = writer.Write([]string{
			"interruption",
			i.ID,
			string(i.Type),
			i.Time.Format(time.RFC3339),
			end,
			duration,
			note,
		})
	}
	writer.Flush()
}
