package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/prazos/internal/rest"
	log "github.com/sirupsen/logrus"
)

// RegisterRoutes registers all API endpoints. Extra holiday maintenance and the Google import
// need the database and are left out without it.
func RegisterRoutes(r *mux.Router, deps *Dependencies, db *pgxpool.Pool) {

	r.HandleFunc("/api/health", healthHandler(db)).Methods("GET")

	// Holidays
	r.HandleFunc("/api/holiday", deps.HolidayHandler.GetForYear).Methods("GET")
	r.HandleFunc("/api/holiday/period", deps.HolidayHandler.GetInPeriod).Methods("GET")
	r.HandleFunc("/api/holiday/check", deps.HolidayHandler.Check).Methods("GET")

	// Business days
	r.HandleFunc("/api/businessday/add", deps.BusinessDayHandler.Add).Methods("GET")
	r.HandleFunc("/api/businessday/next", deps.BusinessDayHandler.Next).Methods("GET")
	r.HandleFunc("/api/businessday/previous", deps.BusinessDayHandler.Previous).Methods("GET")
	r.HandleFunc("/api/businessday/diff", deps.BusinessDayHandler.Diff).Methods("GET")

	// Deadlines
	r.HandleFunc("/api/deadline/stats", deps.DeadlineHandler.GetStats).Methods("POST")
	r.HandleFunc("/api/deadline/stats/batch", deps.DeadlineHandler.GetBatchStats).Methods("POST")
	r.HandleFunc("/api/deadline/validate", deps.DeadlineHandler.Validate).Methods("POST")

	// Timeline
	r.HandleFunc("/api/timeline/sample", deps.TimelineHandler.GetSamples).Methods("GET")
	r.HandleFunc("/api/timeline/fix", deps.TimelineHandler.Fix).Methods("POST")

	if deps.ExtraHolidayHandler != nil {
		r.HandleFunc("/api/holiday/extra", deps.ExtraHolidayHandler.List).Methods("GET")
		r.HandleFunc("/api/holiday/extra", deps.ExtraHolidayHandler.Create).Methods("POST")
		r.HandleFunc("/api/holiday/extra/{id}", deps.ExtraHolidayHandler.Delete).Methods("DELETE")
	}

	if deps.GoogleHandler != nil {
		r.HandleFunc("/api/integrations/google/import-holidays", deps.GoogleHandler.ImportHolidays).Methods("POST")
	}
}

type healthDTO struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			rest.WriteJSON(w, http.StatusOK, healthDTO{Status: "ok", Database: "disabled"})
			return
		}
		if err := db.Ping(r.Context()); err != nil {
			log.Errorf("database ping failed: %v", err)
			rest.WriteJSON(w, http.StatusServiceUnavailable, healthDTO{Status: "degraded", Database: "unreachable"})
			return
		}
		rest.WriteJSON(w, http.StatusOK, healthDTO{Status: "ok", Database: "ok"})
	}
}
