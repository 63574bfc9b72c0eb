package google

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/klokku/prazos/internal/rest"
)

type ImportedHolidayDTO struct {
	Id     int    `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

type ImportResultDTO struct {
	Imported []ImportedHolidayDTO `json:"imported"`
	Skipped  int                  `json:"skipped"`
}

type Handler struct {
	importer HolidayImporter
}

func NewHandler(importer HolidayImporter) *Handler {
	return &Handler{importer}
}

// ImportHolidays godoc
// @Summary Import regional holidays from Google Calendar
// @Description Stores the all-day events of the holiday calendar that the national calendar does not cover
// @Tags Google
// @Produce json
// @Param year query int true "Year to import"
// @Param region query string false "Region, defaults to the configured one"
// @Success 200 {object} ImportResultDTO
// @Failure 403 {object} rest.ErrorResponse
// @Failure 503 {object} rest.ErrorResponse
// @Router /api/integrations/google/import-holidays [post]
func (h *Handler) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "year must be an integer")
		return
	}

	result, err := h.importer.Import(r.Context(), year, r.URL.Query().Get("region"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			rest.WriteError(w, http.StatusForbidden, "Google Calendar access is not configured", "")
		case errors.Is(err, ErrCalendarUnavailable):
			rest.WriteError(w, http.StatusServiceUnavailable, "Google Calendar is temporarily unavailable", "")
		default:
			rest.WriteError(w, http.StatusInternalServerError, "Unable to import holidays", err.Error())
		}
		return
	}

	dto := ImportResultDTO{
		Imported: make([]ImportedHolidayDTO, 0, len(result.Imported)),
		Skipped:  result.Skipped,
	}
	for _, eh := range result.Imported {
		dto.Imported = append(dto.Imported, ImportedHolidayDTO{
			Id:     eh.Id,
			Date:   eh.Date.String(),
			Name:   eh.Name,
			Region: eh.Region,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}
