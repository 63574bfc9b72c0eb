package holiday

import (
	"context"
	"net/http"
	"strconv"

	"github.com/klokku/prazos/internal/rest"
	log "github.com/sirupsen/logrus"
)

// ExtraDatesProvider returns the current set of extra (regional) holiday dates.
type ExtraDatesProvider func(ctx context.Context) (Dates, error)

type HolidayDTO struct {
	Date     string   `json:"date"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

type DayCheckDTO struct {
	Date          string `json:"date"`
	IsHoliday     bool   `json:"isHoliday"`
	IsBusinessDay bool   `json:"isBusinessDay"`
	IsWeekend     bool   `json:"isWeekend"`
	HolidayName   string `json:"holidayName,omitempty"`
}

type Handler struct {
	calendar   *Calendar
	extraDates ExtraDatesProvider
}

func NewHandler(calendar *Calendar, extraDates ExtraDatesProvider) *Handler {
	return &Handler{calendar: calendar, extraDates: extraDates}
}

// GetForYear godoc
// @Summary List holidays of a year
// @Param year query int true "Year, e.g. 2025"
// @Success 200 {array} HolidayDTO
// @Router /api/holiday [get]
func (h *Handler) GetForYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "year must be an integer")
		return
	}
	extra, ok := h.resolveExtra(w, r)
	if !ok {
		return
	}
	from := NewDate(year, 1, 1)
	to := NewDate(year, 12, 31)
	rest.WriteJSON(w, http.StatusOK, holidaysToDTO(h.calendar.HolidaysInPeriod(from, to, extra)))
}

// GetInPeriod godoc
// @Summary List holidays between two dates, both inclusive
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {array} HolidayDTO
// @Router /api/holiday/period [get]
func (h *Handler) GetInPeriod(w http.ResponseWriter, r *http.Request) {
	from, ok := h.calendar.ParseDate(r.URL.Query().Get("from"))
	if !ok {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "from must be YYYY-MM-DD or RFC3339")
		return
	}
	to, ok := h.calendar.ParseDate(r.URL.Query().Get("to"))
	if !ok {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "to must be YYYY-MM-DD or RFC3339")
		return
	}
	extra, ok := h.resolveExtra(w, r)
	if !ok {
		return
	}
	rest.WriteJSON(w, http.StatusOK, holidaysToDTO(h.calendar.HolidaysInPeriod(from, to, extra)))
}

// Check godoc
// @Summary Classify a single date. Unparseable dates are reported as neither holiday nor business day.
// @Param date query string true "YYYY-MM-DD or RFC3339"
// @Success 200 {object} DayCheckDTO
// @Router /api/holiday/check [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("date")
	extra, ok := h.resolveExtra(w, r)
	if !ok {
		return
	}
	dto := DayCheckDTO{Date: value}
	if date, ok := h.calendar.ParseDate(value); ok {
		info := h.calendar.Describe(date, extra)
		dto = DayCheckDTO{
			Date:          date.String(),
			IsHoliday:     info.IsHoliday,
			IsBusinessDay: info.IsBusinessDay,
			IsWeekend:     info.IsWeekend,
			HolidayName:   info.HolidayName,
		}
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *Handler) resolveExtra(w http.ResponseWriter, r *http.Request) (Dates, bool) {
	if h.extraDates == nil {
		return Dates{}, true
	}
	extra, err := h.extraDates(r.Context())
	if err != nil {
		log.Errorf("unable to load extra holidays: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Unable to load extra holidays", "")
		return Dates{}, false
	}
	return extra, true
}

func holidaysToDTO(holidays []Holiday) []HolidayDTO {
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, h := range holidays {
		dtos = append(dtos, HolidayDTO{Date: h.Date.String(), Name: h.Name, Category: h.Category})
	}
	return dtos
}
