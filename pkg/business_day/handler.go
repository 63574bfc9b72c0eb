package business_day

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/klokku/prazos/internal/rest"
	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

type DateDTO struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

type DiffDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
	Mode string `json:"mode"`
	Days int    `json:"days"`
}

type Handler struct {
	arithmetic *Arithmetic
	extraDates holiday.ExtraDatesProvider
}

func NewHandler(arithmetic *Arithmetic, extraDates holiday.ExtraDatesProvider) *Handler {
	return &Handler{arithmetic: arithmetic, extraDates: extraDates}
}

// Add godoc
// @Summary Add (or, with a negative n, subtract) business days to a date
// @Param date query string true "YYYY-MM-DD"
// @Param n query int true "Number of business days"
// @Success 200 {object} DateDTO
// @Router /api/businessday/add [get]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r, "date")
	if !ok {
		return
	}
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid n", "n must be an integer")
		return
	}
	if !ValidOffset(n) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid n", fmt.Sprintf("n must be between -%d and %d", MaxBusinessDays, MaxBusinessDays))
		return
	}
	extra, ok := h.resolveExtra(w, r)
	if !ok {
		return
	}
	rest.WriteJSON(w, http.StatusOK, dateToDTO(h.arithmetic.AddBusinessDays(date, n, extra)))
}

// Next godoc
// @Summary First business day strictly after a date
// @Router /api/businessday/next [get]
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r, "date")
	if !ok {
		return
	}
	extra, ok := h.resolveExtra(w, r)
	if !ok {
		return
	}
	rest.WriteJSON(w, http.StatusOK, dateToDTO(h.arithmetic.NextBusinessDay(date, extra)))
}

// Previous godoc
// @Summary Last business day strictly before a date
// @Router /api/businessday/previous [get]
func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r, "date")
	if !ok {
		return
	}
	extra, ok := h.resolveExtra(w, r)
	if !ok {
		return
	}
	rest.WriteJSON(w, http.StatusOK, dateToDTO(h.arithmetic.PreviousBusinessDay(date, extra)))
}

// Diff godoc
// @Summary Distance between two dates in business days (default) or calendar days
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Param mode query string false "business or calendar"
// @Success 200 {object} DiffDTO
// @Router /api/businessday/diff [get]
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	from, ok := h.parseDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := h.parseDate(w, r, "to")
	if !ok {
		return
	}
	mode := r.URL.Query().Get("mode")
	switch mode {
	case "", "business":
		extra, ok := h.resolveExtra(w, r)
		if !ok {
			return
		}
		rest.WriteJSON(w, http.StatusOK, DiffDTO{
			From: from.String(),
			To:   to.String(),
			Mode: "business",
			Days: h.arithmetic.BusinessDaysDiff(from, to, extra),
		})
	case "calendar":
		rest.WriteJSON(w, http.StatusOK, DiffDTO{
			From: from.String(),
			To:   to.String(),
			Mode: mode,
			Days: h.arithmetic.CalendarDaysDiff(from, to),
		})
	default:
		rest.WriteError(w, http.StatusBadRequest, "Invalid mode", "mode must be business or calendar")
	}
}

func (h *Handler) parseDate(w http.ResponseWriter, r *http.Request, param string) (holiday.CalendarDate, bool) {
	date, ok := h.arithmetic.Calendar().ParseDate(r.URL.Query().Get(param))
	if !ok {
		rest.WriteError(w, http.StatusBadRequest, "Invalid "+param+" (date) format", param+" must be YYYY-MM-DD or RFC3339")
		return holiday.CalendarDate{}, false
	}
	return date, true
}

func (h *Handler) resolveExtra(w http.ResponseWriter, r *http.Request) (holiday.Dates, bool) {
	if h.extraDates == nil {
		return holiday.Dates{}, true
	}
	extra, err := h.extraDates(r.Context())
	if err != nil {
		log.Errorf("unable to load extra holidays: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Unable to load extra holidays", "")
		return holiday.Dates{}, false
	}
	return extra, true
}

func dateToDTO(date holiday.CalendarDate) DateDTO {
	return DateDTO{Date: date.String(), Weekday: date.Weekday().String()}
}
