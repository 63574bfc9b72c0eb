package extra_holiday

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/prazos/internal/rest"
	"github.com/klokku/prazos/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

type ExtraHolidayDTO struct {
	Id     int    `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List stored extra holidays of a region
// @Param region query string false "Region, defaults to the configured one"
// @Param from query string false "YYYY-MM-DD, requires to"
// @Param to query string false "YYYY-MM-DD, requires from"
// @Success 200 {array} ExtraHolidayDTO
// @Router /api/holiday/extra [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	region := query.Get("region")

	var holidays []ExtraHoliday
	var err error
	if query.Has("from") || query.Has("to") {
		from, fromOk := holiday.ParseDate(query.Get("from"))
		to, toOk := holiday.ParseDate(query.Get("to"))
		if !fromOk || !toOk {
			rest.WriteError(w, http.StatusBadRequest, "Invalid period", "from and to must both be YYYY-MM-DD")
			return
		}
		holidays, err = h.service.GetInRange(r.Context(), region, from, to)
	} else {
		holidays, err = h.service.GetAll(r.Context(), region)
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Unable to list extra holidays", "")
		return
	}
	dtos := make([]ExtraHolidayDTO, 0, len(holidays))
	for _, eh := range holidays {
		dtos = append(dtos, toDTO(eh))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Store an extra holiday. Storing an existing date of the region renames it.
// @Accept json
// @Param holiday body ExtraHolidayDTO true "Holiday; id is ignored"
// @Success 201 {object} ExtraHolidayDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/holiday/extra [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto ExtraHolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	date, ok := holiday.ParseDate(dto.Date)
	if !ok {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be YYYY-MM-DD")
		return
	}

	stored, err := h.service.Store(r.Context(), ExtraHoliday{Date: date, Name: dto.Name, Region: dto.Region})
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, "Unable to store extra holiday", "")
		return
	}
	log.Infof("extra holiday %s (%s) stored for %s", stored.Date, stored.Name, stored.Region)
	rest.WriteJSON(w, http.StatusCreated, toDTO(stored))
}

// Delete godoc
// @Summary Delete an extra holiday
// @Param id path int true "Extra holiday id"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/holiday/extra/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid extra holiday id", "")
		return
	}
	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrExtraHolidayNotFound) {
		rest.WriteError(w, http.StatusNotFound, "Extra holiday not found", "")
		return
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Unable to delete extra holiday", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(h ExtraHoliday) ExtraHolidayDTO {
	return ExtraHolidayDTO{Id: h.Id, Date: h.Date.String(), Name: h.Name, Region: h.Region}
}
