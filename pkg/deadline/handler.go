package deadline

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/klokku/prazos/internal/rest"
	log "github.com/sirupsen/logrus"
)

type StatsRequestDTO struct {
	Label      string        `json:"label,omitempty"`
	Milestones RawMilestones `json:"milestones"`
	Mode       string        `json:"mode,omitempty"`
	Status     string        `json:"status,omitempty"`
	Now        string        `json:"now,omitempty"`
}

type ViolationDTO struct {
	Earlier   string    `json:"earlier"`
	EarlierAt time.Time `json:"earlierAt"`
	Later     string    `json:"later"`
	LaterAt   time.Time `json:"laterAt"`
}

type StatsDTO struct {
	Label               string         `json:"label,omitempty"`
	Elapsed             int            `json:"elapsed"`
	Total               int            `json:"total"`
	Remaining           int            `json:"remaining"`
	Overdue             int            `json:"overdue"`
	ProgressPercent     int            `json:"progressPercent"`
	DerivedStatus       Status         `json:"derivedStatus"`
	IsInconsistent      bool           `json:"isInconsistent"`
	InconsistencyDetail string         `json:"inconsistencyDetail,omitempty"`
	Violations          []ViolationDTO `json:"violations"`
}

type Handler struct {
	service     Service
	csvRenderer ReportRenderer
}

func NewHandler(service Service, csvRenderer ReportRenderer) *Handler {
	return &Handler{service: service, csvRenderer: csvRenderer}
}

// GetStats godoc
// @Summary Compute deadline statistics for one milestone set
// @Accept json
// @Produce json
// @Param request body StatsRequestDTO true "Milestones"
// @Success 200 {object} StatsDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/deadline/stats [post]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	var body StatsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	request, err := requestFromDTO(body)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	stats, err := h.service.Compute(r.Context(), request)
	if err != nil {
		log.Errorf("failed to compute stats: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statsToDTO(request.Label, stats))
}

// GetBatchStats godoc
// @Summary Compute deadline statistics for several labelled milestone sets
// @Accept json
// @Produce json,text/csv
// @Param request body []StatsRequestDTO true "Labelled milestone sets"
// @Success 200 {array} StatsDTO
// @Router /api/deadline/stats/batch [post]
func (h *Handler) GetBatchStats(w http.ResponseWriter, r *http.Request) {
	var body []StatsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	requests := make([]Request, 0, len(body))
	for _, dto := range body {
		request, err := requestFromDTO(dto)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid request", dto.Label+": "+err.Error())
			return
		}
		requests = append(requests, request)
	}
	results, err := h.service.ComputeBatch(r.Context(), requests)
	if err != nil {
		log.Errorf("failed to compute batch stats: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		report, err := h.csvRenderer.Render(results)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=deadline-report.csv")
		if _, err := w.Write([]byte(report)); err != nil {
			log.Errorf("failed to write csv report: %v", err)
		}
		return
	}

	dtos := make([]StatsDTO, 0, len(results))
	for _, result := range results {
		dtos = append(dtos, statsToDTO(result.Label, result.Stats))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Validate godoc
// @Summary Report milestones that are out of chronological order
// @Accept json
// @Produce json
// @Param request body RawMilestones true "Milestones"
// @Success 200 {array} ViolationDTO
// @Router /api/deadline/validate [post]
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var raw RawMilestones
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, violationsToDTO(h.service.Validate(raw)))
}

func requestFromDTO(dto StatsRequestDTO) (Request, error) {
	mode, err := ParseCountingMode(dto.Mode)
	if err != nil {
		return Request{}, err
	}
	status, err := ParseStatus(dto.Status)
	if err != nil {
		return Request{}, err
	}
	request := Request{
		Label:      dto.Label,
		Milestones: dto.Milestones,
		Mode:       mode,
		Status:     status,
	}
	if dto.Now != "" {
		now, err := time.Parse(time.RFC3339, dto.Now)
		if err != nil {
			return Request{}, errors.New("now must be in RFC3339 format")
		}
		request.Now = &now
	}
	return request, nil
}

func statsToDTO(label string, stats Stats) StatsDTO {
	return StatsDTO{
		Label:               label,
		Elapsed:             stats.Elapsed,
		Total:               stats.Total,
		Remaining:           stats.Remaining,
		Overdue:             stats.Overdue,
		ProgressPercent:     stats.ProgressPercent,
		DerivedStatus:       stats.DerivedStatus,
		IsInconsistent:      stats.IsInconsistent,
		InconsistencyDetail: stats.InconsistencyDetail,
		Violations:          violationsToDTO(stats.Violations),
	}
}

func violationsToDTO(violations []Violation) []ViolationDTO {
	dtos := make([]ViolationDTO, 0, len(violations))
	for _, v := range violations {
		dtos = append(dtos, ViolationDTO{
			Earlier:   v.Earlier.String(),
			EarlierAt: v.EarlierAt,
			Later:     v.Later.String(),
			LaterAt:   v.LaterAt,
		})
	}
	return dtos
}
