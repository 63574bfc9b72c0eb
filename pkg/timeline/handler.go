package timeline

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/klokku/prazos/internal/rest"
	"github.com/klokku/prazos/internal/utils"
	"github.com/klokku/prazos/pkg/business_day"
	"github.com/klokku/prazos/pkg/deadline"
	log "github.com/sirupsen/logrus"
)

const maxSampleCount = 500

type SampleDTO struct {
	ID         string                 `json:"id"`
	Milestones deadline.RawMilestones `json:"milestones"`
	Status     deadline.Status        `json:"status"`
}

type FixResultDTO struct {
	Milestones deadline.RawMilestones `json:"milestones"`
	Changed    bool                   `json:"changed"`
}

type Handler struct {
	arithmetic *business_day.Arithmetic
	defaults   GenerateConfig
	clock      utils.Clock
}

// NewHandler serves samples generated with defaults; Reference is taken from clock per request.
func NewHandler(arithmetic *business_day.Arithmetic, defaults GenerateConfig, clock utils.Clock) *Handler {
	return &Handler{arithmetic: arithmetic, defaults: defaults, clock: clock}
}

// GetSamples godoc
// @Summary Generate random milestone sets
// @Param seed query int false "Random seed; the same seed returns the same samples"
// @Param count query int false "Number of samples (default 1)"
// @Param completed query bool false "Generate closed items"
// @Success 200 {array} SampleDTO
// @Router /api/timeline/sample [get]
func (h *Handler) GetSamples(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	seed, err := parseInt64(query.Get("seed"), 0)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid seed", "seed must be an integer")
		return
	}
	count, err := parseInt64(query.Get("count"), 1)
	if err != nil || count < 1 || count > maxSampleCount {
		rest.WriteError(w, http.StatusBadRequest, "Invalid count", "count must be between 1 and "+strconv.Itoa(maxSampleCount))
		return
	}
	config := h.defaults
	config.Reference = h.clock.Now()
	if value := query.Get("completed"); value != "" {
		completed, err := strconv.ParseBool(value)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid completed", "completed must be true or false")
			return
		}
		config.Completed = completed
	}

	synthesizer := NewSynthesizer(utils.NewRand(seed, h.clock), h.arithmetic)
	samples := synthesizer.GenerateMany(config, int(count))
	log.Debugf("generated %d timeline samples", len(samples))

	dtos := make([]SampleDTO, 0, len(samples))
	for _, s := range samples {
		dtos = append(dtos, SampleDTO{ID: s.ID.String(), Milestones: s.Milestones.Raw(), Status: s.Status})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Fix godoc
// @Summary Move out-of-order milestones forward until the set is chronological
// @Accept json
// @Param request body deadline.RawMilestones true "Milestones"
// @Success 200 {object} FixResultDTO
// @Router /api/timeline/fix [post]
func (h *Handler) Fix(w http.ResponseWriter, r *http.Request) {
	var raw deadline.RawMilestones
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	conventions := h.defaults.Conventions
	ms := deadline.ParseMilestones(raw, conventions.location())
	fixed := ValidateAndFix(ms, conventions)
	rest.WriteJSON(w, http.StatusOK, FixResultDTO{
		Milestones: fixed.Raw(),
		Changed:    fixed.Raw() != ms.Raw(),
	})
}

func parseInt64(value string, fallback int64) (int64, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseInt(value, 10, 64)
}
