package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var extraProvider = func(ctx context.Context) (Dates, error) {
	return ParseDates([]string{"2025-01-25=Aniversário de São Paulo"}), nil
}

func setupHandlerTest() *Handler {
	return NewHandler(newTestCalendar(), extraProvider)
}

func TestHandler_GetForYear(t *testing.T) {
	handler := setupHandlerTest()

	req := httptest.NewRequest(http.MethodGet, "/api/holiday?year=2025", nil)
	w := httptest.NewRecorder()
	handler.GetForYear(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var holidays []HolidayDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&holidays))
	assert.Len(t, holidays, 13)
	assert.Equal(t, HolidayDTO{Date: "2025-01-01", Name: "Confraternização Universal", Category: Fixed}, holidays[0])
	assert.Equal(t, HolidayDTO{Date: "2025-01-25", Name: "Aniversário de São Paulo", Category: Extra}, holidays[1])
}

func TestHandler_GetForYear_InvalidYear(t *testing.T) {
	handler := setupHandlerTest()

	req := httptest.NewRequest(http.MethodGet, "/api/holiday?year=abc", nil)
	w := httptest.NewRecorder()
	handler.GetForYear(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Equal(t, "Invalid year", errResponse.Error)
}

func TestHandler_GetInPeriod(t *testing.T) {
	handler := setupHandlerTest()

	t.Run("should list holidays of the period", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/holiday/period?from=2025-04-01&to=2025-04-30", nil)
		w := httptest.NewRecorder()
		handler.GetInPeriod(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var holidays []HolidayDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&holidays))
		require.Len(t, holidays, 3)
		assert.Equal(t, "Sexta-feira Santa", holidays[0].Name)
		assert.Equal(t, "Páscoa", holidays[1].Name)
		assert.Equal(t, "Tiradentes", holidays[2].Name)
	})

	t.Run("should reject an invalid from date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/holiday/period?from=invalid&to=2025-04-30", nil)
		w := httptest.NewRecorder()
		handler.GetInPeriod(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject an invalid to date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/holiday/period?from=2025-04-01&to=", nil)
		w := httptest.NewRecorder()
		handler.GetInPeriod(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Check(t *testing.T) {
	handler := setupHandlerTest()
	tests := []struct {
		query string
		want  DayCheckDTO
	}{
		{"2025-12-25", DayCheckDTO{Date: "2025-12-25", IsHoliday: true, HolidayName: "Natal"}},
		{"2025-12-26", DayCheckDTO{Date: "2025-12-26", IsBusinessDay: true}},
		{"2025-12-27", DayCheckDTO{Date: "2025-12-27", IsWeekend: true}},
		{"not-a-date", DayCheckDTO{Date: "not-a-date"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/holiday/check?date="+tt.query, nil)
			w := httptest.NewRecorder()
			handler.Check(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var got DayCheckDTO
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandler_ExtraProviderFailure(t *testing.T) {
	handler := NewHandler(newTestCalendar(), func(ctx context.Context) (Dates, error) {
		return Dates{}, errors.New("db down")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/holiday?year=2025", nil)
	w := httptest.NewRecorder()
	handler.GetForYear(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
