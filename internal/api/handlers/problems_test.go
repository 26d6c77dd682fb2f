package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

func TestClassifyAvailability(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   domain.ReasonCode
	}{
		{"malformed", availability.ErrMalformedInput, http.StatusBadRequest, domain.ReasonMalformedInput},
		{"past", availability.ErrPastDate, http.StatusUnprocessableEntity, domain.ReasonPastDate},
		{"too soon", availability.ErrTooSoon, http.StatusUnprocessableEntity, domain.ReasonTooSoon},
		{"too far", availability.ErrTooFarInAdvance, http.StatusUnprocessableEntity, domain.ReasonTooFarInAdvance},
		{"hours", availability.ErrOutsideBusinessHours, http.StatusUnprocessableEntity, domain.ReasonOutsideBusinessHours},
		{"conflict", fmt.Errorf("tx: %w", availability.ErrSlotConflict), http.StatusConflict, domain.ReasonSlotConflict},
		{"service", availability.ErrServiceNotFound, http.StatusNotFound, domain.ReasonNotFound},
		{"store", fmt.Errorf("%w: x: %w", availability.ErrInternal, domain.ErrStoreUnavailable), http.StatusServiceUnavailable, domain.ReasonStoreUnavailable},
		{"calendar", fmt.Errorf("%w: timeout", availability.ErrCalendarUnavailable), http.StatusServiceUnavailable, domain.ReasonCalendarUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ClassifyAvailability(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.code, p.Code)
			assert.NotEmpty(t, p.Message)
			assert.Equal(t, tt.status == http.StatusServiceUnavailable, p.Retryable)
		})
	}

	_, ok := ClassifyAvailability(availability.ErrInternal)
	assert.False(t, ok)
}

func TestRespondProblem(t *testing.T) {
	w := httptest.NewRecorder()
	p, _ := ClassifyAvailability(domain.ErrStoreUnavailable)
	RespondProblem(w, p)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.ReasonStoreUnavailable, body.Code)
	assert.True(t, body.Retryable)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Ana", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}{"name":"Bia"}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestReasonMessage(t *testing.T) {
	assert.Equal(t, msgSlotConflict, ReasonMessage(domain.ReasonSlotConflict))
	assert.Empty(t, ReasonMessage(domain.ReasonInternal))
}
