package cancel_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, id int64) (*models.AppointmentWithMirrorResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.AppointmentWithMirrorResponse)
	return resp, args.Error(1)
}

func serve(svc AppointmentService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{id:[0-9]+}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, target, nil))
	return w
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, int64(5)).Return(&models.AppointmentWithMirrorResponse{
		Appointment: models.AppointmentResponse{ID: 5, Status: string(domain.StatusCancelled)},
		Mirror:      models.MirrorResponse{Status: string(domain.MirrorMirrored)},
	}, nil)

	w := serve(svc, "/appointments/5/cancel")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AppointmentWithMirrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Appointment.Status)
	assert.Equal(t, "mirrored", resp.Mirror.Status)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   domain.ReasonCode
	}{
		{"not found", appointments.ErrAppointmentNotFound, http.StatusNotFound, domain.ReasonNotFound},
		{"store", fmt.Errorf("%w: %w", appointments.ErrInternal, domain.ErrStoreUnavailable), http.StatusServiceUnavailable, domain.ReasonStoreUnavailable},
		{"internal", appointments.ErrInternal, http.StatusInternalServerError, domain.ReasonInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, int64(9)).Return(nil, tt.err)

			w := serve(svc, "/appointments/9/cancel")
			assert.Equal(t, tt.status, w.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			svc.AssertExpectations(t)
		})
	}
}
