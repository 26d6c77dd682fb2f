package list_appointments

import (
	"net/url"

	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// ParseListRequest читает фильтр из query параметров from, to, status
func ParseListRequest(q url.Values) *models.ListRequest {
	req := &models.ListRequest{}
	if v := q.Get("from"); v != "" {
		req.From = &v
	}
	if v := q.Get("to"); v != "" {
		req.To = &v
	}
	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	return req
}
