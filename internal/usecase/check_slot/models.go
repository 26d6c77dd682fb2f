package check_slot

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// Request проверяемый слот
type Request struct {
	Date      string
	Time      string
	ServiceID int64
}

// Response доступен ли слот. При отказе заполнены Reason и Message
type Response struct {
	Available bool
	Reason    domain.ReasonCode
	Message   string
}
