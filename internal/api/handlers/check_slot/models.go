package check_slot

import (
	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	checkSlot "github.com/m04kA/SMC-BarberBooking/internal/usecase/check_slot"
)

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	Available bool    `json:"available"`
	Reason    *string `json:"reason,omitempty"`
	Message   *string `json:"message,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *CheckSlotResponse {
	out := &CheckSlotResponse{Available: resp.Available}
	if !resp.Available {
		reason := string(resp.Reason)
		message := handlers.ReasonMessage(resp.Reason)
		out.Reason = &reason
		out.Message = &message
	}
	return out
}
