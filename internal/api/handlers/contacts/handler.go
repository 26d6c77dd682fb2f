package contacts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	contactsService "github.com/m04kA/SMC-BarberBooking/internal/service/contacts"
	"github.com/m04kA/SMC-BarberBooking/internal/service/contacts/models"
)

const (
	msgInvalidContactID   = "некорректный ID обращения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidContact     = "некорректные данные обращения"
	msgNotFound           = "обращение не найдено"
)

// Handler обращения через форму обратной связи
type Handler struct {
	service ContactService
	logger  Logger
}

func NewHandler(service ContactService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/contacts
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /contacts", 0, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Stats GET /api/v1/contacts/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Stats(r.Context())
	if err != nil {
		h.respondError(w, "GET /contacts/stats", 0, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/contacts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidContactID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /contacts/{id}", id, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/contacts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contacts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /contacts", 0, err)
		return
	}

	h.logger.Info("POST /contacts - Contact created successfully: contact_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/contacts/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidContactID)
		return
	}

	var req models.UpdateContactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /contacts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /contacts/{id}", id, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/contacts/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidContactID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /contacts/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /contacts/{id} - Contact deleted: contact_id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	if p, ok := handlers.StoreUnavailable(err); ok {
		handlers.RespondProblem(w, p)
		return
	}

	switch {
	case errors.Is(err, contactsService.ErrContactNotFound):
		h.logger.Warn("%s - Contact not found: contact_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, contactsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid contact data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidContact)

	default:
		h.logger.Error("%s - Failed: contact_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
