package services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidActive      = "параметр active должен быть true или false"
	msgInvalidService     = "некорректные данные услуги"
	msgNotFound           = "услуга не найдена"
	msgDuplicateName      = "услуга с таким названием уже существует"
)

// Handler CRUD услуг
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/services?active=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidActive)
			return
		}
		activeOnly = v
	}

	result, err := h.service.ListServices(r.Context(), activeOnly)
	if err != nil {
		h.respondError(w, "GET /services", 0, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/services/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.GetService(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /services/{id}", id, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /services", 0, err)
		return
	}

	h.logger.Info("POST /services - Service created successfully: service_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/services/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateService(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /services/{id}", id, err)
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated successfully: service_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/services/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.DeleteService(r.Context(), id)
	if err != nil {
		h.respondError(w, "DELETE /services/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service removed: service_id=%d, deleted=%t, deactivated=%t",
		id, result.Deleted, result.Deactivated)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	if p, ok := handlers.StoreUnavailable(err); ok {
		h.logger.Warn("%s - Store unavailable", route)
		handlers.RespondProblem(w, p)
		return
	}

	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: service_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrDuplicateName):
		h.logger.Warn("%s - Duplicate service name", route)
		handlers.RespondConflict(w, domain.ReasonDuplicate, msgDuplicateName)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid service data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidService)

	default:
		h.logger.Error("%s - Failed: service_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
