package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourbd/parlour-server/internal/audit"
	"github.com/parlourbd/parlour-server/internal/dto"
	"github.com/parlourbd/parlour-server/internal/httperr"
	"github.com/parlourbd/parlour-server/internal/httpresp"
	"github.com/parlourbd/parlour-server/internal/middleware"
	"github.com/parlourbd/parlour-server/internal/models"
	"github.com/parlourbd/parlour-server/internal/store"
)

type ServiceHandler struct {
	services *store.ServiceStore
	audit    *audit.Dispatcher
}

func NewServiceHandler(services *store.ServiceStore, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{services: services, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Description string  `json:"description"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "could not list services")
		return
	}
	httpresp.OK(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service := models.Service{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}

	if err := h.services.Create(c.Request.Context(), &service); err != nil {
		httperr.Internal(c, "failed_to_create_service", "could not create service")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorEmail: c.GetString(middleware.ContextEmail),
		Action:     "service.create",
		Entity:     "service",
		EntityID:   service.ID,
		Metadata:   map[string]any{"name": service.Name, "price": service.Price},
	})

	httpresp.Created(c, dto.InsertResult{InsertedID: service.ID})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	count, err := h.services.Delete(c.Request.Context(), id)
	if err != nil {
		httperr.Internal(c, "failed_to_delete_service", "could not delete service")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorEmail: c.GetString(middleware.ContextEmail),
		Action:     "service.delete",
		Entity:     "service",
		EntityID:   id,
	})

	httpresp.OK(c, dto.DeleteResult{DeletedCount: count})
}
