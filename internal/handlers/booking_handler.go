package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourbd/parlour-server/internal/dto"
	"github.com/parlourbd/parlour-server/internal/httperr"
	"github.com/parlourbd/parlour-server/internal/httpresp"
	"github.com/parlourbd/parlour-server/internal/middleware"
	"github.com/parlourbd/parlour-server/internal/store"
	ucbooking "github.com/parlourbd/parlour-server/internal/usecase/booking"
)

const msgAlreadyBooked = "This service is already booked on this date"

type BookingHandler struct {
	bookings *store.BookingStore
	createUC *ucbooking.Create
}

func NewBookingHandler(bookings *store.BookingStore, createUC *ucbooking.Create) *BookingHandler {
	return &BookingHandler{bookings: bookings, createUC: createUC}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	ServiceName string  `json:"serviceName" binding:"required"`
	BookedDate  string  `json:"bookedDate" binding:"required"`
	Price       float64 `json:"price"`
}

// --------- Handlers ---------

// ListForAdmin is the unfiltered view across all owners.
func (h *BookingHandler) ListForAdmin(c *gin.Context) {
	bookings, err := h.bookings.ListAll(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "could not list bookings")
		return
	}
	httpresp.OK(c, bookings)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.bookings.ListByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "could not list bookings")
		return
	}
	httpresp.OK(c, bookings)
}

// GetByID answers the booking or JSON null; null is the not-found signal.
func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.bookings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Internal(c, "failed_to_get_booking", "could not get booking")
		return
	}
	httpresp.OK(c, booking)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	count, err := h.bookings.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Internal(c, "failed_to_delete_booking", "could not delete booking")
		return
	}
	httpresp.OK(c, dto.DeleteResult{DeletedCount: count})
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// a user can only book for themselves
	if req.Email != c.GetString(middleware.ContextEmail) {
		httperr.Forbidden(c, "forbidden_access", "Forbidden access")
		return
	}

	booking, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateInput{
		Email:       req.Email,
		ServiceName: req.ServiceName,
		BookedDate:  req.BookedDate,
		Price:       req.Price,
	})
	if err != nil {
		if httperr.IsBusiness(err, ucbooking.CodeAlreadyBooked) {
			httperr.Conflict(c, ucbooking.CodeAlreadyBooked, msgAlreadyBooked)
			return
		}
		httperr.Internal(c, "failed_to_create_booking", "could not create booking")
		return
	}

	httpresp.Created(c, dto.InsertResult{InsertedID: booking.ID})
}
