package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parlourbd/parlour-server/internal/audit"
	"github.com/parlourbd/parlour-server/internal/httperr"
	"github.com/parlourbd/parlour-server/internal/models"
	"github.com/parlourbd/parlour-server/internal/store"
)

// CodeAlreadyBooked signals that the (email, service, date) slot is taken.
const CodeAlreadyBooked = "already_booked"

type CreateInput struct {
	Email       string
	ServiceName string
	BookedDate  string
	Price       float64
}

type Create struct {
	bookings *store.BookingStore
	audit    *audit.Dispatcher
}

func NewCreate(bookings *store.BookingStore, audit *audit.Dispatcher) *Create {
	return &Create{
		bookings: bookings,
		audit:    audit,
	}
}

func (uc *Create) Execute(ctx context.Context, in CreateInput) (*models.Booking, error) {
	existing, err := uc.bookings.FindBySlot(ctx, in.Email, in.ServiceName, in.BookedDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrBusiness(CodeAlreadyBooked)
	}

	booking := &models.Booking{
		Email:       in.Email,
		ServiceName: in.ServiceName,
		BookedDate:  in.BookedDate,
		Price:       in.Price,
	}

	if err := uc.bookings.Create(ctx, booking); err != nil {
		// a racing insert for the same slot trips the unique index; same
		// answer as the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.ErrBusiness(CodeAlreadyBooked)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorEmail: in.Email,
		Action:     "booking.create",
		Entity:     "booking",
		EntityID:   booking.ID,
		Metadata:   map[string]string{"service": in.ServiceName, "date": in.BookedDate},
	})

	return booking, nil
}
