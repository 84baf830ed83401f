package payment

import (
	"context"

	"github.com/parlourbd/parlour-server/internal/audit"
	"github.com/parlourbd/parlour-server/internal/models"
	"github.com/parlourbd/parlour-server/internal/store"
)

type RecordInput struct {
	BookID        string
	TransactionID string
	Amount        float64
	Email         string
}

type Record struct {
	payments *store.PaymentStore
	audit    *audit.Dispatcher
}

func NewRecord(payments *store.PaymentStore, audit *audit.Dispatcher) *Record {
	return &Record{
		payments: payments,
		audit:    audit,
	}
}

func (uc *Record) Execute(ctx context.Context, in RecordInput) (*models.Payment, error) {
	payment := &models.Payment{
		BookID:        in.BookID,
		TransactionID: in.TransactionID,
		Amount:        in.Amount,
		Email:         in.Email,
	}

	if err := uc.payments.Record(ctx, payment); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorEmail: in.Email,
		Action:     "payment.record",
		Entity:     "payment",
		EntityID:   payment.ID,
		Metadata:   map[string]string{"bookId": in.BookID, "transactionId": in.TransactionID},
	})

	return payment, nil
}
