package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourbd/parlour-server/internal/dto"
	"github.com/parlourbd/parlour-server/internal/httperr"
	"github.com/parlourbd/parlour-server/internal/httpresp"
	"github.com/parlourbd/parlour-server/internal/middleware"
	"github.com/parlourbd/parlour-server/internal/payments"
	ucpayment "github.com/parlourbd/parlour-server/internal/usecase/payment"
)

type PaymentHandler struct {
	intents  payments.IntentCreator
	recordUC *ucpayment.Record
}

func NewPaymentHandler(intents payments.IntentCreator, recordUC *ucpayment.Record) *PaymentHandler {
	return &PaymentHandler{intents: intents, recordUC: recordUC}
}

// --------- Requests ---------

type CreateIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

type RecordPaymentRequest struct {
	BookID        string  `json:"bookId" binding:"required"`
	TransactionID string  `json:"transactionId" binding:"required"`
	Amount        float64 `json:"amount"`
	Email         string  `json:"email"`
}

// --------- Handlers ---------

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// processor speaks minor units
	amount := int64(req.Price * 100)

	secret, err := h.intents.CreateIntent(c.Request.Context(), amount)
	if err != nil {
		httperr.Internal(c, "payment_intent_failed", "could not create payment intent")
		return
	}

	httpresp.OK(c, gin.H{"clientSecret": secret})
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := req.Email
	if email == "" {
		email = c.GetString(middleware.ContextEmail)
	}

	payment, err := h.recordUC.Execute(c.Request.Context(), ucpayment.RecordInput{
		BookID:        req.BookID,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Email:         email,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_record_payment", "could not record payment")
		return
	}

	httpresp.Created(c, dto.InsertResult{InsertedID: payment.ID})
}
