package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"chama-backend/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

// paymentEventReq mirrors what the M-Pesa callback relay posts after a
// transaction settles on the rail.
type paymentEventReq struct {
	ReferenceNumber   string          `json:"reference_number"    validate:"required"`
	CheckoutRequestID string          `json:"checkout_request_id"`
	Amount            decimal.Decimal `json:"amount"              validate:"dpos,dec2"`
	PhoneNumber       string          `json:"phone_number"`
	Status            string          `json:"status"              validate:"required,oneof=success failed"`
}

func (h *PaymentHandler) HandleEvent(c echo.Context) error {
	var req paymentEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.HandleEvent(c.Request().Context(), payment.EventInput{
		ReferenceNumber:   req.ReferenceNumber,
		CheckoutRequestID: req.CheckoutRequestID,
		Amount:            req.Amount,
		PhoneNumber:       req.PhoneNumber,
		Status:            req.Status,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
