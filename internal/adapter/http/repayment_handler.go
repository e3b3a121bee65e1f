package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"chama-backend/internal/usecase/repayment"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type recordRepaymentReq struct {
	Amount          decimal.Decimal `json:"amount"           validate:"dpos,dec2"`
	PaymentMethod   string          `json:"payment_method"   validate:"required,oneof=mpesa bank cash"`
	ReferenceNumber string          `json:"reference_number"`
}

func (h *RepaymentHandler) Record(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req recordRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Record(c.Request().Context(), repayment.RecordInput{
		LoanID:          loanID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RepaymentHandler) Confirm(c echo.Context) error {
	dto, err := h.uc.Confirm(c.Request().Context(), c.Param("repayment_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) Fail(c echo.Context) error {
	dto, err := h.uc.Fail(c.Request().Context(), c.Param("repayment_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
