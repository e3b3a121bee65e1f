package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"chama-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	GroupID         string          `json:"group_id"         validate:"required,hex32"`
	BorrowerID      string          `json:"borrower_id"      validate:"required,hex32"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" validate:"dpos,dec2"`
	// omitted → default annual rate
	InterestRate   *decimal.Decimal `json:"interest_rate"    validate:"omitempty,dgte0,dec2"`
	DurationMonths int              `json:"duration_months"  validate:"required,gt=0"`
	Purpose        string           `json:"purpose"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		GroupID:         req.GroupID,
		BorrowerID:      req.BorrowerID,
		PrincipalAmount: req.PrincipalAmount,
		InterestRate:    req.InterestRate,
		DurationMonths:  req.DurationMonths,
		Purpose:         req.Purpose,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Disburse(c echo.Context) error {
	dto, err := h.uc.Disburse(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) MarkDefaulted(c echo.Context) error {
	dto, err := h.uc.MarkDefaulted(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
