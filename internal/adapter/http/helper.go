package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	domainApproval "chama-backend/internal/domain/approval"
	domainContribution "chama-backend/internal/domain/contribution"
	domainExpense "chama-backend/internal/domain/expense"
	domainLoan "chama-backend/internal/domain/loan"
	ucApproval "chama-backend/internal/usecase/approval"
	ucContribution "chama-backend/internal/usecase/contribution"
	ucExpense "chama-backend/internal/usecase/expense"
	ucLoan "chama-backend/internal/usecase/loan"
	ucPayment "chama-backend/internal/usecase/payment"
	ucRepayment "chama-backend/internal/usecase/repayment"
)

// writeDomainError maps usecase/domain sentinel errors to HTTP responses.
// State mutations never half-apply, so anything unmapped is a plain 500.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ucLoan.ErrInvalidInput),
		errors.Is(err, ucRepayment.ErrInvalidInput),
		errors.Is(err, ucApproval.ErrInvalidInput),
		errors.Is(err, ucExpense.ErrInvalidInput),
		errors.Is(err, ucContribution.ErrInvalidInput),
		errors.Is(err, ucPayment.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainLoan.ErrRepaymentNotFound),
		errors.Is(err, domainApproval.ErrNotFound),
		errors.Is(err, domainExpense.ErrNotFound),
		errors.Is(err, domainContribution.ErrNotFound),
		errors.Is(err, ucPayment.ErrUnknownReference),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domainLoan.ErrInvalidTransition),
		errors.Is(err, domainLoan.ErrNotRepayable),
		errors.Is(err, domainLoan.ErrRepaymentFinalized),
		errors.Is(err, domainApproval.ErrFinalized),
		errors.Is(err, domainApproval.ErrDuplicateSignature),
		errors.Is(err, domainExpense.ErrInvalidTransition),
		errors.Is(err, domainContribution.ErrFinalized),
		errors.Is(err, ucPayment.ErrAmountMismatch),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
