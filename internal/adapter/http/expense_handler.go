package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"chama-backend/internal/usecase/expense"
)

type ExpenseHandler struct{ uc *expense.Usecase }

func NewExpenseHandler(uc *expense.Usecase) *ExpenseHandler { return &ExpenseHandler{uc: uc} }

type createExpenseReq struct {
	GroupID     string          `json:"group_id"     validate:"required,hex32"`
	RequestedBy string          `json:"requested_by" validate:"required,hex32"`
	Description string          `json:"description"  validate:"required"`
	Amount      decimal.Decimal `json:"amount"       validate:"dpos,dec2"`
}

func (h *ExpenseHandler) Create(c echo.Context) error {
	var req createExpenseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), expense.CreateInput{
		GroupID:     req.GroupID,
		RequestedBy: req.RequestedBy,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ExpenseHandler) Pay(c echo.Context) error {
	dto, err := h.uc.MarkPaid(c.Request().Context(), c.Param("expense_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ExpenseHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("expense_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
