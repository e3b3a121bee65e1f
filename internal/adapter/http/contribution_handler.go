package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"chama-backend/internal/usecase/contribution"
)

type ContributionHandler struct{ uc *contribution.Usecase }

func NewContributionHandler(uc *contribution.Usecase) *ContributionHandler {
	return &ContributionHandler{uc: uc}
}

type recordContributionReq struct {
	GroupID         string          `json:"group_id"         validate:"required,hex32"`
	MemberID        string          `json:"member_id"        validate:"required,hex32"`
	Amount          decimal.Decimal `json:"amount"           validate:"dpos,dec2"`
	PaymentMethod   string          `json:"payment_method"   validate:"required,oneof=mpesa bank cash"`
	ReferenceNumber string          `json:"reference_number"`
}

func (h *ContributionHandler) Record(c echo.Context) error {
	var req recordContributionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Record(c.Request().Context(), contribution.RecordInput{
		GroupID:         req.GroupID,
		MemberID:        req.MemberID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContributionHandler) Confirm(c echo.Context) error {
	dto, err := h.uc.Confirm(c.Request().Context(), c.Param("contribution_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContributionHandler) GroupBalance(c echo.Context) error {
	dto, err := h.uc.GroupBalance(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
