package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domainApproval "chama-backend/internal/domain/approval"
	"chama-backend/internal/usecase/approval"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc}
}

type requestApprovalReq struct {
	GroupID           string          `json:"group_id"           validate:"required,hex32"`
	ApprovalType      string          `json:"approval_type"      validate:"required,oneof=loan expense withdrawal"`
	Amount            decimal.Decimal `json:"amount"             validate:"dpos,dec2"`
	LoanID            string          `json:"loan_id"            validate:"omitempty,hex32"`
	ExpenseID         string          `json:"expense_id"         validate:"omitempty,hex32"`
	RequiredApprovals int             `json:"required_approvals" validate:"omitempty,gte=1,lte=10"`
}

func (h *ApprovalHandler) Request(c echo.Context) error {
	var req requestApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Request(c.Request().Context(), approval.RequestInput{
		GroupID:           req.GroupID,
		ApprovalType:      domainApproval.Type(req.ApprovalType),
		Amount:            req.Amount,
		LoanID:            req.LoanID,
		ExpenseID:         req.ExpenseID,
		RequiredApprovals: req.RequiredApprovals,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type signApprovalReq struct {
	ApproverID string `json:"approver_id" validate:"required,hex32"`
	Approved   *bool  `json:"approved"    validate:"required"`
	Comments   string `json:"comments"`
}

func (h *ApprovalHandler) Sign(c echo.Context) error {
	approvalID := c.Param("approval_id")
	if approvalID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing approval_id path param"})
	}
	var req signApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Sign(c.Request().Context(), approval.SignInput{
		ApprovalID: approvalID,
		ApproverID: req.ApproverID,
		Approved:   *req.Approved,
		Comments:   req.Comments,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApprovalHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("approval_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
