package approval

import (
	"time"

	"github.com/shopspring/decimal"

	domainApproval "chama-backend/internal/domain/approval"
)

type RequestInput struct {
	GroupID      string
	ApprovalType domainApproval.Type
	Amount       decimal.Decimal
	// LoanID / ExpenseID are public 32-char ids; exactly one is set for
	// loan/expense approvals, neither for withdrawals.
	LoanID    string
	ExpenseID string
	// 0 means "use the default"
	RequiredApprovals int
}

type SignInput struct {
	ApprovalID string
	ApproverID string
	Approved   bool
	Comments   string
}

type ApprovalDTO struct {
	ApprovalID        string          `json:"approval_id"`
	GroupID           string          `json:"group_id"`
	ApprovalType      string          `json:"approval_type"`
	Amount            decimal.Decimal `json:"amount"`
	RequiredApprovals int             `json:"required_approvals"`
	ApprovalsCount    int             `json:"approvals_count"`
	Status            string          `json:"status"`
	DecidedAt         *time.Time      `json:"decided_at,omitempty"`
	Signature         *SignatureDTO   `json:"signature,omitempty"`
	Signatures        []SignatureDTO  `json:"signatures,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

type SignatureDTO struct {
	SignatureID string    `json:"signature_id"`
	ApproverID  string    `json:"approver_id"`
	Approved    bool      `json:"approved"`
	Comments    string    `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(a *domainApproval.DisbursementApproval, s *domainApproval.Signature) *ApprovalDTO {
	dto := &ApprovalDTO{
		ApprovalID:        a.ApprovalID,
		GroupID:           a.GroupID,
		ApprovalType:      string(a.ApprovalType),
		Amount:            a.Amount,
		RequiredApprovals: a.RequiredApprovals,
		ApprovalsCount:    a.ApprovalsCount,
		Status:            string(a.Status),
		DecidedAt:         a.DecidedAt,
		CreatedAt:         a.CreatedAt,
	}
	if s != nil {
		sd := toSignatureDTO(s)
		dto.Signature = &sd
	}
	return dto
}

func toSignatureDTO(s *domainApproval.Signature) SignatureDTO {
	return SignatureDTO{
		SignatureID: s.SignatureID,
		ApproverID:  s.ApproverID,
		Approved:    s.Approved,
		Comments:    s.Comments,
		CreatedAt:   s.CreatedAt,
	}
}

func toSignatureDTOs(sigs []domainApproval.Signature) []SignatureDTO {
	out := make([]SignatureDTO, 0, len(sigs))
	for i := range sigs {
		out = append(out, toSignatureDTO(&sigs[i]))
	}
	return out
}
