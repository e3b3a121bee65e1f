package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *DisbursementApproval) error
	GetByApprovalID(ctx context.Context, approvalID string) (*DisbursementApproval, error)
	// GetByApprovalIDForUpdate locks the approval row so concurrent
	// signatures serialize on the recount.
	GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*DisbursementApproval, error)
	GetByLoanID(ctx context.Context, loanID uint64) (*DisbursementApproval, error)
	Save(ctx context.Context, a *DisbursementApproval) error
}

type SignatureRepository interface {
	// Create returns approval.ErrDuplicateSignature when the (approval,
	// approver) pair already exists.
	Create(ctx context.Context, s *Signature) error
	ListByApprovalID(ctx context.Context, approvalID uint64) ([]Signature, error)
	// CountByApprovalID recounts all persisted signatures for the approval.
	CountByApprovalID(ctx context.Context, approvalID uint64) (Tally, error)
}
