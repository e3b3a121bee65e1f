package approvalmock

import (
	"context"
	"errors"

	domain "chama-backend/internal/domain/approval"
)

var errUnimplemented = errors.New("approvalmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, a *domain.DisbursementApproval) error
	GetByApprovalIDFn          func(ctx context.Context, approvalID string) (*domain.DisbursementApproval, error)
	GetByApprovalIDForUpdateFn func(ctx context.Context, approvalID string) (*domain.DisbursementApproval, error)
	GetByLoanIDFn              func(ctx context.Context, loanID uint64) (*domain.DisbursementApproval, error)
	SaveFn                     func(ctx context.Context, a *domain.DisbursementApproval) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, a *domain.DisbursementApproval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApprovalID(ctx context.Context, approvalID string) (*domain.DisbursementApproval, error) {
	if m.GetByApprovalIDFn != nil {
		return m.GetByApprovalIDFn(ctx, approvalID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*domain.DisbursementApproval, error) {
	if m.GetByApprovalIDForUpdateFn != nil {
		return m.GetByApprovalIDForUpdateFn(ctx, approvalID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID uint64) (*domain.DisbursementApproval, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, a *domain.DisbursementApproval) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

// SignatureRepo is a function-backed mock for domain.SignatureRepository.
type SignatureRepo struct {
	CreateFn            func(ctx context.Context, s *domain.Signature) error
	ListByApprovalIDFn  func(ctx context.Context, approvalID uint64) ([]domain.Signature, error)
	CountByApprovalIDFn func(ctx context.Context, approvalID uint64) (domain.Tally, error)
}

var _ domain.SignatureRepository = (*SignatureRepo)(nil)

func (m *SignatureRepo) Create(ctx context.Context, s *domain.Signature) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *SignatureRepo) ListByApprovalID(ctx context.Context, approvalID uint64) ([]domain.Signature, error) {
	if m.ListByApprovalIDFn != nil {
		return m.ListByApprovalIDFn(ctx, approvalID)
	}
	return nil, errUnimplemented
}

func (m *SignatureRepo) CountByApprovalID(ctx context.Context, approvalID uint64) (domain.Tally, error) {
	if m.CountByApprovalIDFn != nil {
		return m.CountByApprovalIDFn(ctx, approvalID)
	}
	return domain.Tally{}, errUnimplemented
}
