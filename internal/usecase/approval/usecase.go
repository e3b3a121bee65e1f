package approval

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domainApproval "chama-backend/internal/domain/approval"
	domainExpense "chama-backend/internal/domain/expense"
	domainLoan "chama-backend/internal/domain/loan"
	"chama-backend/internal/domain/uow"
	"chama-backend/pkg/id"
)

var ErrInvalidInput = errors.New("invalid input")

const defaultRequiredApprovals = 2

type Usecase struct {
	approvals  domainApproval.Repository
	signatures domainApproval.SignatureRepository
	uow        uow.UnitOfWork
}

func NewUsecase(approvals domainApproval.Repository, signatures domainApproval.SignatureRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{approvals: approvals, signatures: signatures, uow: tx}
}

// Request opens a disbursement approval in pending state. For loan and
// expense approvals the linked record must itself still be pending.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*ApprovalDTO, error) {
	if len(in.GroupID) != 32 || !in.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	required := in.RequiredApprovals
	if required == 0 {
		required = defaultRequiredApprovals
	}
	if required < 1 {
		return nil, ErrInvalidInput
	}

	var dto *ApprovalDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a := &domainApproval.DisbursementApproval{
			ApprovalID:        id.NewID32(),
			GroupID:           in.GroupID,
			ApprovalType:      in.ApprovalType,
			Amount:            in.Amount,
			RequiredApprovals: required,
			Status:            domainApproval.StatusPending,
		}

		switch in.ApprovalType {
		case domainApproval.TypeLoan:
			if in.LoanID == "" || in.ExpenseID != "" {
				return ErrInvalidInput
			}
			l, err := r.Loans.GetByLoanID(ctx, in.LoanID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainLoan.ErrNotFound
				}
				return err
			}
			if l.Status != domainLoan.StatusPending {
				return domainLoan.ErrInvalidTransition
			}
			a.LoanID = &l.ID
		case domainApproval.TypeExpense:
			if in.ExpenseID == "" || in.LoanID != "" {
				return ErrInvalidInput
			}
			e, err := r.Expenses.GetByExpenseID(ctx, in.ExpenseID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainExpense.ErrNotFound
				}
				return err
			}
			if e.Status != domainExpense.StatusPending {
				return domainExpense.ErrInvalidTransition
			}
			a.ExpenseID = &e.ID
		case domainApproval.TypeWithdrawal:
			if in.LoanID != "" || in.ExpenseID != "" {
				return ErrInvalidInput
			}
		default:
			return ErrInvalidInput
		}

		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Sign records one approver's decision and re-evaluates quorum, all inside a
// single transaction holding the approval row lock. Two near-simultaneous
// signatures therefore serialize: the second recount always observes the
// first signature.
func (u *Usecase) Sign(ctx context.Context, in SignInput) (*ApprovalDTO, error) {
	if len(in.ApproverID) != 32 || len(in.ApprovalID) != 32 {
		return nil, ErrInvalidInput
	}

	var dto *ApprovalDTO
	err := u.uow.WithinApprovalTx(ctx, in.ApprovalID, func(r uow.Repos, a *domainApproval.DisbursementApproval) error {
		// Terminal approvals accept no further signatures.
		if a.Finalized() {
			return domainApproval.ErrFinalized
		}

		s := &domainApproval.Signature{
			SignatureID: id.NewID32(),
			ApprovalID:  a.ID,
			ApproverID:  in.ApproverID,
			Approved:    in.Approved,
			Comments:    in.Comments,
		}
		// the unique (approval, approver) index rejects resubmission
		if err := r.Signatures.Create(ctx, s); err != nil {
			return err
		}

		tally, err := r.Signatures.CountByApprovalID(ctx, a.ID)
		if err != nil {
			return err
		}
		a.ApprovalsCount = tally.Approved

		now := time.Now().UTC()
		switch {
		case tally.Approved >= a.RequiredApprovals:
			a.Status = domainApproval.StatusApproved
			a.DecidedAt = &now
			if err := cascade(ctx, r, a, true, now); err != nil {
				return err
			}
		case tally.Rejected > 0:
			// single-veto policy: one rejection closes the approval
			a.Status = domainApproval.StatusRejected
			a.DecidedAt = &now
			if err := cascade(ctx, r, a, false, now); err != nil {
				return err
			}
		}

		if err := r.Approvals.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a, s)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainApproval.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, approvalID string) (*ApprovalDTO, error) {
	a, err := u.approvals.GetByApprovalID(ctx, approvalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainApproval.ErrNotFound
		}
		return nil, err
	}
	sigs, err := u.signatures.ListByApprovalID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(a, nil)
	dto.Signatures = toSignatureDTOs(sigs)
	return dto, nil
}

// cascade pushes a terminal approval decision onto the linked loan or
// expense. Runs inside the signing transaction.
func cascade(ctx context.Context, r uow.Repos, a *domainApproval.DisbursementApproval, approved bool, now time.Time) error {
	switch {
	case a.LoanID != nil:
		l, err := r.Loans.GetByID(ctx, *a.LoanID)
		if err != nil {
			return err
		}
		next := domainLoan.StatusRejected
		if approved {
			next = domainLoan.StatusApproved
		}
		if !l.Status.CanTransitionTo(next) {
			return domainLoan.ErrInvalidTransition
		}
		l.Status = next
		if approved {
			l.ApprovedAt = &now
		}
		return r.Loans.Save(ctx, l)
	case a.ExpenseID != nil:
		e, err := r.Expenses.GetByID(ctx, *a.ExpenseID)
		if err != nil {
			return err
		}
		if e.Status != domainExpense.StatusPending {
			return domainExpense.ErrInvalidTransition
		}
		if approved {
			e.Status = domainExpense.StatusApproved
		} else {
			e.Status = domainExpense.StatusRejected
		}
		e.DecidedAt = &now
		return r.Expenses.Save(ctx, e)
	}
	// withdrawal approvals have no linked record
	return nil
}
