package approval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainApproval "chama-backend/internal/domain/approval"
	domainExpense "chama-backend/internal/domain/expense"
	domainLoan "chama-backend/internal/domain/loan"
	"chama-backend/internal/domain/uow"
	"chama-backend/internal/testutil/approvalmock"
	"chama-backend/internal/testutil/loanmock"
	"chama-backend/internal/testutil/uowmock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func hex32(ch string) string { return strings.Repeat(ch, 32) }

// signFixture simulates the signature store behind a locked approval: Create
// appends (rejecting duplicates like the unique index would) and
// CountByApprovalID recounts the full set.
type signFixture struct {
	approval *domainApproval.DisbursementApproval
	loan     *domainLoan.Loan
	sigs     []domainApproval.Signature

	savedApproval *domainApproval.DisbursementApproval
	savedLoan     *domainLoan.Loan
}

func (f *signFixture) usecase() *Usecase {
	approvals := &approvalmock.Repo{
		SaveFn: func(ctx context.Context, a *domainApproval.DisbursementApproval) error {
			f.savedApproval = a
			return nil
		},
	}
	signatures := &approvalmock.SignatureRepo{
		CreateFn: func(ctx context.Context, s *domainApproval.Signature) error {
			for _, existing := range f.sigs {
				if existing.ApproverID == s.ApproverID {
					return domainApproval.ErrDuplicateSignature
				}
			}
			f.sigs = append(f.sigs, *s)
			return nil
		},
		CountByApprovalIDFn: func(ctx context.Context, approvalID uint64) (domainApproval.Tally, error) {
			var t domainApproval.Tally
			for _, s := range f.sigs {
				if s.Approved {
					t.Approved++
				} else {
					t.Rejected++
				}
			}
			return t, nil
		},
	}
	loans := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domainLoan.Loan, error) { return f.loan, nil },
		SaveFn:    func(ctx context.Context, l *domainLoan.Loan) error { f.savedLoan = l; return nil },
	}
	tx := &uowmock.UoW{
		WithinApprovalTxFn: func(ctx context.Context, approvalID string, fn func(r uow.Repos, a *domainApproval.DisbursementApproval) error) error {
			return fn(uow.Repos{Approvals: approvals, Signatures: signatures, Loans: loans}, f.approval)
		},
	}
	return NewUsecase(approvals, signatures, tx)
}

func newLoanApproval(required int) *signFixture {
	loanPK := uint64(11)
	return &signFixture{
		approval: &domainApproval.DisbursementApproval{
			ID:                3,
			ApprovalID:        hex32("a"),
			GroupID:           hex32("b"),
			ApprovalType:      domainApproval.TypeLoan,
			Amount:            dec("50000"),
			RequiredApprovals: required,
			Status:            domainApproval.StatusPending,
			LoanID:            &loanPK,
		},
		loan: &domainLoan.Loan{ID: loanPK, LoanID: hex32("c"), Status: domainLoan.StatusPending},
	}
}

func sign(t *testing.T, uc *Usecase, approvalID, approver string, approved bool) (*ApprovalDTO, error) {
	t.Helper()
	return uc.Sign(context.Background(), SignInput{
		ApprovalID: approvalID,
		ApproverID: approver,
		Approved:   approved,
	})
}

func TestSign_QuorumApprovesAndCascades(t *testing.T) {
	f := newLoanApproval(2)
	uc := f.usecase()

	// first approval: below quorum, stays pending
	dto, err := sign(t, uc, f.approval.ApprovalID, hex32("1"), true)
	if err != nil {
		t.Fatalf("first Sign err: %v", err)
	}
	if dto.Status != string(domainApproval.StatusPending) {
		t.Fatalf("status after 1 signature = %s, want pending", dto.Status)
	}
	if dto.ApprovalsCount != 1 {
		t.Fatalf("approvals_count = %d, want 1", dto.ApprovalsCount)
	}
	if f.savedLoan != nil {
		t.Fatal("loan must not cascade below quorum")
	}

	// second distinct approver: quorum reached
	dto, err = sign(t, uc, f.approval.ApprovalID, hex32("2"), true)
	if err != nil {
		t.Fatalf("second Sign err: %v", err)
	}
	if dto.Status != string(domainApproval.StatusApproved) {
		t.Fatalf("status after quorum = %s, want approved", dto.Status)
	}
	if dto.ApprovalsCount != 2 {
		t.Fatalf("approvals_count = %d, want 2", dto.ApprovalsCount)
	}
	if dto.DecidedAt == nil {
		t.Fatal("DecidedAt not stamped")
	}
	if f.savedLoan == nil || f.savedLoan.Status != domainLoan.StatusApproved {
		t.Fatalf("loan cascade missing: %+v", f.savedLoan)
	}
	if f.savedLoan.ApprovedAt == nil {
		t.Fatal("loan ApprovedAt not stamped")
	}
}

func TestSign_NeverApprovesBelowQuorum(t *testing.T) {
	f := newLoanApproval(3)
	uc := f.usecase()

	for i, approver := range []string{hex32("1"), hex32("2")} {
		dto, err := sign(t, uc, f.approval.ApprovalID, approver, true)
		if err != nil {
			t.Fatalf("Sign %d err: %v", i+1, err)
		}
		if dto.Status != string(domainApproval.StatusPending) {
			t.Fatalf("approved with %d of 3 signatures", i+1)
		}
	}
}

func TestSign_SingleVetoRejects(t *testing.T) {
	f := newLoanApproval(2)
	uc := f.usecase()

	if _, err := sign(t, uc, f.approval.ApprovalID, hex32("1"), true); err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	dto, err := uc.Sign(context.Background(), SignInput{
		ApprovalID: f.approval.ApprovalID,
		ApproverID: hex32("2"),
		Approved:   false,
		Comments:   "collateral docs missing",
	})
	if err != nil {
		t.Fatalf("veto Sign err: %v", err)
	}
	if dto.Status != string(domainApproval.StatusRejected) {
		t.Fatalf("status = %s, want rejected", dto.Status)
	}
	if dto.ApprovalsCount != 1 {
		t.Fatalf("approvals_count = %d, want 1 (rejections not counted)", dto.ApprovalsCount)
	}
	if f.savedLoan == nil || f.savedLoan.Status != domainLoan.StatusRejected {
		t.Fatalf("loan rejection cascade missing: %+v", f.savedLoan)
	}
}

func TestSign_DuplicateApprover(t *testing.T) {
	f := newLoanApproval(2)
	uc := f.usecase()

	if _, err := sign(t, uc, f.approval.ApprovalID, hex32("1"), true); err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	if _, err := sign(t, uc, f.approval.ApprovalID, hex32("1"), true); !errors.Is(err, domainApproval.ErrDuplicateSignature) {
		t.Fatalf("err = %v, want ErrDuplicateSignature", err)
	}
	// one approver can never satisfy a quorum of two
	if len(f.sigs) != 1 {
		t.Fatalf("persisted signatures = %d, want 1", len(f.sigs))
	}
	if f.approval.Status != domainApproval.StatusPending {
		t.Fatalf("status = %s, want pending", f.approval.Status)
	}
}

func TestSign_TerminalApprovalRefused(t *testing.T) {
	for _, s := range []domainApproval.Status{domainApproval.StatusApproved, domainApproval.StatusRejected} {
		f := newLoanApproval(2)
		f.approval.Status = s
		uc := f.usecase()

		if _, err := sign(t, uc, f.approval.ApprovalID, hex32("9"), true); !errors.Is(err, domainApproval.ErrFinalized) {
			t.Fatalf("status %s: err = %v, want ErrFinalized", s, err)
		}
		if len(f.sigs) != 0 {
			t.Fatalf("signature persisted against terminal approval")
		}
	}
}

func TestSign_InvalidInput(t *testing.T) {
	uc := NewUsecase(&approvalmock.Repo{}, &approvalmock.SignatureRepo{}, uowmock.New())

	if _, err := sign(t, uc, "short", hex32("1"), true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := sign(t, uc, hex32("a"), "nobody", true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRequest_LoanApproval(t *testing.T) {
	l := &domainLoan.Loan{ID: 11, LoanID: hex32("c"), Status: domainLoan.StatusPending}
	var created *domainApproval.DisbursementApproval
	approvals := &approvalmock.Repo{
		CreateFn: func(ctx context.Context, a *domainApproval.DisbursementApproval) error {
			created = a
			return nil
		},
	}
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) { return l, nil },
	}
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Approvals: approvals, Loans: loans})
		},
	}
	uc := NewUsecase(approvals, &approvalmock.SignatureRepo{}, tx)

	dto, err := uc.Request(context.Background(), RequestInput{
		GroupID:      hex32("b"),
		ApprovalType: domainApproval.TypeLoan,
		Amount:       dec("50000"),
		LoanID:       l.LoanID,
	})
	if err != nil {
		t.Fatalf("Request err: %v", err)
	}
	if dto.Status != string(domainApproval.StatusPending) {
		t.Fatalf("status = %s, want pending", dto.Status)
	}
	if dto.RequiredApprovals != 2 {
		t.Fatalf("required_approvals = %d, want default 2", dto.RequiredApprovals)
	}
	if created == nil || created.LoanID == nil || *created.LoanID != l.ID {
		t.Fatalf("approval not linked to loan: %+v", created)
	}
}

func TestRequest_RejectsNonPendingLoan(t *testing.T) {
	l := &domainLoan.Loan{ID: 11, LoanID: hex32("c"), Status: domainLoan.StatusApproved}
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) { return l, nil },
	}
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Approvals: &approvalmock.Repo{}, Loans: loans})
		},
	}
	uc := NewUsecase(&approvalmock.Repo{}, &approvalmock.SignatureRepo{}, tx)

	_, err := uc.Request(context.Background(), RequestInput{
		GroupID:      hex32("b"),
		ApprovalType: domainApproval.TypeLoan,
		Amount:       dec("50000"),
		LoanID:       l.LoanID,
	})
	if !errors.Is(err, domainLoan.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestRequest_TypeLinkMismatch(t *testing.T) {
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{})
		},
	}
	uc := NewUsecase(&approvalmock.Repo{}, &approvalmock.SignatureRepo{}, tx)

	cases := []RequestInput{
		{GroupID: hex32("b"), ApprovalType: domainApproval.TypeLoan, Amount: dec("100")},                                               // loan type, no loan
		{GroupID: hex32("b"), ApprovalType: domainApproval.TypeExpense, Amount: dec("100")},                                            // expense type, no expense
		{GroupID: hex32("b"), ApprovalType: domainApproval.TypeLoan, Amount: dec("100"), LoanID: hex32("c"), ExpenseID: hex32("d")},    // both links
		{GroupID: hex32("b"), ApprovalType: domainApproval.TypeWithdrawal, Amount: dec("100"), LoanID: hex32("c")},                     // withdrawal with link
		{GroupID: hex32("b"), ApprovalType: domainApproval.Type("transfer"), Amount: dec("100")},                                       // unknown type
		{GroupID: hex32("b"), ApprovalType: domainApproval.TypeWithdrawal, Amount: dec("100"), RequiredApprovals: -1},                  // bad quorum
		{GroupID: "nope", ApprovalType: domainApproval.TypeWithdrawal, Amount: dec("100")},                                             // bad group
		{GroupID: hex32("b"), ApprovalType: domainApproval.TypeWithdrawal, Amount: decimal.Zero},                                       // zero amount
	}
	for i, in := range cases {
		if _, err := uc.Request(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestSign_ExpenseCascade(t *testing.T) {
	expensePK := uint64(21)
	e := &domainExpense.Expense{ID: expensePK, ExpenseID: hex32("e"), Status: domainExpense.StatusPending}
	f := &signFixture{
		approval: &domainApproval.DisbursementApproval{
			ID:                4,
			ApprovalID:        hex32("a"),
			GroupID:           hex32("b"),
			ApprovalType:      domainApproval.TypeExpense,
			Amount:            dec("3000"),
			RequiredApprovals: 1,
			Status:            domainApproval.StatusPending,
			ExpenseID:         &expensePK,
		},
	}
	var savedExpense *domainExpense.Expense
	expenses := &expenseRepoStub{
		getByID: func(ctx context.Context, id uint64) (*domainExpense.Expense, error) { return e, nil },
		save:    func(ctx context.Context, ex *domainExpense.Expense) error { savedExpense = ex; return nil },
	}
	approvals := &approvalmock.Repo{}
	signatures := &approvalmock.SignatureRepo{
		CountByApprovalIDFn: func(ctx context.Context, approvalID uint64) (domainApproval.Tally, error) {
			return domainApproval.Tally{Approved: 1}, nil
		},
	}
	tx := &uowmock.UoW{
		WithinApprovalTxFn: func(ctx context.Context, approvalID string, fn func(r uow.Repos, a *domainApproval.DisbursementApproval) error) error {
			return fn(uow.Repos{Approvals: approvals, Signatures: signatures, Expenses: expenses}, f.approval)
		},
	}
	uc := NewUsecase(approvals, signatures, tx)

	dto, err := sign(t, uc, f.approval.ApprovalID, hex32("1"), true)
	if err != nil {
		t.Fatalf("Sign err: %v", err)
	}
	if dto.Status != string(domainApproval.StatusApproved) {
		t.Fatalf("status = %s, want approved", dto.Status)
	}
	if savedExpense == nil || savedExpense.Status != domainExpense.StatusApproved {
		t.Fatalf("expense cascade missing: %+v", savedExpense)
	}
	if savedExpense.DecidedAt == nil {
		t.Fatal("expense DecidedAt not stamped")
	}
}

// expenseRepoStub keeps this package free of an expense mock dependency.
type expenseRepoStub struct {
	getByID func(ctx context.Context, id uint64) (*domainExpense.Expense, error)
	save    func(ctx context.Context, e *domainExpense.Expense) error
}

func (s *expenseRepoStub) Create(ctx context.Context, e *domainExpense.Expense) error { return nil }
func (s *expenseRepoStub) GetByExpenseID(ctx context.Context, expenseID string) (*domainExpense.Expense, error) {
	return nil, errors.New("not implemented")
}
func (s *expenseRepoStub) GetByID(ctx context.Context, id uint64) (*domainExpense.Expense, error) {
	return s.getByID(ctx, id)
}
func (s *expenseRepoStub) Save(ctx context.Context, e *domainExpense.Expense) error {
	return s.save(ctx, e)
}
