package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "chama-backend/internal/adapter/http"
	"chama-backend/internal/adapter/middleware"
	"chama-backend/internal/adapter/repository/mysql"
	"chama-backend/internal/config"
	domainApproval "chama-backend/internal/domain/approval"
	domainContribution "chama-backend/internal/domain/contribution"
	domainExpense "chama-backend/internal/domain/expense"
	domainLoan "chama-backend/internal/domain/loan"
	"chama-backend/internal/infrastructure/cache"
	"chama-backend/internal/infrastructure/db"
	ucApproval "chama-backend/internal/usecase/approval"
	ucContribution "chama-backend/internal/usecase/contribution"
	ucExpense "chama-backend/internal/usecase/expense"
	ucLoan "chama-backend/internal/usecase/loan"
	ucPayment "chama-backend/internal/usecase/payment"
	ucRepayment "chama-backend/internal/usecase/repayment"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&domainLoan.Loan{},
		&domainLoan.Repayment{},
		&domainApproval.DisbursementApproval{},
		&domainApproval.Signature{},
		&domainExpense.Expense{},
		&domainContribution.Contribution{},
		&domainContribution.GroupAccount{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories
	loans := mysql.NewLoanRepository(gdb)
	repayments := mysql.NewRepaymentRepository(gdb)
	approvals := mysql.NewApprovalRepository(gdb)
	signatures := mysql.NewSignatureRepository(gdb)
	expenses := mysql.NewExpenseRepository(gdb)
	contributions := mysql.NewContributionRepository(gdb)
	groupAccounts := mysql.NewGroupAccountRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	// usecases
	loanUC := ucLoan.NewUsecase(loans, tx)
	repaymentUC := ucRepayment.NewUsecase(loans, repayments, tx)
	approvalUC := ucApproval.NewUsecase(approvals, signatures, tx)
	expenseUC := ucExpense.NewUsecase(expenses)
	contributionUC := ucContribution.NewUsecase(contributions, groupAccounts, tx)
	paymentUC := ucPayment.NewUsecase(repayments, contributions, repaymentUC, contributionUC)

	// handlers
	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(loanUC)
	repaymentH := httpadp.NewRepaymentHandler(repaymentUC)
	approvalH := httpadp.NewApprovalHandler(approvalUC)
	expenseH := httpadp.NewExpenseHandler(expenseUC)
	contributionH := httpadp.NewContributionHandler(contributionUC)
	paymentH := httpadp.NewPaymentHandler(paymentUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/loans", loanH.Apply, idemp)
	e.GET("/loans/:loan_id", loanH.Get)
	e.POST("/loans/:loan_id/disburse", loanH.Disburse, idemp)
	e.POST("/loans/:loan_id/default", loanH.MarkDefaulted, idemp)
	e.POST("/loans/:loan_id/repayments", repaymentH.Record, idemp)
	e.POST("/repayments/:repayment_id/confirm", repaymentH.Confirm, idemp)
	e.POST("/repayments/:repayment_id/fail", repaymentH.Fail, idemp)

	e.POST("/approvals", approvalH.Request, idemp)
	e.GET("/approvals/:approval_id", approvalH.Get)
	e.POST("/approvals/:approval_id/signatures", approvalH.Sign, idemp)

	e.POST("/expenses", expenseH.Create, idemp)
	e.GET("/expenses/:expense_id", expenseH.Get)
	e.POST("/expenses/:expense_id/pay", expenseH.Pay, idemp)

	e.POST("/contributions", contributionH.Record, idemp)
	e.POST("/contributions/:contribution_id/confirm", contributionH.Confirm, idemp)
	e.GET("/groups/:group_id/balance", contributionH.GroupBalance)

	// the M-Pesa relay authenticates upstream and retries on its own schedule,
	// so the event route skips the client idempotency headers
	e.POST("/payments/events", paymentH.HandleEvent)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
