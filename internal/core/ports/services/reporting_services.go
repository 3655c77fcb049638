package services

import (
	"context"
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
)

// ReportingSvc defines the financial report computations. All reports fold
// over posted entries only.
type ReportingSvc interface {
	// GetTrialBalance computes per-account debit/credit totals as of a date.
	GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// GetBalanceSheet computes the balance sheet as of a date, folding
	// period revenue and expense into retained earnings.
	GetBalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// GetIncomeStatement computes revenue and expense over a period.
	GetIncomeStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.IncomeStatementReport, error)
}
