package repositories

import (
	"context"
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
)

// ReportingRepository is the read-only fold over posted entry lines. Every
// query filters on posted status in SQL; draft and cancelled history is
// invisible to reports by construction.
type ReportingRepository interface {
	GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
	GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error)
	GetIncomeStatementData(ctx context.Context, companyID string, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error)
}
