package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
	"github.com/shopspring/decimal"
)

// reportingService computes financial reports from posted entries.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: reportingRepo}
}

// Ensure reportingService implements the portssvc.ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// GetTrialBalance computes per-account totals as of a date. IsBalanced is a
// whole-ledger health check: it fails only if corrupt data slipped past the
// entry invariant.
func (s *reportingService) GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		logger.Error("Failed to fetch trial balance data", slog.String("error", err.Error()))
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		AsOf: asOf,
		Rows: rows,
	}
	for _, row := range rows {
		report.TotalDebit = report.TotalDebit.Add(row.DebitTotal)
		report.TotalCredit = report.TotalCredit.Add(row.CreditTotal)
	}
	report.IsBalanced = report.TotalDebit.Equal(report.TotalCredit)
	if !report.IsBalanced {
		logger.Error("Trial balance does not balance",
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}
	return report, nil
}

// bucketAssets buckets asset accounts: class 2 (fixed assets) is
// non-current, classes 3/4/5 are current.
func bucketAssets(amounts []domain.AccountAmount) domain.BalanceSheetSection {
	var section domain.BalanceSheetSection
	for _, a := range amounts {
		if a.Class == 2 {
			section.NonCurrent = append(section.NonCurrent, a)
		} else {
			section.Current = append(section.Current, a)
		}
		section.Total = section.Total.Add(a.NetAmount)
	}
	return section
}

// bucketLiabilities buckets liability accounts: class 1 borrowings are
// non-current, class 4 payables are current.
func bucketLiabilities(amounts []domain.AccountAmount) domain.BalanceSheetSection {
	var section domain.BalanceSheetSection
	for _, a := range amounts {
		if a.Class == 1 {
			section.NonCurrent = append(section.NonCurrent, a)
		} else {
			section.Current = append(section.Current, a)
		}
		section.Total = section.Total.Add(a.NetAmount)
	}
	return section
}

func bucketEquity(amounts []domain.AccountAmount) domain.BalanceSheetSection {
	var section domain.BalanceSheetSection
	for _, a := range amounts {
		section.NonCurrent = append(section.NonCurrent, a)
		section.Total = section.Total.Add(a.NetAmount)
	}
	return section
}

// GetBalanceSheet computes the balance sheet as of a date. Revenue and
// expense accounts never appear directly; their cumulative net result is
// folded into equity as retained earnings so the accounting identity holds.
func (s *reportingService) GetBalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, companyID, asOf)
	if err != nil {
		logger.Error("Failed to fetch balance sheet data", slog.String("error", err.Error()))
		return nil, err
	}

	revenue, expenses, err := s.reportingRepo.GetIncomeStatementData(ctx, companyID, time.Time{}, asOf)
	if err != nil {
		logger.Error("Failed to fetch retained earnings data", slog.String("error", err.Error()))
		return nil, err
	}
	retained := decimal.Zero
	for _, r := range revenue {
		retained = retained.Add(r.NetAmount)
	}
	for _, e := range expenses {
		retained = retained.Sub(e.NetAmount)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           bucketAssets(assets),
		Liabilities:      bucketLiabilities(liabilities),
		Equity:           bucketEquity(equity),
		RetainedEarnings: retained,
	}
	report.TotalAssets = report.Assets.Total
	report.TotalLiabilities = report.Liabilities.Total
	report.TotalEquity = report.Equity.Total.Add(retained)
	report.Equity.Total = report.TotalEquity
	report.IdentityHolds = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))
	if !report.IdentityHolds {
		logger.Error("Balance sheet identity does not hold",
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}
	return report, nil
}

// GetIncomeStatement computes revenue and expense over a period.
func (s *reportingService) GetIncomeStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.IncomeStatementReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	revenue, expenses, err := s.reportingRepo.GetIncomeStatementData(ctx, companyID, from, to)
	if err != nil {
		logger.Error("Failed to fetch income statement data", slog.String("error", err.Error()))
		return nil, err
	}

	report := &domain.IncomeStatementReport{
		From:     from,
		To:       to,
		Revenue:  revenue,
		Expenses: expenses,
	}
	for _, r := range revenue {
		report.TotalRevenue = report.TotalRevenue.Add(r.NetAmount)
	}
	for _, e := range expenses {
		report.TotalExpenses = report.TotalExpenses.Add(e.NetAmount)
	}
	report.GrossProfit = report.TotalRevenue.Sub(report.TotalExpenses)
	report.NetIncome = report.GrossProfit
	return report, nil
}
