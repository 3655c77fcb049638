package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
)

// ReportingRepository computes report aggregates directly in SQL. Only
// posted entries contribute; drafts and cancelled entries never reach a
// report because the status filter is part of every query.
type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for reporting queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetTrialBalanceData folds per-account debit and credit totals over posted
// entries up to the given date.
func (r *ReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.account_number, a.name, a.account_type, a.class,
		       COALESCE(SUM(l.debit_amount), 0) AS debit_total,
		       COALESCE(SUM(l.credit_amount), 0) AS credit_total
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1
		  AND e.status = 'POSTED'
		  AND e.entry_date <= $2
		GROUP BY a.account_id, a.account_number, a.name, a.account_type, a.class
		ORDER BY a.account_number;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountNumber,
			&row.AccountName,
			&row.AccountType,
			&row.Class,
			&row.DebitTotal,
			&row.CreditTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		row.Balance = row.DebitTotal.Sub(row.CreditTotal)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// netAmountQuery folds the signed net amount per account for a set of
// account types. The sign convention flips per type: debit-normal accounts
// net debit minus credit, credit-normal accounts the reverse.
const netAmountQuery = `
	SELECT a.account_id, a.account_number, a.name, a.class,
	       COALESCE(SUM(
	           CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
	                THEN l.debit_amount - l.credit_amount
	                ELSE l.credit_amount - l.debit_amount
	           END), 0) AS net_amount
	FROM entry_lines l
	JOIN journal_entries e ON e.entry_id = l.entry_id
	JOIN accounts a ON a.account_id = l.account_id
	WHERE e.company_id = $1
	  AND e.status = 'POSTED'
	  AND a.account_type = $2
	  AND e.entry_date >= $3
	  AND e.entry_date <= $4
	GROUP BY a.account_id, a.account_number, a.name, a.class
	ORDER BY a.account_number;
`

func (r *ReportingRepository) queryNetAmounts(ctx context.Context, companyID string, accountType domain.AccountType, from, to time.Time) ([]domain.AccountAmount, error) {
	rows, err := r.Pool.Query(ctx, netAmountQuery, companyID, string(accountType), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query net amounts for %s: %w", accountType, err)
	}
	defer rows.Close()

	var result []domain.AccountAmount
	for rows.Next() {
		var a domain.AccountAmount
		if err := rows.Scan(&a.AccountID, &a.AccountNumber, &a.Name, &a.Class, &a.NetAmount); err != nil {
			return nil, fmt.Errorf("failed to scan net amount row: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating net amount rows: %w", err)
	}
	return result, nil
}

var beginningOfTime = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// GetBalanceSheetData returns net amounts per account for the three balance
// sheet sides, cumulative from the beginning of the ledger.
func (r *ReportingRepository) GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error) {
	assets, err = r.queryNetAmounts(ctx, companyID, domain.Asset, beginningOfTime, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	liabilities, err = r.queryNetAmounts(ctx, companyID, domain.Liability, beginningOfTime, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	equity, err = r.queryNetAmounts(ctx, companyID, domain.Equity, beginningOfTime, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	return assets, liabilities, equity, nil
}

// GetIncomeStatementData returns net revenue and expense per account over
// the period.
func (r *ReportingRepository) GetIncomeStatementData(ctx context.Context, companyID string, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error) {
	revenue, err = r.queryNetAmounts(ctx, companyID, domain.Revenue, from, to)
	if err != nil {
		return nil, nil, err
	}
	expenses, err = r.queryNetAmounts(ctx, companyID, domain.Expense, from, to)
	if err != nil {
		return nil, nil, err
	}
	return revenue, expenses, nil
}
