package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository persists the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, companyID, accountNumber string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)
	// ListAccountNumbers returns accountNumber -> accountID for a company;
	// the import path uses it to detect missing accounts in one query.
	ListAccountNumbers(ctx context.Context, companyID string) (map[string]string, error)
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, companyID, accountID, userID string, now time.Time) error
}

// AccountBalanceTxRepository exposes the balance maintenance steps that run
// inside an entry's database transaction.
type AccountBalanceTxRepository interface {
	// FindAccountsByIDsForUpdate locks the account rows for the rest of
	// the transaction and returns their current state.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade is the full account persistence surface.
type AccountRepositoryFacade interface {
	AccountRepository
	AccountBalanceTxRepository
}
