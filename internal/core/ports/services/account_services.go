package services

import (
	"context"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)

	// GetAccountByNumber retrieves an account by its account number.
	GetAccountByNumber(ctx context.Context, companyID string, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts for a company.
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account, deriving class and type from
	// the account number under the company's accounting standard.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates the mutable account fields.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, companyID string, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
