package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
	"github.com/ledgerbooks/bookkeeping_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	standard        domain.Standard
	defaultCurrency string
}

// NewAccountService creates a new account service. The standard decides how
// account numbers map to classes and types.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, standard domain.Standard, defaultCurrency string) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		standard:        standard,
		defaultCurrency: defaultCurrency,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account. Class and type are always derived
// from the account number so they can never contradict it.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountNumber := strings.TrimSpace(req.AccountNumber)
	class, err := accounting.DeriveClass(accountNumber, s.standard)
	if err != nil {
		return nil, err
	}
	accountType, err := accounting.DeriveType(accountNumber, s.standard)
	if err != nil {
		return nil, err
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		CompanyID:     companyID,
		AccountNumber: accountNumber,
		Name:          req.Name,
		AccountType:   accountType,
		Class:         class,
		CurrencyCode:  currency,
		Description:   req.Description,
		Balance:       decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		}
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_number", accountNumber))
	return &account, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByNumber retrieves an account by its account number.
func (s *accountService) GetAccountByNumber(ctx context.Context, companyID string, accountNumber string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByNumber(ctx, companyID, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by number", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves the chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, includeInactive)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// UpdateAccount updates the mutable account fields.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. The account stays
// referenceable from existing entries.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, companyID, accountID, requestingUserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
