package dto

import (
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the expected JSON body for account creation.
// Class and AccountType are derived from the account number, never supplied.
type CreateAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required,numeric,min=3,max=20"`
	Name          string `json:"name" binding:"required,max=255"`
	CurrencyCode  string `json:"currencyCode" binding:"omitempty,len=3"`
	Description   string `json:"description" binding:"max=500"`
}

// UpdateAccountRequest carries the mutable account fields. The account
// number, class and type are frozen at creation.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	CompanyID     string             `json:"companyID"`
	AccountNumber string             `json:"accountNumber"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Class         int                `json:"class"`
	CurrencyCode  string             `json:"currencyCode"`
	Description   string             `json:"description,omitempty"`
	Balance       decimal.Decimal    `json:"balance"`
	IsActive      bool               `json:"isActive"`
	Imported      bool               `json:"imported"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ListAccountsResponse wraps a full chart of accounts listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its API representation.
func ToAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     account.AccountID,
		CompanyID:     account.CompanyID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		AccountType:   account.AccountType,
		Class:         account.Class,
		CurrencyCode:  account.CurrencyCode,
		Description:   account.Description,
		Balance:       account.Balance,
		IsActive:      account.IsActive,
		Imported:      account.Imported,
		CreatedAt:     account.CreatedAt,
		LastUpdatedAt: account.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain accounts.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, ToAccountResponse(a))
	}
	return resp
}
