package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Standard identifies the accounting standard a company's chart of accounts
// follows. The standard decides which leading digits are valid account
// classes and how classes map to account types.
type Standard string

const (
	// StandardPCG is the French plan comptable général: classes 1-7.
	StandardPCG Standard = "PCG"
	// StandardSYSCOHADA is the OHADA chart: classes 1-8, where class 8
	// carries off-balance and extraordinary items.
	StandardSYSCOHADA Standard = "SYSCOHADA"
)

// Account is one line of the chart of accounts. Identity is
// (CompanyID, AccountNumber); Class is always re-derivable from
// AccountNumber under the company's standard and must never drift from it.
type Account struct {
	AccountID     string          `json:"accountID"`
	CompanyID     string          `json:"companyID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	Class         int             `json:"class"` // leading digit of AccountNumber, 1-8
	CurrencyCode  string          `json:"currencyCode"`
	Description   string          `json:"description"`
	Balance       decimal.Decimal `json:"balance"` // cached; posted entries only
	IsActive      bool            `json:"isActive"`
	Imported      bool            `json:"imported"` // created by a ledger file import
	AuditFields
}
