package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the accounts table row shape.
type Account struct {
	AccountID     string          `db:"account_id"`
	CompanyID     string          `db:"company_id"`
	AccountNumber string          `db:"account_number"`
	Name          string          `db:"name"`
	AccountType   AccountType     `db:"account_type"`
	Class         int             `db:"class"`
	CurrencyCode  string          `db:"currency_code"`
	Description   string          `db:"description"`
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	Imported      bool            `db:"imported"`
	AuditFields
}
