package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's folded debit/credit totals.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Class         int             `json:"class"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	Balance       decimal.Decimal `json:"balance"` // DebitTotal - CreditTotal
}

// TrialBalanceReport lists every account's totals over the posted subset.
// IsBalanced is a health check on the whole ledger, not a tautology: it only
// holds if every posted entry really balanced.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount is an account with its net amount for report sections.
type AccountAmount struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Class         int             `json:"class"`
	NetAmount     decimal.Decimal `json:"netAmount"`
}

// BalanceSheetSection splits a balance sheet side into current and
// non-current buckets per the company's standard.
type BalanceSheetSection struct {
	NonCurrent []AccountAmount `json:"nonCurrent"`
	Current    []AccountAmount `json:"current"`
	Total      decimal.Decimal `json:"total"`
}

// BalanceSheetReport is the assets/liabilities/equity statement at a point
// in time. IdentityHolds verifies assets == liabilities + equity.
type BalanceSheetReport struct {
	AsOf             time.Time           `json:"asOf"`
	Assets           BalanceSheetSection `json:"assets"`
	Liabilities      BalanceSheetSection `json:"liabilities"`
	Equity           BalanceSheetSection `json:"equity"`
	TotalAssets      decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities decimal.Decimal     `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal     `json:"totalEquity"`
	RetainedEarnings decimal.Decimal     `json:"retainedEarnings"`
	IdentityHolds    bool                `json:"identityHolds"`
}

// IncomeStatementReport is revenue and expense over a period.
type IncomeStatementReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}
