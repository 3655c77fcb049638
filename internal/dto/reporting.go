package dto

import (
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one account line of a trial balance.
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Class         int             `json:"class"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse is the API representation of a trial balance.
type TrialBalanceResponse struct {
	AsOf        string                    `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
	IsBalanced  bool                      `json:"isBalanced"`
}

// AccountAmountResponse is one account line of a financial statement.
type AccountAmountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	NetAmount     decimal.Decimal `json:"netAmount"`
}

// BalanceSheetSectionResponse groups one side of the balance sheet.
type BalanceSheetSectionResponse struct {
	NonCurrent []AccountAmountResponse `json:"nonCurrent"`
	Current    []AccountAmountResponse `json:"current"`
	Total      decimal.Decimal         `json:"total"`
}

// BalanceSheetResponse is the API representation of a balance sheet.
type BalanceSheetResponse struct {
	AsOf             string                      `json:"asOf"`
	Assets           BalanceSheetSectionResponse `json:"assets"`
	Liabilities      BalanceSheetSectionResponse `json:"liabilities"`
	Equity           BalanceSheetSectionResponse `json:"equity"`
	RetainedEarnings decimal.Decimal             `json:"retainedEarnings"`
	IdentityHolds    bool                        `json:"identityHolds"`
}

// IncomeStatementResponse is the API representation of an income statement.
type IncomeStatementResponse struct {
	From          string                  `json:"from"`
	To            string                  `json:"to"`
	Revenue       []AccountAmountResponse `json:"revenue"`
	Expenses      []AccountAmountResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal         `json:"totalRevenue"`
	TotalExpenses decimal.Decimal         `json:"totalExpenses"`
	GrossProfit   decimal.Decimal         `json:"grossProfit"`
	NetIncome     decimal.Decimal         `json:"netIncome"`
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, AccountAmountResponse{
			AccountID:     a.AccountID,
			AccountNumber: a.AccountNumber,
			Name:          a.Name,
			NetAmount:     a.NetAmount,
		})
	}
	return out
}

func toBalanceSheetSectionResponse(section domain.BalanceSheetSection) BalanceSheetSectionResponse {
	return BalanceSheetSectionResponse{
		NonCurrent: toAccountAmountResponses(section.NonCurrent),
		Current:    toAccountAmountResponses(section.Current),
		Total:      section.Total,
	}
}

// ToTrialBalanceResponse converts a domain trial balance report.
func ToTrialBalanceResponse(report domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf:        report.AsOf.Format("2006-01-02"),
		Rows:        make([]TrialBalanceRowResponse, 0, len(report.Rows)),
		TotalDebit:  report.TotalDebit,
		TotalCredit: report.TotalCredit,
		IsBalanced:  report.IsBalanced,
	}
	for _, row := range report.Rows {
		resp.Rows = append(resp.Rows, TrialBalanceRowResponse{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			Name:          row.AccountName,
			Class:         row.Class,
			TotalDebit:    row.DebitTotal,
			TotalCredit:   row.CreditTotal,
			Balance:       row.Balance,
		})
	}
	return resp
}

// ToBalanceSheetResponse converts a domain balance sheet report.
func ToBalanceSheetResponse(report domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:             report.AsOf.Format("2006-01-02"),
		Assets:           toBalanceSheetSectionResponse(report.Assets),
		Liabilities:      toBalanceSheetSectionResponse(report.Liabilities),
		Equity:           toBalanceSheetSectionResponse(report.Equity),
		RetainedEarnings: report.RetainedEarnings,
		IdentityHolds:    report.IdentityHolds,
	}
}

// ToIncomeStatementResponse converts a domain income statement report.
func ToIncomeStatementResponse(report domain.IncomeStatementReport) IncomeStatementResponse {
	return IncomeStatementResponse{
		From:          report.From.Format("2006-01-02"),
		To:            report.To.Format("2006-01-02"),
		Revenue:       toAccountAmountResponses(report.Revenue),
		Expenses:      toAccountAmountResponses(report.Expenses),
		TotalRevenue:  report.TotalRevenue,
		TotalExpenses: report.TotalExpenses,
		GrossProfit:   report.GrossProfit,
		NetIncome:     report.NetIncome,
	}
}
