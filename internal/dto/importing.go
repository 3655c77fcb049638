package dto

import (
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImportErrorResponse describes one rejected entry group of an import.
type ImportErrorResponse struct {
	JournalCode string `json:"journalCode"`
	EntryNumber string `json:"entryNumber"`
	Message     string `json:"message"`
}

// ImportReportResponse summarises an accounting file import.
type ImportReportResponse struct {
	JournalsCreated  int                   `json:"journalsCreated"`
	JournalsExisting int                   `json:"journalsExisting"`
	AccountsCreated  int                   `json:"accountsCreated"`
	AccountsExisting int                   `json:"accountsExisting"`
	EntriesCreated   int                   `json:"entriesCreated"`
	EntriesSkipped   int                   `json:"entriesSkipped"`
	Errors           []ImportErrorResponse `json:"errors"`
	TotalDebit       decimal.Decimal       `json:"totalDebit"`
	TotalCredit      decimal.Decimal       `json:"totalCredit"`
}

// ToImportReportResponse converts a domain import report.
func ToImportReportResponse(report domain.ImportReport) ImportReportResponse {
	resp := ImportReportResponse{
		JournalsCreated:  report.JournalsCreated,
		JournalsExisting: report.JournalsExisting,
		AccountsCreated:  report.AccountsCreated,
		AccountsExisting: report.AccountsExisting,
		EntriesCreated:   report.EntriesCreated,
		EntriesSkipped:   report.EntriesSkipped,
		Errors:           make([]ImportErrorResponse, 0, len(report.Errors)),
		TotalDebit:       report.TotalDebit,
		TotalCredit:      report.TotalCredit,
	}
	for _, e := range report.Errors {
		resp.Errors = append(resp.Errors, ImportErrorResponse{
			JournalCode: e.JournalCode,
			EntryNumber: e.EntryNumber,
			Message:     e.Message,
		})
	}
	return resp
}
