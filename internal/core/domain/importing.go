package domain

import "github.com/shopspring/decimal"

// ImportError locates one failed entry group in a ledger file import.
type ImportError struct {
	JournalCode string `json:"journalCode"`
	EntryNumber string `json:"entryNumber"`
	Message     string `json:"message"`
}

// ImportReport summarises a ledger file import run. Errors never abort the
// run; each failed group is recorded here and processing continues.
type ImportReport struct {
	JournalsCreated  int             `json:"journalsCreated"`
	JournalsExisting int             `json:"journalsExisting"`
	AccountsCreated  int             `json:"accountsCreated"`
	AccountsExisting int             `json:"accountsExisting"`
	EntriesCreated   int             `json:"entriesCreated"`
	EntriesSkipped   int             `json:"entriesSkipped"` // already imported (same external identity)
	Errors           []ImportError   `json:"errors"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
}
