package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row shape.
type JournalEntry struct {
	EntryID           string          `db:"entry_id"`
	CompanyID         string          `db:"company_id"`
	JournalID         string          `db:"journal_id"`
	EntryNumber       string          `db:"entry_number"`
	EntryDate         time.Time       `db:"entry_date"`
	Description       string          `db:"description"`
	Reference         string          `db:"reference"`
	Status            string          `db:"status"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	SourceCode        *string         `db:"source_code"`
	SourceEntryNumber *string         `db:"source_entry_number"`
	ReversingEntryID  *string         `db:"reversing_entry_id"`
	OriginalEntryID   *string         `db:"original_entry_id"`
	PostedBy          string          `db:"posted_by"`
	PostedAt          *time.Time      `db:"posted_at"`
	AuditFields
}

// EntryLine is the entry_lines table row shape.
type EntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	CurrencyCode string          `db:"currency_code"`
	LineOrder    int             `db:"line_order"`
}
