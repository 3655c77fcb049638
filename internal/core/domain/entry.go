package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
//
// draft --post--> posted --cancel--> cancelled
// draft --delete--> (removed)
//
// No other transition is legal. Posted and cancelled entries are immutable;
// cancellation happens by appending a reversing entry, never by editing
// lines.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// JournalEntry is a single balanced financial event composed of at least two
// lines whose debit and credit totals are equal.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`
	CompanyID   string          `json:"companyID"`
	JournalID   string          `json:"journalID"`
	EntryNumber string          `json:"entryNumber"` // {CODE}-{year}{seq:03d}, unique per company
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Status      EntryStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"` // sum of the debit side

	// External identity of imported entries, used to detect re-imports.
	SourceCode        string `json:"sourceCode,omitempty"`
	SourceEntryNumber string `json:"sourceEntryNumber,omitempty"`

	// Reversal links. A cancelled entry points at the entry that reversed
	// it; the reversing entry points back at the original.
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`

	PostedBy string     `json:"postedBy,omitempty"`
	PostedAt *time.Time `json:"postedAt,omitempty"`

	Lines []EntryLine `json:"lines,omitempty"`
	AuditFields
}

// EntryLine is one side of a movement within an entry. Exactly one of
// DebitAmount and CreditAmount is strictly positive; the other is zero.
type EntryLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode"`
	LineOrder    int             `json:"lineOrder"`
}

// IsDebit reports whether the line moves the debit side.
func (l EntryLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the magnitude of the line regardless of side.
func (l EntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}
