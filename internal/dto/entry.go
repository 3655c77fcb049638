package dto

import (
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one line of an entry creation request. Exactly
// one of DebitAmount and CreditAmount must be positive; the service
// enforces this beyond what binding tags can express.
type CreateEntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description" binding:"max=500"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,len=3"`
}

// CreateEntryRequest defines the expected JSON body for entry creation.
type CreateEntryRequest struct {
	JournalID   string                   `json:"journalID" binding:"required"`
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Description string                   `json:"description" binding:"max=500"`
	Reference   string                   `json:"reference" binding:"max=100"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest carries the fields a draft entry may change. Replacing
// Lines replaces the whole set.
type UpdateEntryRequest struct {
	EntryDate   *time.Time               `json:"entryDate,omitempty"`
	Description *string                  `json:"description,omitempty" binding:"omitempty,max=500"`
	Reference   *string                  `json:"reference,omitempty" binding:"omitempty,max=100"`
	Lines       []CreateEntryLineRequest `json:"lines,omitempty" binding:"omitempty,min=2,dive"`
}

// CancelEntryRequest carries the optional reversal parameters.
type CancelEntryRequest struct {
	Reason       string     `json:"reason" binding:"max=500"`
	ReversalDate *time.Time `json:"reversalDate,omitempty"`
}

// EntryLineResponse is the API representation of an entry line.
type EntryLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode"`
	LineOrder    int             `json:"lineOrder"`
}

// EntryResponse is the API representation of a journal entry.
type EntryResponse struct {
	EntryID           string              `json:"entryID"`
	CompanyID         string              `json:"companyID"`
	JournalID         string              `json:"journalID"`
	EntryNumber       string              `json:"entryNumber"`
	EntryDate         time.Time           `json:"entryDate"`
	Description       string              `json:"description,omitempty"`
	Reference         string              `json:"reference,omitempty"`
	Status            domain.EntryStatus  `json:"status"`
	TotalAmount       decimal.Decimal     `json:"totalAmount"`
	SourceCode        string              `json:"sourceCode,omitempty"`
	SourceEntryNumber string              `json:"sourceEntryNumber,omitempty"`
	ReversingEntryID  *string             `json:"reversingEntryID,omitempty"`
	OriginalEntryID   *string             `json:"originalEntryID,omitempty"`
	PostedBy          string              `json:"postedBy,omitempty"`
	PostedAt          *time.Time          `json:"postedAt,omitempty"`
	Lines             []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	LastUpdatedAt     time.Time           `json:"lastUpdatedAt"`
}

// ListEntriesParams holds the query parameters for entry listings.
type ListEntriesParams struct {
	JournalID string             `form:"journalID"`
	Status    domain.EntryStatus `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	Limit     int                `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string            `form:"nextToken"`
}

// ListEntriesResponse wraps a paginated entry listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.EntryLine to its API representation.
func ToEntryLineResponse(line domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:       line.LineID,
		AccountID:    line.AccountID,
		Description:  line.Description,
		DebitAmount:  line.DebitAmount,
		CreditAmount: line.CreditAmount,
		CurrencyCode: line.CurrencyCode,
		LineOrder:    line.LineOrder,
	}
}

// ToEntryResponse converts a domain.JournalEntry to its API representation.
func ToEntryResponse(entry domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:           entry.EntryID,
		CompanyID:         entry.CompanyID,
		JournalID:         entry.JournalID,
		EntryNumber:       entry.EntryNumber,
		EntryDate:         entry.EntryDate,
		Description:       entry.Description,
		Reference:         entry.Reference,
		Status:            entry.Status,
		TotalAmount:       entry.TotalAmount,
		SourceCode:        entry.SourceCode,
		SourceEntryNumber: entry.SourceEntryNumber,
		ReversingEntryID:  entry.ReversingEntryID,
		OriginalEntryID:   entry.OriginalEntryID,
		PostedBy:          entry.PostedBy,
		PostedAt:          entry.PostedAt,
		CreatedAt:         entry.CreatedAt,
		LastUpdatedAt:     entry.LastUpdatedAt,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, 0, len(entry.Lines))
		for _, line := range entry.Lines {
			resp.Lines = append(resp.Lines, ToEntryLineResponse(line))
		}
	}
	return resp
}

// ToListEntriesResponse converts a page of domain entries.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	resp := ListEntriesResponse{
		Entries:   make([]EntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ToEntryResponse(e))
	}
	return resp
}
