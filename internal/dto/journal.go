package dto

import (
	"time"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
)

// CreateJournalRequest defines the expected JSON body for journal creation.
// JournalType is optional; when absent it is inferred from the code.
type CreateJournalRequest struct {
	Code        string              `json:"code" binding:"required,alphanum,min=1,max=10"`
	Name        string              `json:"name" binding:"required,max=255"`
	JournalType *domain.JournalType `json:"journalType,omitempty" binding:"omitempty,oneof=SALE PURCHASE BANK CASH MISCELLANEOUS OPENING REVERSAL"`
	Description string              `json:"description" binding:"max=500"`
}

// UpdateJournalRequest carries the mutable journal fields. The code is
// frozen at creation because posted entry numbers embed it.
type UpdateJournalRequest struct {
	Name        *string             `json:"name,omitempty" binding:"omitempty,max=255"`
	JournalType *domain.JournalType `json:"journalType,omitempty" binding:"omitempty,oneof=SALE PURCHASE BANK CASH MISCELLANEOUS OPENING REVERSAL"`
	Description *string             `json:"description,omitempty" binding:"omitempty,max=500"`
	IsActive    *bool               `json:"isActive,omitempty"`
}

// JournalResponse is the API representation of a journal.
type JournalResponse struct {
	JournalID     string             `json:"journalID"`
	CompanyID     string             `json:"companyID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	JournalType   domain.JournalType `json:"journalType"`
	Description   string             `json:"description,omitempty"`
	LastSequence  int64              `json:"lastSequence"`
	IsActive      bool               `json:"isActive"`
	Imported      bool               `json:"imported"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ListJournalsResponse wraps a journal listing.
type ListJournalsResponse struct {
	Journals []JournalResponse `json:"journals"`
}

// JournalDeletionResponse reports which deletion policy applied.
type JournalDeletionResponse struct {
	JournalID string                        `json:"journalID"`
	Outcome   domain.JournalDeletionOutcome `json:"outcome"`
}

// ToJournalResponse converts a domain.Journal to its API representation.
func ToJournalResponse(journal domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:     journal.JournalID,
		CompanyID:     journal.CompanyID,
		Code:          journal.Code,
		Name:          journal.Name,
		JournalType:   journal.JournalType,
		Description:   journal.Description,
		LastSequence:  journal.LastSequence,
		IsActive:      journal.IsActive,
		Imported:      journal.Imported,
		CreatedAt:     journal.CreatedAt,
		LastUpdatedAt: journal.LastUpdatedAt,
	}
}

// ToListJournalsResponse converts a slice of domain journals.
func ToListJournalsResponse(journals []domain.Journal) ListJournalsResponse {
	resp := ListJournalsResponse{Journals: make([]JournalResponse, 0, len(journals))}
	for _, j := range journals {
		resp.Journals = append(resp.Journals, ToJournalResponse(j))
	}
	return resp
}
