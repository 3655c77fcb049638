package domain

// JournalType groups entries by their business origin.
type JournalType string

const (
	JournalSale          JournalType = "SALE"
	JournalPurchase      JournalType = "PURCHASE"
	JournalBank          JournalType = "BANK"
	JournalCash          JournalType = "CASH"
	JournalMiscellaneous JournalType = "MISCELLANEOUS"
	JournalOpening       JournalType = "OPENING"
	JournalReversal      JournalType = "REVERSAL"
)

// Journal is a named sub-ledger. Identity is (CompanyID, Code); Code is
// stored upper-cased. LastSequence backs entry number allocation and only
// moves forward.
type Journal struct {
	JournalID    string      `json:"journalID"`
	CompanyID    string      `json:"companyID"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	JournalType  JournalType `json:"journalType"`
	Description  string      `json:"description"`
	LastSequence int64       `json:"lastSequence"`
	IsActive     bool        `json:"isActive"`
	Imported     bool        `json:"imported"`
	AuditFields
}

// JournalDeletionOutcome reports which deletion path was taken: journals
// with posted history are only ever deactivated.
type JournalDeletionOutcome string

const (
	JournalDeleted     JournalDeletionOutcome = "DELETED"
	JournalDeactivated JournalDeletionOutcome = "DEACTIVATED"
)
