package models

// Journal is the journals table row shape.
type Journal struct {
	JournalID    string `db:"journal_id"`
	CompanyID    string `db:"company_id"`
	Code         string `db:"code"`
	Name         string `db:"name"`
	JournalType  string `db:"journal_type"`
	Description  string `db:"description"`
	LastSequence int64  `db:"last_sequence"`
	IsActive     bool   `db:"is_active"`
	Imported     bool   `db:"imported"`
	AuditFields
}
