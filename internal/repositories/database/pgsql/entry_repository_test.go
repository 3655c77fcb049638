package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping_core/internal/models"
)

// Manual and reversing entries carry no source identity, so their source
// columns must insert as NULL. The import idempotence constraint on
// (company_id, source_code, source_entry_number) only tolerates repeats
// through NULL; empty strings would make every manual entry after the
// first collide.
func TestToModelEntryManualEntriesHaveNullSource(t *testing.T) {
	first := toModelEntry(domain.JournalEntry{EntryID: "e1", CompanyID: "c1"})
	second := toModelEntry(domain.JournalEntry{EntryID: "e2", CompanyID: "c1"})

	assert.Nil(t, first.SourceCode)
	assert.Nil(t, first.SourceEntryNumber)
	assert.Nil(t, second.SourceCode)
	assert.Nil(t, second.SourceEntryNumber)
}

func TestToModelEntryImportedSourceRoundTrips(t *testing.T) {
	imported := domain.JournalEntry{
		EntryID:           "e1",
		SourceCode:        "VE",
		SourceEntryNumber: "VE001",
	}

	m := toModelEntry(imported)
	require.NotNil(t, m.SourceCode)
	require.NotNil(t, m.SourceEntryNumber)
	assert.Equal(t, "VE", *m.SourceCode)
	assert.Equal(t, "VE001", *m.SourceEntryNumber)

	back := toDomainEntry(m)
	assert.Equal(t, "VE", back.SourceCode)
	assert.Equal(t, "VE001", back.SourceEntryNumber)
}

func TestToDomainEntryNullSourceMapsToEmpty(t *testing.T) {
	d := toDomainEntry(models.JournalEntry{EntryID: "e1"})

	assert.Empty(t, d.SourceCode)
	assert.Empty(t, d.SourceEntryNumber)
}
