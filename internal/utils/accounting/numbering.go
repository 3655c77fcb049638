package accounting

import (
	"fmt"
	"time"
)

// FormatEntryNumber composes the official entry number from the journal
// code, the entry's fiscal year and the allocated sequence, for example
// "VE-2026001". The sequence keeps three digits up to 999 and grows
// naturally past that.
func FormatEntryNumber(journalCode string, entryDate time.Time, sequence int64) string {
	return fmt.Sprintf("%s-%d%03d", journalCode, entryDate.Year(), sequence)
}
