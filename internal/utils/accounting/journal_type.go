package accounting

import (
	"strings"

	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
)

// journalCodePrefixes maps conventional French journal codes to types.
var journalCodePrefixes = map[string]domain.JournalType{
	"VT":  domain.JournalSale,
	"VE":  domain.JournalSale,
	"VEN": domain.JournalSale,
	"AC":  domain.JournalPurchase,
	"HA":  domain.JournalPurchase,
	"AH":  domain.JournalPurchase,
	"ACH": domain.JournalPurchase,
	"FOU": domain.JournalPurchase,
	"PU":  domain.JournalPurchase,
	"BQ":  domain.JournalBank,
	"BA":  domain.JournalBank,
	"BK":  domain.JournalBank,
	"BNQ": domain.JournalBank,
	"CA":  domain.JournalCash,
	"CAI": domain.JournalCash,
	"CS":  domain.JournalCash,
	"AN":  domain.JournalOpening,
	"OD":  domain.JournalMiscellaneous,
}

// InferJournalType guesses a journal's type from its code using the usual
// French bookkeeping conventions. Unknown codes fall back to miscellaneous.
func InferJournalType(code string) domain.JournalType {
	code = strings.ToUpper(strings.TrimSpace(code))
	if t, ok := journalCodePrefixes[code]; ok {
		return t
	}
	// Try shrinking prefixes, longest first, so "VTE1" still maps to sales.
	for l := len(code) - 1; l >= 2; l-- {
		if t, ok := journalCodePrefixes[code[:l]]; ok {
			return t
		}
	}
	return domain.JournalMiscellaneous
}
