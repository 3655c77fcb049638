package sepa

import (
	"regexp"
	"strings"
)

var bicPattern = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

// ValidateIBAN checks structure and the ISO 7064 mod-97 check digits: the
// first four characters move to the end, letters map to 10-35, and the
// resulting number must leave remainder 1 modulo 97.
func ValidateIBAN(iban string) bool {
	iban = strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	if iban[0] < 'A' || iban[0] > 'Z' || iban[1] < 'A' || iban[1] > 'Z' {
		return false
	}
	rearranged := iban[4:] + iban[:4]

	// Incremental mod 97 keeps the number out of big-int territory.
	remainder := 0
	for i := 0; i < len(rearranged); i++ {
		ch := rearranged[i]
		switch {
		case ch >= '0' && ch <= '9':
			remainder = (remainder*10 + int(ch-'0')) % 97
		case ch >= 'A' && ch <= 'Z':
			v := int(ch-'A') + 10
			remainder = (remainder*100 + v) % 97
		default:
			return false
		}
	}
	return remainder == 1
}

// ValidateBIC checks the 8 or 11 character BIC layout: bank code (4
// letters), country (2 letters), location (2 alphanumeric) and an optional
// branch (3 alphanumeric).
func ValidateBIC(bic string) bool {
	bic = strings.ToUpper(strings.TrimSpace(bic))
	return bicPattern.MatchString(bic)
}
