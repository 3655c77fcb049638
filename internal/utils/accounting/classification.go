package accounting

import (
	"fmt"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
)

// DeriveClass returns the account class for an account number under the
// given standard. The class is the leading digit: PCG accepts 1-7,
// SYSCOHADA additionally accepts 8. Anything else is a validation error so
// a stored class can never silently default.
func DeriveClass(accountNumber string, standard domain.Standard) (int, error) {
	if accountNumber == "" {
		return 0, fmt.Errorf("%w: account number is empty", apperrors.ErrValidation)
	}
	first := accountNumber[0]
	if first < '1' || first > '9' {
		return 0, fmt.Errorf("%w: account number %q does not start with a class digit", apperrors.ErrValidation, accountNumber)
	}
	class := int(first - '0')
	maxClass := 7
	if standard == domain.StandardSYSCOHADA {
		maxClass = 8
	}
	if class > maxClass {
		return 0, fmt.Errorf("%w: class %d is not defined under %s", apperrors.ErrValidation, class, standard)
	}
	return class, nil
}

// DeriveType maps an account number to its account type under the given
// standard. Class 4 (third parties) splits on the second digit: payables,
// payroll, social security, tax and partner accounts are liabilities;
// receivables and the transitory sub-accounts are assets.
func DeriveType(accountNumber string, standard domain.Standard) (domain.AccountType, error) {
	class, err := DeriveClass(accountNumber, standard)
	if err != nil {
		return "", err
	}
	switch class {
	case 1:
		return domain.Equity, nil
	case 2, 3, 5:
		return domain.Asset, nil
	case 4:
		if len(accountNumber) < 2 {
			return domain.Liability, nil
		}
		switch accountNumber[1] {
		case '1', '6', '7', '8', '9':
			return domain.Asset, nil
		default:
			return domain.Liability, nil
		}
	case 6:
		return domain.Expense, nil
	case 7:
		return domain.Revenue, nil
	case 8:
		return domain.Expense, nil
	}
	return "", fmt.Errorf("%w: class %d has no type mapping", apperrors.ErrValidation, class)
}
