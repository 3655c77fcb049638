package accounting

import (
	"fmt"

	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the accounting sign convention to a line:
// debits add to asset/expense accounts and subtract from the rest;
// credits do the opposite.
func SignedAmount(line domain.EntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	amount := line.Amount()
	isDebit := line.IsDebit()

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			amount = amount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			amount = amount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
	}
	return amount, nil
}

// ValidateLine enforces the exactly-one-side rule: one of debit/credit is
// strictly positive and the other is zero, with no negatives anywhere.
func ValidateLine(line domain.EntryLine) error {
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return fmt.Errorf("%w: line amounts must not be negative for account %s", apperrors.ErrValidation, line.AccountID)
	}
	debitSet := line.DebitAmount.IsPositive()
	creditSet := line.CreditAmount.IsPositive()
	if debitSet == creditSet {
		return fmt.Errorf("%w: line for account %s must have exactly one of debit or credit set", apperrors.ErrValidation, line.AccountID)
	}
	return nil
}

// ValidateEntryBalance checks the double-entry invariant over a set of
// lines: at least two lines, every line well formed, and the debit total
// exactly equal to the credit total. Comparison is exact decimal equality;
// there is deliberately no rounding tolerance.
func ValidateEntryBalance(lines []domain.EntryLine) (totalDebit, totalCredit decimal.Decimal, err error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	}
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	if !totalDebit.Equal(totalCredit) {
		return totalDebit, totalCredit, fmt.Errorf("%w: unbalanced entry: debit %s != credit %s",
			apperrors.ErrValidation, totalDebit.String(), totalCredit.String())
	}
	return totalDebit, totalCredit, nil
}
