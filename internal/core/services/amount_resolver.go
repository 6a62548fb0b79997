package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/plcoutant/compta_engine/internal/apperrors"
)

var (
	// ErrInsufficientAmountData indicates that the supplied monetary fields
	// are not enough to derive the missing ones.
	ErrInsufficientAmountData = errors.New("insufficient monetary data to resolve amounts")

	// ErrAmountsInconsistent indicates that all three monetary fields were
	// supplied but do not reconcile within the balance tolerance.
	ErrAmountsInconsistent = errors.New("tax-inclusive amount does not equal tax-exclusive plus tax")
)

// DefaultTaxRate is the tax rate applied when the caller supplies none.
var DefaultTaxRate = decimal.NewFromInt(20)

var oneHundred = decimal.NewFromInt(100)

// amountTolerance bounds the accepted reconciliation gap when all three
// monetary fields are caller-supplied.
var amountTolerance = decimal.RequireFromString("0.01")

// AmountInput carries the caller-supplied monetary fields; nil means absent.
type AmountInput struct {
	TaxExclusive *decimal.Decimal
	Tax          *decimal.Decimal
	TaxInclusive *decimal.Decimal
	TaxRate      *decimal.Decimal // Percentage; nil means the default rate applies
}

// Amounts is a fully resolved set of monetary fields. The invariant
// TaxInclusive = TaxExclusive + Tax holds by construction.
type Amounts struct {
	TaxExclusive decimal.Decimal
	Tax          decimal.Decimal
	TaxInclusive decimal.Decimal
	TaxRate      decimal.Decimal
}

// ResolveAmounts derives the missing monetary fields from the supplied ones
// and the tax rate. Any two of the three fields determine the third; a single
// field plus a usable rate determines the other two. No field at all is a
// checked failure, not undefined arithmetic. defaultRate fills in only when
// the input carries no rate; when both legs are supplied the recorded rate is
// the effective one, never the default.
func ResolveAmounts(input AmountInput, defaultRate decimal.Decimal) (Amounts, error) {
	rate := defaultRate
	if input.TaxRate != nil {
		rate = *input.TaxRate
	}
	if rate.IsNegative() {
		return Amounts{}, fmt.Errorf("%w: tax rate must not be negative, got %s", apperrors.ErrValidation, rate)
	}

	hasHT := input.TaxExclusive != nil
	hasTax := input.Tax != nil
	hasTTC := input.TaxInclusive != nil

	var ht, tax, ttc decimal.Decimal

	switch {
	case hasHT && hasTax:
		ht = *input.TaxExclusive
		tax = *input.Tax
		ttc = ht.Add(tax)
		if hasTTC && input.TaxInclusive.Sub(ttc).Abs().GreaterThan(amountTolerance) {
			return Amounts{}, fmt.Errorf("%w: got %s, expected %s", ErrAmountsInconsistent, input.TaxInclusive, ttc)
		}
	case hasHT && hasTTC:
		ht = *input.TaxExclusive
		ttc = *input.TaxInclusive
		tax = ttc.Sub(ht)
	case hasTax && hasTTC:
		tax = *input.Tax
		ttc = *input.TaxInclusive
		ht = ttc.Sub(tax)
	case hasHT:
		ht = *input.TaxExclusive
		tax = ht.Mul(rate).Div(oneHundred)
		ttc = ht.Add(tax)
	case hasTTC:
		ttc = *input.TaxInclusive
		ht = ttc.Div(decimal.NewFromInt(1).Add(rate.Div(oneHundred)))
		tax = ttc.Sub(ht)
	case hasTax:
		if rate.IsZero() {
			return Amounts{}, fmt.Errorf("%w: tax amount alone requires a non-zero rate", ErrInsufficientAmountData)
		}
		tax = *input.Tax
		ht = tax.Mul(oneHundred).Div(rate)
		ttc = ht.Add(tax)
	default:
		return Amounts{}, ErrInsufficientAmountData
	}

	// When the rate was not supplied but both legs are known, record the
	// effective rate instead of the default.
	if input.TaxRate == nil && !ht.IsZero() && (hasTax || hasTTC) && hasHT {
		rate = tax.Mul(oneHundred).DivRound(ht, 2)
	}

	return Amounts{TaxExclusive: ht, Tax: tax, TaxInclusive: ttc, TaxRate: rate}, nil
}
