package order

import "github.com/shopspring/decimal"

// minorUnitPlaces is the number of decimal places kept before scaling to
// the gateway's smallest currency unit.
const minorUnitPlaces = 2

var hundred = decimal.NewFromInt(100)

// MinorUnits converts a decimal total into the smallest currency unit.
// The total is rounded to two places (half to even) first, then scaled by
// 100 and truncated, so 19.995 becomes 2000 and 12.345 becomes 1234.
func MinorUnits(total decimal.Decimal) int64 {
	return total.RoundBank(minorUnitPlaces).Mul(hundred).IntPart()
}

// FromMinorUnits converts an amount in the smallest currency unit back to a
// two-place decimal.
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -minorUnitPlaces)
}
