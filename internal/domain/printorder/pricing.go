package printorder

import (
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/shared/valueobject"
)

// pricingKey identifies one row of the rate table
type pricingKey struct {
	Size PageSize
	Mode PrintMode
}

// perPageRates holds the per-page rate in INR for every supported
// page size and print mode combination. There is no default rate;
// a combination missing here is a pricing error, not a fallback.
var perPageRates = map[pricingKey]int64{
	{PageSizeA4, PrintModeBlackWhite}: 2,
	{PageSizeA4, PrintModeColor}:      5,
	{PageSizeA3, PrintModeBlackWhite}: 4,
	{PageSizeA3, PrintModeColor}:      10,
}

// RateFor returns the per-page rate for the given page size and print mode
func RateFor(size PageSize, mode PrintMode) (valueobject.Money, error) {
	rate, ok := perPageRates[pricingKey{size, mode}]
	if !ok {
		return valueobject.Money{}, shared.ErrInvalidPricingKey
	}
	return valueobject.NewMoneyINRFromInt(rate), nil
}

// ComputeCost calculates the total cost of an order:
// pages x copies x per-page rate
func ComputeCost(size PageSize, mode PrintMode, pages, copies int) (valueobject.Money, error) {
	if pages < 1 || copies < 1 {
		return valueobject.Money{}, shared.ErrInvalidQuantity
	}
	rate, err := RateFor(size, mode)
	if err != nil {
		return valueobject.Money{}, err
	}
	return rate.MultiplyByInt(int64(pages)).MultiplyByInt(int64(copies)), nil
}
