package patterns

import (
	"math"
)

// Shape names an amount distribution
type Shape string

const (
	ShapeUniform     Shape = "uniform"
	ShapeNormal      Shape = "normal"
	ShapeExponential Shape = "exponential"
)

// AmountDistribution draws amounts in cents from a bounded range.
type AmountDistribution struct {
	// Amount ranges in cents
	minAmount int64
	maxAmount int64

	shape Shape

	// For normal distribution: mean and standard deviation (as fractions of range)
	normalMean   float64 // Fraction of range where mean is (0.0-1.0)
	normalStdDev float64 // Standard deviation as fraction of range

	// roundNice snaps results to amounts a person would write on an invoice
	roundNice bool
}

// NewAmountRange creates a uniform amount distribution.
func NewAmountRange(minCents, maxCents int64) *AmountDistribution {
	return newDistribution(minCents, maxCents, ShapeUniform)
}

// NewNormalAmountRange creates a normal (Gaussian) distribution of amounts.
// meanFraction is where the mean falls in the range (0.7 = toward high end).
// stdDevFraction is standard deviation as fraction of range (0.2 = moderate spread).
func NewNormalAmountRange(minCents, maxCents int64, meanFraction, stdDevFraction float64) *AmountDistribution {
	d := newDistribution(minCents, maxCents, ShapeNormal)
	d.normalMean = meanFraction
	d.normalStdDev = stdDevFraction
	return d
}

// NewExponentialAmountRange creates an exponential distribution (many small, few large).
func NewExponentialAmountRange(minCents, maxCents int64) *AmountDistribution {
	return newDistribution(minCents, maxCents, ShapeExponential)
}

func newDistribution(minCents, maxCents int64, shape Shape) *AmountDistribution {
	if maxCents < minCents {
		minCents, maxCents = maxCents, minCents
	}
	return &AmountDistribution{
		minAmount: minCents,
		maxAmount: maxCents,
		shape:     shape,
	}
}

// WithNiceRounding makes GenerateAmount snap to round amounts
func (ad *AmountDistribution) WithNiceRounding() *AmountDistribution {
	ad.roundNice = true
	return ad
}

// Shape returns the distribution's shape
func (ad *AmountDistribution) Shape() Shape {
	return ad.shape
}

// GenerateAmount generates an amount based on the distribution.
// rngValue should be uniformly distributed [0, 1).
// rngNormal should be normally distributed (for normal distribution type).
// The result always lies in [min, max].
func (ad *AmountDistribution) GenerateAmount(rngValue float64, rngNormal float64) int64 {
	if math.IsNaN(rngValue) {
		rngValue = 0
	}
	if math.IsNaN(rngNormal) || math.IsInf(rngNormal, 0) {
		rngNormal = 0
	}

	rangeSize := float64(ad.maxAmount - ad.minAmount)

	var fraction float64

	switch ad.shape {
	case ShapeNormal:
		fraction = clamp01(ad.normalMean + rngNormal*ad.normalStdDev)

	case ShapeExponential:
		// -ln(1-x) transformation, scaled to range
		if rngValue >= 0.9999 {
			rngValue = 0.9999
		}
		fraction = clamp01(-math.Log(1-rngValue) / 5.0)

	default:
		fraction = clamp01(rngValue)
	}

	amount := ad.minAmount + int64(rangeSize*fraction)

	if ad.roundNice {
		amount = roundToNiceAmount(amount)
	}

	// Ensure within bounds
	if amount < ad.minAmount {
		amount = ad.minAmount
	}
	if amount > ad.maxAmount {
		amount = ad.maxAmount
	}

	return amount
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// roundToNiceAmount rounds to common monetary amounts.
// Small amounts round to cents, larger amounts to dollars or tens.
func roundToNiceAmount(cents int64) int64 {
	switch {
	case cents < 1000: // Under $10: round to 5 cents
		return (cents / 5) * 5
	case cents < 10000: // $10-100: round to 25 cents
		return (cents / 25) * 25
	case cents < 100000: // $100-1000: round to $1
		return (cents / 100) * 100
	case cents < 1000000: // $1000-10000: round to $5
		return (cents / 500) * 500
	default: // $10000+: round to $10
		return (cents / 1000) * 1000
	}
}
