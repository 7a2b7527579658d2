package pos

// TaxRatePercent is the flat sales tax applied to every order.
const TaxRatePercent = 10

// CalculateTax returns the tax on an integer minor-unit subtotal, truncated
// (floor for non-negative input). Integer math only, no float drift.
func CalculateTax(subtotalCents int) int {
	return subtotalCents * TaxRatePercent / 100
}
