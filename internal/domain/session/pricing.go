package session

// creditRates is the fixed duration-to-credits table. Only these durations
// are schedulable.
var creditRates = map[int]int{
	15: 5,
	30: 10,
	60: 20,
}

// CreditsForDuration returns the credit price of a session length in minutes
func CreditsForDuration(minutes int) (int, error) {
	credits, ok := creditRates[minutes]
	if !ok {
		return 0, ErrInvalidDuration
	}
	return credits, nil
}

// CreditRates returns a copy of the pricing table
func CreditRates() map[int]int {
	out := make(map[int]int, len(creditRates))
	for d, c := range creditRates {
		out[d] = c
	}
	return out
}
