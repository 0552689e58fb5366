package session

import (
	"errors"
	"testing"
)

func TestCreditsForDuration(t *testing.T) {
	cases := map[int]int{15: 5, 30: 10, 60: 20}
	for minutes, want := range cases {
		got, err := CreditsForDuration(minutes)
		if err != nil {
			t.Fatalf("duration %d: unexpected error %v", minutes, err)
		}
		if got != want {
			t.Fatalf("duration %d: expected %d credits, got %d", minutes, want, got)
		}
	}
}

func TestCreditsForDurationUnlisted(t *testing.T) {
	for _, minutes := range []int{0, -15, 45, 90, 1} {
		if _, err := CreditsForDuration(minutes); !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("duration %d: expected ErrInvalidDuration, got %v", minutes, err)
		}
	}
}

func TestCreditRatesIsACopy(t *testing.T) {
	rates := CreditRates()
	rates[15] = 999

	again, _ := CreditsForDuration(15)
	if again != 5 {
		t.Fatalf("pricing table mutated through CreditRates copy")
	}
}
