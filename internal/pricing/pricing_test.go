package pricing

import (
	"math"
	"testing"
	"time"

	"pricegate/internal/provider"
)

func fp(v float64) *float64 { return &v }

func TestAdjustForCurrency(t *testing.T) {
	cases := []struct {
		name     string
		price    *float64
		currency string
		want     *float64
	}{
		{name: "pence divides by 100", price: fp(100), currency: "GBp", want: fp(1)},
		{name: "dollars pass through", price: fp(100), currency: "USD", want: fp(100)},
		{name: "pounds pass through", price: fp(100), currency: "GBP", want: fp(100)},
		{name: "empty currency passes through", price: fp(42.5), currency: "", want: fp(42.5)},
		{name: "nil propagates", price: nil, currency: "GBp", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AdjustForCurrency(tc.price, tc.currency)
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("got %v, want %v", *got, *tc.want)
			}
		})
	}
}

func TestAdjustForCurrency_DoesNotAliasInput(t *testing.T) {
	in := fp(100)
	out := AdjustForCurrency(in, "USD")
	*out = 7
	if *in != 100 {
		t.Fatalf("input mutated through returned pointer")
	}
}

func TestDividendYield_NilCases(t *testing.T) {
	recent := []provider.Dividend{{Amount: 1, PaidAt: time.Now().AddDate(0, -1, 0)}}

	if got := DividendYield("USD", nil, recent); got != nil {
		t.Fatalf("nil price: got %v, want nil", *got)
	}
	if got := DividendYield("USD", fp(0), recent); got != nil {
		t.Fatalf("zero price: got %v, want nil", *got)
	}
	if got := DividendYield("USD", fp(100), nil); got != nil {
		t.Fatalf("empty series: got %v, want nil", *got)
	}

	unindexed := []provider.Dividend{{Amount: 1}}
	if got := DividendYield("USD", fp(100), unindexed); got != nil {
		t.Fatalf("series without timestamps: got %v, want nil", *got)
	}
}

func TestDividendYield_TrailingYearOnly(t *testing.T) {
	now := time.Now()
	series := []provider.Dividend{
		{Amount: 0.5, PaidAt: now.AddDate(0, 0, -400)}, // outside window
		{Amount: 0.25, PaidAt: now.AddDate(0, 0, -200)},
		{Amount: 0.25, PaidAt: now.AddDate(0, 0, -30)},
	}

	got := DividendYield("USD", fp(100), series)
	if got == nil {
		t.Fatalf("expected yield, got nil")
	}
	// 0.50 over a price of 100 is 0.5%
	if math.Abs(*got-0.5) > 1e-9 {
		t.Fatalf("yield=%v, want 0.5", *got)
	}
}

func TestDividendYield_AllPaymentsStale(t *testing.T) {
	now := time.Now()
	series := []provider.Dividend{
		{Amount: 1, PaidAt: now.AddDate(-3, 0, 0)},
		{Amount: 1, PaidAt: now.AddDate(-2, 0, 0)},
	}

	got := DividendYield("USD", fp(100), series)
	if got == nil || *got != 0 {
		t.Fatalf("stale series must yield the 0.0 sentinel, got %v", got)
	}
}

func TestDividendYield_PenceAdjustment(t *testing.T) {
	now := time.Now()
	series := []provider.Dividend{
		{Amount: 50, PaidAt: now.AddDate(0, -6, 0)}, // 50 pence
	}

	// Price already adjusted to pounds: 10 GBP. 0.50 GBP / 10 GBP = 5%.
	got := DividendYield("GBp", fp(10), series)
	if got == nil {
		t.Fatalf("expected yield, got nil")
	}
	if math.Abs(*got-5) > 1e-9 {
		t.Fatalf("yield=%v, want 5", *got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   *float64
		want *float64
	}{
		{in: fp(1.005), want: fp(1.01)},
		{in: fp(2.344), want: fp(2.34)},
		{in: fp(2.345), want: fp(2.35)},
		{in: fp(-1.005), want: fp(-1.01)},
		{in: fp(3), want: fp(3)},
		{in: nil, want: nil},
	}
	for _, tc := range cases {
		got := Round2(tc.in)
		if (got == nil) != (tc.want == nil) {
			t.Fatalf("Round2(%v)=%v, want %v", tc.in, got, tc.want)
		}
		if got != nil && *got != *tc.want {
			t.Fatalf("Round2(%v)=%v, want %v", *tc.in, *got, *tc.want)
		}
	}
}
