package provider

import (
	"context"
	"time"
)

// Quote is the raw pricing snapshot returned by a market-data source for a
// single symbol. Fields are pointers because the upstream feed omits any of
// them freely; no currency adjustment or rounding has happened yet.
type Quote struct {
	Symbol            string
	Currency          string
	CurrentPrice      *float64
	TargetLowPrice    *float64
	TargetMeanPrice   *float64
	TargetMedianPrice *float64
	FiftyTwoWeekLow   *float64
	FiftyTwoWeekHigh  *float64
}

// HasData reports whether the source returned a usable snapshot.
//
// The presence of a current price is the single validity marker: a quote
// without one is treated as "no data found" for the ticker regardless of
// which other fields came back.
func (q *Quote) HasData() bool {
	return q != nil && q.CurrentPrice != nil
}

// Dividend is a single dividend payment in the symbol's quote currency.
type Dividend struct {
	Amount float64   `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
}

// Source is a market-data backend able to serve quote snapshots and
// dividend histories per symbol.
type Source interface {
	Name() string
	Quote(ctx context.Context, symbol string) (*Quote, error)
	Dividends(ctx context.Context, symbol string) ([]Dividend, error)
}
