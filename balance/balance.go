// Package balance presents the user's plan and consumption.
package balance

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"afiliado/api"
)

// Meter is one consumption gauge (data, SMS, minutes). Amounts stay decimal
// so fractional gigabytes survive intact.
type Meter struct {
	Kind  string
	Used  decimal.Decimal
	Total decimal.Decimal
	Unit  string
}

// Fraction is the consumed share in [0, 1], for progress display.
func (m Meter) Fraction() float64 {
	if m.Total.IsZero() {
		return 0
	}
	f, _ := m.Used.Div(m.Total).Float64()
	return math.Min(math.Max(f, 0), 1)
}

func (m Meter) String() string {
	return fmt.Sprintf("%s: %s %s / %s %s", m.Kind, m.Used, m.Unit, m.Total, m.Unit)
}

type Summary struct {
	Plan      string
	ExpiresAt time.Time
	Meters    []Meter
}

// DaysLeft counts whole days until the plan expires, never below zero.
func (s Summary) DaysLeft(now time.Time) int {
	days := int(math.Ceil(s.ExpiresAt.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// Fetcher is the client-side operation this screen needs. client.Client
// satisfies it.
type Fetcher interface {
	FetchBalance(userID int64) (*api.BalanceResponse, error)
}

func Fetch(f Fetcher, userID int64) (*Summary, error) {
	payload, err := f.FetchBalance(userID)
	if err != nil {
		return nil, err
	}

	expires, err := time.Parse("2006-01-02", payload.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("bad expiry date %q: %w", payload.ExpiresAt, err)
	}

	summary := &Summary{Plan: payload.Plan, ExpiresAt: expires}
	for _, m := range payload.Meters {
		used, err := decimal.NewFromString(m.Used)
		if err != nil {
			return nil, fmt.Errorf("bad %s usage %q: %w", m.Kind, m.Used, err)
		}
		total, err := decimal.NewFromString(m.Total)
		if err != nil {
			return nil, fmt.Errorf("bad %s total %q: %w", m.Kind, m.Total, err)
		}
		summary.Meters = append(summary.Meters, Meter{
			Kind:  m.Kind,
			Used:  used,
			Total: total,
			Unit:  m.Unit,
		})
	}
	return summary, nil
}
