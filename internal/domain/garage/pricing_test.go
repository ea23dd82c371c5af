//go:build unit

package garage_test

import (
	"testing"
	"time"

	"parkspot/internal/domain/garage"
	"parkspot/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2026-03-02 is the anchor; 10:00 is off-peak.
func monday(hour int) time.Time {
	return time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
}

func saturday(hour int) time.Time {
	return time.Date(2026, 3, 7, hour, 0, 0, 0, time.UTC)
}

func TestComputePrice(t *testing.T) {
	full := garage.Pricing{Hourly: ptr.To(10.0), Daily: ptr.To(100.0), Monthly: ptr.To(2000.0)}

	t.Run("tier selection", func(t *testing.T) {
		cases := []struct {
			name       string
			pricing    garage.Pricing
			start, end time.Time
			price      float64
			tier       garage.Tier
		}{
			{
				name:    "two hours off-peak uses hourly",
				pricing: full,
				start:   monday(10), end: monday(12),
				price: 20.0, tier: garage.TierHourly,
			},
			{
				name:    "thirty hours uses daily with ceiling",
				pricing: full,
				start:   monday(10), end: monday(10).Add(30 * time.Hour),
				price: 200.0, tier: garage.TierDaily,
			},
			{
				name:    "exactly one day uses daily",
				pricing: full,
				start:   monday(10), end: monday(10).AddDate(0, 0, 1),
				price: 100.0, tier: garage.TierDaily,
			},
			{
				name:    "ten days uses monthly with ceiling",
				pricing: full,
				start:   monday(10), end: monday(10).AddDate(0, 0, 10),
				price: 2000.0, tier: garage.TierMonthly,
			},
			{
				name:    "long stay without monthly falls back to daily",
				pricing: garage.Pricing{Hourly: ptr.To(10.0), Daily: ptr.To(100.0)},
				start:   monday(10), end: monday(10).AddDate(0, 0, 10),
				price: 1000.0, tier: garage.TierDaily,
			},
			{
				name:    "short stay with only daily uses daily",
				pricing: garage.Pricing{Daily: ptr.To(100.0)},
				start:   monday(10), end: monday(12),
				price: 100.0, tier: garage.TierDaily,
			},
			{
				name:    "long stay with only hourly uses hourly",
				pricing: garage.Pricing{Hourly: ptr.To(10.0)},
				start:   monday(10), end: monday(10).Add(30 * time.Hour),
				price: 300.0, tier: garage.TierHourly,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				quote, err := garage.ComputePrice(tc.pricing, tc.start, tc.end, nil)
				require.NoError(t, err)
				assert.InDelta(t, tc.price, quote.Price, 0.001)
				assert.Equal(t, tc.tier, quote.Tier)
			})
		}
	})

	t.Run("surcharges", func(t *testing.T) {
		cases := []struct {
			name       string
			start, end time.Time
			price      float64
		}{
			{
				name:  "morning peak start",
				start: monday(7), end: monday(8),
				price: 12.0, // 10 * 1.2
			},
			{
				name:  "evening peak start",
				start: monday(17), end: monday(18),
				price: 12.0,
			},
			{
				name:  "nine o'clock start is off-peak",
				start: monday(9), end: monday(10),
				price: 10.0,
			},
			{
				name:  "weekend start",
				start: saturday(10), end: saturday(12),
				price: 22.0, // 20 * 1.1
			},
			{
				name:  "weekend morning is never peak",
				start: saturday(7), end: saturday(8),
				price: 11.0, // 10 * 1.1, no peak on weekends
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				quote, err := garage.ComputePrice(full, tc.start, tc.end, nil)
				require.NoError(t, err)
				assert.InDelta(t, tc.price, quote.Price, 0.001)
			})
		}
	})

	t.Run("minimum billable duration is one hour", func(t *testing.T) {
		quote, err := garage.ComputePrice(full, monday(10), monday(10).Add(30*time.Minute), nil)
		require.NoError(t, err)
		assert.InDelta(t, 10.0, quote.Price, 0.001)
	})

	t.Run("no pricing configured", func(t *testing.T) {
		_, err := garage.ComputePrice(garage.Pricing{}, monday(10), monday(12), nil)
		assert.ErrorIs(t, err, garage.ErrNoPricing)
	})

	t.Run("breakdown names tier and total", func(t *testing.T) {
		quote, err := garage.ComputePrice(full, monday(7), monday(9), nil)
		require.NoError(t, err)
		assert.Contains(t, quote.Breakdown, "hourly")
		assert.Contains(t, quote.Breakdown, "peak hour x1.2")
		assert.Contains(t, quote.Breakdown, "total 24.00")
	})

	t.Run("custom options override multipliers", func(t *testing.T) {
		opts := &garage.QuoteOptions{PeakHourMultiplier: 1.5, WeekendMultiplier: 1.0, MinimumHours: 1}
		quote, err := garage.ComputePrice(full, monday(7), monday(8), opts)
		require.NoError(t, err)
		assert.InDelta(t, 15.0, quote.Price, 0.001)
	})

	t.Run("price is rounded to cents", func(t *testing.T) {
		pricing := garage.Pricing{Hourly: ptr.To(9.99)}
		quote, err := garage.ComputePrice(pricing, monday(7), monday(8), nil)
		require.NoError(t, err)
		assert.InDelta(t, 11.99, quote.Price, 0.001) // 9.99 * 1.2 = 11.988
	})
}
