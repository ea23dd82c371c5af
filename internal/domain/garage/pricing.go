package garage

import (
	"fmt"
	"math"
	"strings"
	"time"

	"parkspot/internal/pkg/errs"
)

var ErrNoPricing = errs.New("no pricing available")

type Tier string

const (
	TierHourly  Tier = "hourly"
	TierDaily   Tier = "daily"
	TierMonthly Tier = "monthly"
)

type QuoteOptions struct {
	PeakHourMultiplier float64
	WeekendMultiplier  float64
	MinimumHours       float64
}

func DefaultQuoteOptions() QuoteOptions {
	return QuoteOptions{
		PeakHourMultiplier: 1.2,
		WeekendMultiplier:  1.1,
		MinimumHours:       1,
	}
}

type Quote struct {
	Price     float64
	Tier      Tier
	Breakdown string
}

// ComputePrice selects the cheapest-matching tier for the duration and applies
// start-time surcharges. Pure: the only time it looks at is the window itself.
//
// Tier priority: hourly when under a day, daily when under a week, monthly
// beyond that; missing tiers fall back daily-then-hourly. Peak (Mon-Fri
// 07:00-09:00 / 17:00-19:00) and weekend surcharges key off the start instant
// only and compose multiplicatively.
func ComputePrice(p Pricing, start, end time.Time, opts *QuoteOptions) (Quote, error) {
	o := DefaultQuoteOptions()
	if opts != nil {
		o = *opts
	}

	hours := end.Sub(start).Hours()
	if hours < o.MinimumHours {
		hours = o.MinimumHours
	}
	days := hours / 24

	var (
		price float64
		tier  Tier
		calc  string
	)
	switch {
	case hours < 24 && p.Hourly != nil:
		tier = TierHourly
		price = *p.Hourly * hours
		calc = fmt.Sprintf("%.2f/h x %gh", *p.Hourly, hours)
	case days < 7 && p.Daily != nil:
		tier = TierDaily
		billed := math.Ceil(days)
		price = *p.Daily * billed
		calc = fmt.Sprintf("%.2f/day x %g days", *p.Daily, billed)
	case days >= 7 && p.Monthly != nil:
		tier = TierMonthly
		billed := math.Ceil(days / 30)
		price = *p.Monthly * billed
		calc = fmt.Sprintf("%.2f/month x %g months", *p.Monthly, billed)
	case p.Daily != nil:
		tier = TierDaily
		billed := math.Ceil(days)
		price = *p.Daily * billed
		calc = fmt.Sprintf("%.2f/day x %g days", *p.Daily, billed)
	case p.Hourly != nil:
		tier = TierHourly
		price = *p.Hourly * hours
		calc = fmt.Sprintf("%.2f/h x %gh", *p.Hourly, hours)
	default:
		return Quote{}, ErrNoPricing
	}

	parts := []string{fmt.Sprintf("%s: %s = %.2f", tier, calc, price)}

	if isPeakHour(start) {
		price *= o.PeakHourMultiplier
		parts = append(parts, fmt.Sprintf("peak hour x%g", o.PeakHourMultiplier))
	}
	if isWeekend(start) {
		price *= o.WeekendMultiplier
		parts = append(parts, fmt.Sprintf("weekend x%g", o.WeekendMultiplier))
	}

	price = round2(price)
	parts = append(parts, fmt.Sprintf("total %.2f", price))

	return Quote{
		Price:     price,
		Tier:      tier,
		Breakdown: strings.Join(parts, "; "),
	}, nil
}

// Peak windows are 07:00-09:00 and 17:00-19:00 local time on weekdays,
// end-exclusive (a 09:00 start is off-peak).
func isPeakHour(t time.Time) bool {
	if isWeekend(t) {
		return false
	}
	h := t.Hour()
	return (h >= 7 && h < 9) || (h >= 17 && h < 19)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
