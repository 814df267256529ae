package grinfi

import (
	"time"

	"golang.org/x/time/rate"
)

// Tier represents the upstream request budget in events per minute.  Grinfi
// does not publish official limits; the tiers below are conservative values
// that keep a busy agent well clear of upstream throttling.
type Tier int

const (
	// TierRelaxed is for accounts that have been flagged for throttling.
	TierRelaxed Tier = 60
	// TierStandard is the default request budget.
	TierStandard Tier = 180
	// TierBoost is for short bursts of bulk operations.
	TierBoost Tier = 600
)

const defBurst = 1

// NewLimiter returns a limiter with the tier's requests per minute.
// Optionally the caller may specify a boost in events per minute.
func NewLimiter(t Tier, burst uint, boost int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(every(t, boost)), int(burst))
}

func every(t Tier, boost int) time.Duration {
	return time.Minute / time.Duration(int(t)+boost)
}
