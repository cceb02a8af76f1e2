package checkout

import (
	"strings"
	"time"
)

// ExpiryLayout is the layout of the expiry date field.
const ExpiryLayout = "2006-01-02"

// ParseExpiry parses an expiry date as midnight UTC of that day.
func ParseExpiry(expDate string) (time.Time, error) {
	return time.ParseInLocation(ExpiryLayout, strings.TrimSpace(expDate), time.UTC)
}

// IsExpired reports whether the expiry instant (midnight UTC of expDate) lies
// strictly before now. A card expiring today is therefore expired for the whole
// day after midnight UTC. Empty or unparsable dates are never expired.
func IsExpired(expDate string, now time.Time) bool {
	if strings.TrimSpace(expDate) == "" {
		return false
	}

	expiry, err := ParseExpiry(expDate)
	if err != nil {
		return false
	}

	return expiry.Before(now)
}
