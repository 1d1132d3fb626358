package internal

import "time"

const (
	DefaultClientAPIURL = "https://client-api.8slp.net/v1"
	DefaultAppAPIURL    = "https://app-api.8slp.net"
	DefaultAuthURL      = "https://auth-api.8slp.net/v1/tokens"

	// Credentials shipped with the official mobile app
	KnownClientID     = "0894c7f33bb94800a03f1f4df13a4f38"
	KnownClientSecret = "f0954a3ed5763ba3d06834c73731a32f15f168f47d4f164751275def86db0c76"

	TokenTimeBuffer = 120 * time.Second
	DefaultTimeout  = 240 * time.Second

	// BedPresenceWindow is how recent the last heart-rate sample must be
	BedPresenceWindow = 600 * time.Second

	userAgent = "okhttp/4.9.3"

	dateLayout = "2006-01-02"
	// away-mode timestamps are always UTC with a literal Z
	awayTimeLayout = "2006-01-02T15:04:05.000Z"

	featureCooling   = "cooling"
	featureElevation = "elevation"
)

// SmartLevelNames are the stages of the smart heating schedule
var SmartLevelNames = []string{"bedTimeLevel", "initialSleepLevel", "finalSleepLevel"}

// apiTimeLayouts are tried in order when parsing API timestamps
var apiTimeLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
}

// ParseAPITime parses the timestamps used by the trends and routines
// endpoints, with or without milliseconds
func ParseAPITime(s string) (time.Time, bool) {
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
