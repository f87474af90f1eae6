package chronos

import (
	"time"
	_ "time/tzdata"
)

// Now returns the current time in tz. "" and "UTC" mean UTC, "LOCAL"
// means the process's local zone, anything else is looked up as an IANA
// timezone db name, eg "America/Chicago". Unknown names fall back to
// UTC.
func Now(tz string) time.Time {
	return time.Now().In(location(tz))
}

// Dur parses s with [time.ParseDuration], panicking on a bad literal.
// Intended for constants spelled inline, like Dur("5s").
func Dur(s string) time.Duration {
	t, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return t
}

// In returns t in the timezone named tz.
func In(t time.Time, tz string) time.Time {
	return t.In(location(tz))
}

func location(tz string) *time.Location {
	if tz == "LOCAL" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
