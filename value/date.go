package value

import (
	"math"
	"time"
)

const DefaultDatePattern = "YYYY-0MM-0DD"

const day = 24 * time.Hour

var (
	epoch     = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	leapShift = time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC)
)

// SerialToTime converts a date serial into a time. Serials below 61 are
// shifted by one day to account for the fictitious 1900-02-29.
func SerialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	frac := serial - days
	base := epoch
	if days < 61 {
		base = base.Add(day)
	}
	when := base.AddDate(0, 0, int(days))
	msec := math.Round(frac * float64(day/time.Millisecond))
	return when.Add(time.Duration(msec) * time.Millisecond)
}

func TimeToSerial(when time.Time) float64 {
	when = when.UTC()
	var (
		date  = time.Date(when.Year(), when.Month(), when.Day(), 0, 0, 0, 0, time.UTC)
		days  = math.Round(date.Sub(epoch).Hours() / 24)
		clock = when.Sub(date)
	)
	if date.Before(leapShift) {
		days--
	}
	return days + clock.Seconds()/day.Seconds()
}

func Date(when time.Time) Formatted {
	return WithPattern(Float(TimeToSerial(when)), DefaultDatePattern)
}
