package oxml

import (
	"fmt"
	"time"
)

// layouts accepted for cells of type d, written in ISO 8601.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
}

func ParseDate(str string) (time.Time, error) {
	for _, f := range dateLayouts {
		when, err := time.Parse(f, str)
		if err == nil {
			return when, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %s", ErrFile, str)
}
