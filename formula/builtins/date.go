package builtins

import (
	"math"
	"time"

	"github.com/midbel/formulae/value"
)

// Edate moves a date serial by a number of months. The day is clamped to the
// last day of the target month and the result carries a date pattern.
func Edate(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, ErrArity
	}
	return elementwise(args, edate), nil
}

func edate(list []value.ScalarValue) value.ScalarValue {
	start, months := list[0], list[1]
	if e, ok := value.FirstError(start, months); ok {
		return e
	}
	if isTextOrBool(start) || isTextOrBool(months) {
		return value.ErrValue
	}
	serial, err := numeric(start)
	if err != nil {
		return err
	}
	if serial < 0 {
		return value.ErrNum
	}
	delta, err := numeric(months)
	if err != nil {
		return err
	}
	var (
		when         = value.SerialToTime(math.Floor(serial))
		year, mon, d = when.Date()
		total        = int(mon) - 1 + int(math.Trunc(delta))
	)
	year += floorDiv(total, 12)
	mon = time.Month(total-floorDiv(total, 12)*12) + 1
	d = min(d, daysIn(year, mon))

	res := value.TimeToSerial(time.Date(year, mon, d, 0, 0, 0, 0, time.UTC))
	if res < 0 {
		return value.ErrNum
	}
	return value.WithPattern(value.Float(res), value.DefaultDatePattern)
}

// Date builds a date serial from a year, a month and a day. Months and days
// out of their range overflow on the next unit. Years below 1900 are
// relative to 1900.
func Date(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, ErrArity
	}
	res := elementwise(args, func(list []value.ScalarValue) value.ScalarValue {
		if e, ok := value.FirstError(list[0], list[1], list[2]); ok {
			return e
		}
		var parts [3]float64
		for i := range list {
			f, err := numeric(list[i])
			if err != nil {
				return err
			}
			parts[i] = math.Trunc(f)
		}
		year := int(parts[0])
		if year < 0 || year >= 10000 {
			return value.ErrNum
		}
		if year < 1900 {
			year += 1900
		}
		when := time.Date(year, time.Month(1), 1, 0, 0, 0, 0, time.UTC)
		when = when.AddDate(0, int(parts[1])-1, int(parts[2])-1)
		serial := value.TimeToSerial(when)
		if serial < 0 {
			return value.ErrNum
		}
		return value.WithPattern(value.Float(serial), value.DefaultDatePattern)
	})
	return res, nil
}

func isTextOrBool(v value.ScalarValue) bool {
	return value.IsText(v) || value.IsBoolean(v)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
