package timezone

import "time"

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone for empty or
// unknown names.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// DayStart parses a YYYY-MM-DD date as midnight in loc.
func DayStart(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, date, loc)
}

// DayEnd returns the exclusive upper bound of the day, which is the next
// midnight in loc. DST days are 23 or 25 hours long.
func DayEnd(date string, loc *time.Location) (time.Time, error) {
	start, err := DayStart(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 1), nil
}
