package location

import "time"

var location = time.Local

// Set stores the project-wide delivery timezone. Called once from config
// before anything compares wall-clock times.
func Set(loc *time.Location) {
	location = loc
}

func Location() *time.Location {
	return location
}

// WeekdayOf returns the weekday in the configured timezone using the
// project mapping: 1 = Monday .. 7 = Sunday.
func WeekdayOf(t time.Time) int {
	wd := int(t.In(location).Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
