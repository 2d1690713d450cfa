package classifications

import "time"

// SetClock replaces the timestamp source of a store created by New.
func SetClock(s System, now func() time.Time) {
	s.(*repo).now = now
}
