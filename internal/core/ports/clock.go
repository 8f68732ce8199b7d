package ports

import "time"

// Clock abstracts the current time so services stay testable with fixed
// clocks. It backs entry-date defaults and days-overdue reporting.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock reading the system time in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}
