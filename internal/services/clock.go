package services

import "time"

// Dates are stored as ISO calendar days in UTC so daily-streak checks do not
// depend on server locale.
func todayDate() string {
	return time.Now().UTC().Format("2006-01-02")
}
