package procedure

import "time"

// utcNowISO returns the current UTC time in ISO-8601 form at seconds precision.
func utcNowISO() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// retainedUntil returns the retention cutoff date, years from today.
func retainedUntil(years int) string {
	return time.Now().UTC().AddDate(0, 0, 365*years).Format("2006-01-02")
}
