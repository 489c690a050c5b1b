package service

import "time"

// Billing runs on Indian Standard Time regardless of server locale.
// A fixed zone avoids depending on the host tzdata.
var istZone = time.FixedZone("IST", 5*3600+30*60)

func ISTNow() time.Time {
	return time.Now().In(istZone)
}

// ISTToday returns the current IST calendar date at midnight.
func ISTToday() time.Time {
	now := ISTNow()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, istZone)
}
