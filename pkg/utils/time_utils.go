package utils

import "time"

// India Standard Time (+05:30)
var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+30*60)
}()

func IST() *time.Location { return istLoc }

func FormatDisplayIST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(istLoc).Format("02 Jan 2006")
}

// StartOfDayIST truncates t to local midnight.
func StartOfDayIST(t time.Time) time.Time {
	t = t.In(istLoc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, istLoc)
}
