package services

import (
	"fmt"
	"time"
)

// ReferenceDay returns the calendar day that t falls on in the fixed reference
// timezone (UTC plus utcOffsetHours), as midnight UTC of that date.
// Grant bookkeeping compares these values only.
func ReferenceDay(t time.Time, utcOffsetHours int) time.Time {
	loc := time.FixedZone(fmt.Sprintf("UTC%+d", utcOffsetHours), utcOffsetHours*60*60)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextReferenceMidnight returns when the reference day after t begins
func NextReferenceMidnight(t time.Time, utcOffsetHours int) time.Time {
	day := ReferenceDay(t, utcOffsetHours)
	return day.AddDate(0, 0, 1).Add(-time.Duration(utcOffsetHours) * time.Hour)
}
