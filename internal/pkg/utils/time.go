package utils

import "time"

// FormatFHIRDateTime renders t as a FHIR dateTime (RFC 3339 with offset).
func FormatFHIRDateTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatFHIRInstant renders t as a FHIR instant, which always carries seconds and an offset.
func FormatFHIRInstant(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
