package sms

import (
	"fmt"
	"strconv"
	"time"
)

// RawMessage is a single <sms> record of a backup export. Attributes missing from the
// record are left empty.
type RawMessage struct {
	Address      string
	Date         string
	ReadableDate string
	Body         string
}

// Time converts the epoch milliseconds in Date to a UTC time.
func (m RawMessage) Time() (time.Time, error) {
	millis, err := strconv.ParseInt(m.Date, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid sms date %q: %w", m.Date, err)
	}
	return time.UnixMilli(millis).UTC(), nil
}
