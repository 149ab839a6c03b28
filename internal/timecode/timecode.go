package timecode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// text that does not match the fixed HH:MM:SS,mmm pattern
var ErrMalformedTimestamp = errors.New("malformed timestamp")

var timestampPattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

// SubRip timestamp split into display fields
type Timestamp struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

// Parse accepts only the fixed pattern HH:MM:SS,mmm: two digits each for
// hours, minutes and seconds, three for milliseconds, ':' and ','
// separators. Anything else fails with ErrMalformedTimestamp.
func Parse(text string) (Timestamp, error) {
	m := timestampPattern.FindStringSubmatch(text)
	if m == nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}

	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	ms, _ := strconv.Atoi(m[4])

	return Timestamp{
		Hours:        h,
		Minutes:      min,
		Seconds:      sec,
		Milliseconds: ms,
	}, nil
}

// fixed-width text form; round-trips with Parse for all valid input
func (t Timestamp) Format() string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		t.Hours, t.Minutes, t.Seconds, t.Milliseconds)
}

// offset in milliseconds from 00:00:00,000
func (t Timestamp) Millis() int64 {
	return int64(t.Hours)*3600000 +
		int64(t.Minutes)*60000 +
		int64(t.Seconds)*1000 +
		int64(t.Milliseconds)
}

// FromMillis decomposes a millisecond offset into display fields.
// Negative offsets clamp to zero, so FromMillis(x).Millis() == max(0, x).
func FromMillis(ms int64) Timestamp {
	if ms < 0 {
		ms = 0
	}
	return Timestamp{
		Hours:        int(ms / 3600000),
		Minutes:      int(ms % 3600000 / 60000),
		Seconds:      int(ms % 60000 / 1000),
		Milliseconds: int(ms % 1000),
	}
}

// DurationMillis is the elapsed time from start to end in milliseconds.
// The result is negative when end precedes start; that is not rejected
// here, callers decide whether it matters.
func DurationMillis(start, end string) (int64, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, err := Parse(end)
	if err != nil {
		return 0, err
	}
	return e.Millis() - s.Millis(), nil
}

// AddMillis shifts a textual timestamp by delta milliseconds and returns
// the canonical text form of the result.
func AddMillis(text string, delta int64) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}
	return FromMillis(t.Millis() + delta).Format(), nil
}
