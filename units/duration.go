package units

import (
	"fmt"
	"math"
	"math/bits"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BlockTime is the target time between Joystream blocks.
const BlockTime = 6 * time.Second

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	// Calendar units have no fixed length, these are the casual conversions used for block math.
	secondsPerMonth = 30 * secondsPerDay
	secondsPerYear  = 365 * secondsPerDay
)

// Tokens, in order: Y/y years, M months, D/d days, optional T, H/h hours, m minutes, S/s seconds.
var durationRegex = regexp.MustCompile(`^(?:(\d+)[Yy])?(?:(\d+)M)?(?:(\d+)[Dd])?T?(?:(\d+)[Hh])?(?:(\d+)m)?(?:(\d+)[Ss])?$`)

// Duration is a calendar style duration as typed by users (ex. "1y2M3d4h5m6s").
type Duration struct {
	Years   uint64
	Months  uint64
	Days    uint64
	Hours   uint64
	Minutes uint64
	Seconds uint64
}

// ParseDuration parses the compact duration grammar. Omitted tokens are zero, so the empty string is
// the zero duration.
func ParseDuration(text string) (Duration, error) {
	matches := durationRegex.FindStringSubmatch(text)
	if matches == nil {
		return Duration{}, fmt.Errorf("%w: %q is not a duration like 1y2M3d4h5m6s", ErrInvalidFormat, text)
	}

	fields := make([]uint64, 6)
	for i, raw := range matches[1:] {
		if raw == "" {
			continue
		}

		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Duration{}, fmt.Errorf("%w: %q: %s", ErrInvalidFormat, raw, err)
		}
		fields[i] = value
	}

	d := Duration{
		Years:   fields[0],
		Months:  fields[1],
		Days:    fields[2],
		Hours:   fields[3],
		Minutes: fields[4],
		Seconds: fields[5],
	}
	if _, ok := d.totalSeconds(); !ok {
		return Duration{}, fmt.Errorf("%w: %q is longer than %d seconds", ErrInvalidFormat, text, uint64(math.MaxUint64))
	}
	return d, nil
}

// TotalSeconds converts to seconds using 365 day years and 30 day months. Durations too long for a
// uint64 saturate at math.MaxUint64.
func (d Duration) TotalSeconds() uint64 {
	total, _ := d.totalSeconds()
	return total
}

func (d Duration) totalSeconds() (uint64, bool) {
	parts := [...][2]uint64{
		{d.Years, secondsPerYear},
		{d.Months, secondsPerMonth},
		{d.Days, secondsPerDay},
		{d.Hours, secondsPerHour},
		{d.Minutes, secondsPerMinute},
		{d.Seconds, 1},
	}

	var total uint64
	for _, part := range parts {
		hi, seconds := bits.Mul64(part[0], part[1])
		if hi != 0 {
			return math.MaxUint64, false
		}

		var carry uint64
		total, carry = bits.Add64(total, seconds, 0)
		if carry != 0 {
			return math.MaxUint64, false
		}
	}
	return total, true
}

func (d Duration) IsZero() bool {
	return d == Duration{}
}

// String renders the compact form, omitting zero fields. The zero duration renders as "0s".
func (d Duration) String() string {
	if d.IsZero() {
		return "0s"
	}

	var builder strings.Builder
	parts := []struct {
		value uint64
		unit  string
	}{
		{d.Years, "y"},
		{d.Months, "M"},
		{d.Days, "d"},
		{d.Hours, "h"},
		{d.Minutes, "m"},
		{d.Seconds, "s"},
	}
	for _, part := range parts {
		if part.value == 0 {
			continue
		}
		builder.WriteString(strconv.FormatUint(part.value, 10))
		builder.WriteString(part.unit)
	}
	return builder.String()
}

// DurationToBlocks is the number of blocks needed to cover d, rounded up.
func DurationToBlocks(d Duration) uint64 {
	blockSeconds := uint64(BlockTime / time.Second)
	total := d.TotalSeconds()

	blocks := total / blockSeconds
	if total%blockSeconds != 0 {
		blocks++
	}
	return blocks
}

// BlocksToDuration expresses a block count as a calendar duration, filling the largest units first.
// Years and months are fixed length here, so BlocksToDuration(DurationToBlocks(d)) only equals d when
// d has no remainder against the block time and its fields are already normalized.
func BlocksToDuration(blocks uint64) Duration {
	// The product may not fit a uint64, but its high word is always below secondsPerYear, so the year
	// quotient does.
	hi, lo := bits.Mul64(blocks, uint64(BlockTime/time.Second))

	var d Duration
	var remaining uint64
	d.Years, remaining = bits.Div64(hi, lo, secondsPerYear)
	d.Months, remaining = remaining/secondsPerMonth, remaining%secondsPerMonth
	d.Days, remaining = remaining/secondsPerDay, remaining%secondsPerDay
	d.Hours, remaining = remaining/secondsPerHour, remaining%secondsPerHour
	d.Minutes, d.Seconds = remaining/secondsPerMinute, remaining%secondsPerMinute
	return d
}
