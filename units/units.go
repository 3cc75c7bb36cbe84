package units

import (
	"fmt"
	"regexp"
	"strings"

	"cosmossdk.io/math"
)

// JoystreamDecimals is the number of HAPI digits in one JOY.
const JoystreamDecimals = 10

var (
	decimalRegex = regexp.MustCompile(`^(\d*)(?:\.(\d*))?$`)
	integerRegex = regexp.MustCompile(`^\d+$`)
)

// ToBaseUnits converts a display amount (ex. "0.01") into an integer string of base units. The fraction
// is right padded to decimals digits and leading zeros are stripped. Fractions longer than decimals are
// rejected rather than rounded or truncated.
func ToBaseUnits(amount string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative decimals %d", ErrInvalidFormat, decimals)
	}

	matches := decimalRegex.FindStringSubmatch(amount)
	if matches == nil {
		return "", fmt.Errorf("%w: %q is not a decimal number", ErrInvalidFormat, amount)
	}

	whole, fraction := matches[1], matches[2]
	if whole == "" && fraction == "" {
		return "", fmt.Errorf("%w: %q has no digits", ErrInvalidFormat, amount)
	}
	if len(fraction) > decimals {
		return "", fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidFormat, amount, decimals)
	}

	padded := whole + fraction + strings.Repeat("0", decimals-len(fraction))
	stripped := strings.TrimLeft(padded, "0")
	if stripped == "" {
		return "0", nil
	}
	return stripped, nil
}

// FromBaseUnits formats an integer string of base units with exactly decimals fractional digits.
func FromBaseUnits(base string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative decimals %d", ErrInvalidFormat, decimals)
	}
	if !integerRegex.MatchString(base) {
		return "", fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidFormat, base)
	}

	digits := strings.TrimLeft(base, "0")
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	if decimals == 0 {
		return digits, nil
	}

	split := len(digits) - decimals
	return digits[:split] + "." + digits[split:], nil
}

// JoyToHapi parses a JOY amount into HAPI.
func JoyToHapi(joy string) (math.Int, error) {
	base, err := ToBaseUnits(joy, JoystreamDecimals)
	if err != nil {
		return math.Int{}, err
	}

	hapi, ok := math.NewIntFromString(base)
	if !ok {
		return math.Int{}, fmt.Errorf("%w: %q", ErrInvalidFormat, joy)
	}
	return hapi, nil
}

// JoyDecToHapi converts a computed JOY value to HAPI, dropping precision below one HAPI.
func JoyDecToHapi(joy math.LegacyDec) math.Int {
	return joy.MulInt(hapiPerJoy()).TruncateInt()
}

// HapiToJoy converts HAPI into a JOY decimal.
func HapiToJoy(hapi math.Int) math.LegacyDec {
	return math.LegacyNewDecFromInt(hapi).QuoInt(hapiPerJoy())
}

// FormatHapi renders HAPI as an exact JOY string (ex. "0.0200000000").
func FormatHapi(hapi math.Int) string {
	formatted, err := FromBaseUnits(hapi.String(), JoystreamDecimals)
	if err != nil {
		// Negative amounts only come from arithmetic bugs, show them raw.
		return hapi.String() + " HAPI"
	}
	return formatted
}

// FormatJoy renders a JOY amount rounded to two decimals, the precision the dashboard shows.
func FormatJoy(joy math.LegacyDec) string {
	return FormatDecimal(joy, 2) + " JOY"
}

// FormatDecimal rounds to places fractional digits (half to even).
func FormatDecimal(value math.LegacyDec, places int) string {
	scale := math.NewIntWithDecimal(1, places)
	scaled := value.MulInt(scale).RoundInt()

	negative := scaled.IsNegative()
	if negative {
		scaled = scaled.Neg()
	}

	formatted, err := FromBaseUnits(scaled.String(), places)
	if err != nil {
		return value.String()
	}
	if negative && !scaled.IsZero() {
		return "-" + formatted
	}
	return formatted
}

func hapiPerJoy() math.Int {
	return math.NewIntWithDecimal(1, JoystreamDecimals)
}
