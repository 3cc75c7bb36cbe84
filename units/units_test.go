package units_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traumschule/joyutils/units"
)

func TestToBaseUnits(t *testing.T) {
	cases := []struct {
		amount   string
		decimals int
		expected string
	}{
		{"0.01", 10, "100000000"},
		{"1", 10, "10000000000"},
		{"1.5", 10, "15000000000"},
		{".5", 10, "5000000000"},
		{"5.", 2, "500"},
		{"0012.34", 2, "1234"},
		{"0", 10, "0"},
		{"00.000", 3, "0"},
		{"42", 0, "42"},
		{"0.0000000001", 10, "1"},
	}

	for _, c := range cases {
		actual, err := units.ToBaseUnits(c.amount, c.decimals)
		require.NoError(t, err, c.amount)
		assert.Equal(t, c.expected, actual, c.amount)
	}
}

func TestToBaseUnits_InvalidFormat(t *testing.T) {
	for _, amount := range []string{"", ".", "abc", "1.2.3", "-1", "1e5", " 1", "1,5"} {
		_, err := units.ToBaseUnits(amount, 10)
		assert.ErrorIs(t, err, units.ErrInvalidFormat, amount)
	}
}

func TestToBaseUnits_RejectsExcessFractionDigits(t *testing.T) {
	_, err := units.ToBaseUnits("0.00000000001", 10)
	assert.ErrorIs(t, err, units.ErrInvalidFormat)

	_, err = units.ToBaseUnits("1.5", 0)
	assert.ErrorIs(t, err, units.ErrInvalidFormat)
}

func TestFromBaseUnits(t *testing.T) {
	cases := []struct {
		base     string
		decimals int
		expected string
	}{
		{"100000000", 10, "0.0100000000"},
		{"10000000000", 10, "1.0000000000"},
		{"0", 10, "0.0000000000"},
		{"1234", 2, "12.34"},
		{"000042", 0, "42"},
		{"7", 3, "0.007"},
	}

	for _, c := range cases {
		actual, err := units.FromBaseUnits(c.base, c.decimals)
		require.NoError(t, err, c.base)
		assert.Equal(t, c.expected, actual, c.base)
	}

	_, err := units.FromBaseUnits("-5", 2)
	assert.ErrorIs(t, err, units.ErrInvalidFormat)
	_, err = units.FromBaseUnits("1.5", 2)
	assert.ErrorIs(t, err, units.ErrInvalidFormat)
}

func TestBaseUnits_RoundTripPreservesValue(t *testing.T) {
	amounts := []string{"0", "0.01", "1", "1.5", "123456789.0123456789", "0.0000000001", "99999999999999999999.5"}

	for _, decimals := range []int{10, 12, 18} {
		for _, amount := range amounts {
			base, err := units.ToBaseUnits(amount, decimals)
			require.NoError(t, err)

			formatted, err := units.FromBaseUnits(base, decimals)
			require.NoError(t, err)

			expected := math.LegacyMustNewDecFromStr(amount)
			actual := math.LegacyMustNewDecFromStr(formatted)
			assert.True(t, expected.Equal(actual), "%s at %d decimals became %s", amount, decimals, formatted)
		}
	}
}

func TestJoyHapiConversion(t *testing.T) {
	hapi, err := units.JoyToHapi("2.5")
	require.NoError(t, err)
	assert.Equal(t, "25000000000", hapi.String())

	assert.Equal(t, "2.500000000000000000", units.HapiToJoy(hapi).String())
	assert.Equal(t, "2.5000000000", units.FormatHapi(hapi))

	// Sub-HAPI precision is dropped.
	assert.Equal(t, "1", units.JoyDecToHapi(math.LegacyMustNewDecFromStr("0.00000000019")).String())

	_, err = units.JoyToHapi("two")
	assert.ErrorIs(t, err, units.ErrInvalidFormat)
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "1234.57", units.FormatDecimal(math.LegacyMustNewDecFromStr("1234.5678"), 2))
	assert.Equal(t, "-1.23", units.FormatDecimal(math.LegacyMustNewDecFromStr("-1.234"), 2))
	assert.Equal(t, "0.00", units.FormatDecimal(math.LegacyZeroDec(), 2))
	assert.Equal(t, "3", units.FormatDecimal(math.LegacyMustNewDecFromStr("3.2"), 0))
	assert.Equal(t, "0.02 JOY", units.FormatJoy(math.LegacyMustNewDecFromStr("0.02")))
}
