package util

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
)

// NumberToInt converts an integral JSON number into an arbitrary precision integer. Storage values
// from the sidecar exceed float64 precision, so callers must decode with UseNumber.
func NumberToInt(num json.Number) (math.Int, error) {
	n, ok := math.NewIntFromString(string(num))
	if !ok {
		return math.Int{}, fmt.Errorf("unexpected non-integer value: %s", num)
	}
	return n, nil
}
