package units

import "errors"

// ErrInvalidFormat marks malformed numeric or duration input. It is meant to be shown as inline field
// validation, never to abort a flow.
var ErrInvalidFormat = errors.New("invalid format")
