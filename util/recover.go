package util

import (
	"errors"
	"fmt"
)

// InterfaceToError converts a recovered panic value into an error.
func InterfaceToError(recovered interface{}) error {
	if err, ok := recovered.(error); ok {
		return err
	}

	if message, ok := recovered.(string); ok {
		return errors.New(message)
	}

	return fmt.Errorf("recovered from a panic of type %T: %v", recovered, recovered)
}
