package extrinsic

import "errors"

var (
	// ErrExtrinsicFailed is returned for every failed submission: rejected signatures, broadcast errors,
	// error notifications from the node and cancellation before inclusion.
	ErrExtrinsicFailed = errors.New("extrinsic failed")

	// ErrMissingPrerequisite means something needed to build or submit a transaction is absent, such as
	// a connected wallet, a signer or a staged transaction.
	ErrMissingPrerequisite = errors.New("missing prerequisite")

	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)
