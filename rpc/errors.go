package rpc

import "errors"

var (
	ErrUnsupportedSigner = errors.New("signer cannot sign substrate extrinsics")
	ErrSignerMismatch    = errors.New("signer does not hold the sending account")
	ErrBlockNotFound     = errors.New("block not found")
)
