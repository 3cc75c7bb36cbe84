package wallet

import "errors"

var (
	ErrUnknownWallet = errors.New("unknown wallet")
	ErrNotConnected  = errors.New("wallet not connected")
)
