package rpc

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traumschule/joyutils/crypto"
	"github.com/traumschule/joyutils/extrinsic"
	"github.com/traumschule/joyutils/log"
)

const bobGeneric = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"

type addressOnlySigner struct{}

func (addressOnlySigner) Address() string { return bobGeneric }

// Both checks run before the node is contacted, so a client without a connection is enough.
func TestSignAndSend_RejectsSignerBeforeContactingNode(t *testing.T) {
	client := &SubstrateClient{logger: log.NewLoggerWithWriter(io.Discard, "error")}
	tx := &extrinsic.UnsignedTransaction{Module: "forumWorkingGroup", Method: "updateRewardAmount"}

	alice, err := crypto.NewKeyPairFromSecret("//Alice", 126)
	require.NoError(t, err)

	cases := []struct {
		name      string
		signer    extrinsic.Signer
		accountID string
		expected  error
	}{
		{"no signer", nil, bobGeneric, ErrUnsupportedSigner},
		{"signer without a key", addressOnlySigner{}, bobGeneric, ErrUnsupportedSigner},
		{"key of another account", alice, bobGeneric, ErrSignerMismatch},
		{"malformed account", alice, "not-an-address", ErrSignerMismatch},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sub, err := client.SignAndSend(context.Background(), tx, c.accountID, extrinsic.SendOptions{Signer: c.signer})
			assert.ErrorIs(t, err, c.expected)
			assert.Nil(t, sub)
		})
	}
}
