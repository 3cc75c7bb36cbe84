package rpc

import (
	"context"
	"fmt"
	"time"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/retriever"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/state"
	"github.com/centrifuge/go-substrate-rpc-client/v4/rpc/author"
	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/traumschule/joyutils/coding"
	"github.com/traumschule/joyutils/crypto"
	"github.com/traumschule/joyutils/extrinsic"
	"github.com/traumschule/joyutils/log"
	"github.com/traumschule/joyutils/units"
)

// keyringSigner is implemented by signers holding a local sr25519 key.
type keyringSigner interface {
	KeyringPair() signature.KeyringPair
}

// SubstrateClient talks to a Joystream node over a websocket.
type SubstrateClient struct {
	api    *gsrpc.SubstrateAPI
	logger *log.Logger
}

var (
	_ extrinsic.Submitter = (*SubstrateClient)(nil)
	_ ChainReader         = (*SubstrateClient)(nil)
	_ statusSource        = (*author.ExtrinsicStatusSubscription)(nil)
)

func NewSubstrateClient(url string, logger *log.Logger) (*SubstrateClient, error) {
	api, err := gsrpc.NewSubstrateAPI(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}

	return &SubstrateClient{
		api:    api,
		logger: logger.ApplyPrefix("[rpc]").With("url", url),
	}, nil
}

// SignAndSend signs tx with the signer's key, using the next nonce the node knows of and an immortal era,
// and watches it.
func (c *SubstrateClient) SignAndSend(ctx context.Context, tx *extrinsic.UnsignedTransaction, accountID string, opts extrinsic.SendOptions) (extrinsic.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	signer, ok := opts.Signer.(keyringSigner)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSigner, opts.Signer)
	}
	// The nonce is read for accountID, so any other key produces an extrinsic the node rejects.
	if !crypto.SameAccount(opts.Signer.Address(), accountID) {
		return nil, fmt.Errorf("%w: signer %s, account %s", ErrSignerMismatch, opts.Signer.Address(), accountID)
	}

	meta, err := c.api.RPC.State.GetMetadataLatest()
	if err != nil {
		return nil, fmt.Errorf("fetching metadata: %w", err)
	}

	args := make([]interface{}, 0, len(tx.Args))
	for _, arg := range tx.Args {
		args = append(args, arg.Value)
	}

	callName := CallName(tx.Module, tx.Method)
	call, err := types.NewCall(meta, callName, args...)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", callName, err)
	}
	ext := types.NewExtrinsic(call)

	options, err := c.signatureOptions(accountID)
	if err != nil {
		return nil, err
	}

	if err := ext.Sign(signer.KeyringPair(), options); err != nil {
		return nil, fmt.Errorf("signing %s: %w", callName, err)
	}

	encoded, err := codec.Encode(ext)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", callName, err)
	}
	txHash := coding.ExtrinsicHash(encoded)

	sub, err := c.api.RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		return nil, fmt.Errorf("submitting %s: %w", callName, err)
	}
	c.logger.Debug("watching extrinsic", "call", callName, "tx_hash", coding.ShortHash(txHash))

	return newStatusSubscription(sub, txHash, c.inBlockEvents, c.logger), nil
}

func (c *SubstrateClient) signatureOptions(accountID string) (types.SignatureOptions, error) {
	genesisHash, err := c.api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return types.SignatureOptions{}, fmt.Errorf("fetching genesis hash: %w", err)
	}

	runtime, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return types.SignatureOptions{}, fmt.Errorf("fetching runtime version: %w", err)
	}

	// Includes transactions still in the pool, unlike the nonce in account storage.
	var nonce uint64
	if err := c.api.Client.Call(&nonce, "system_accountNextIndex", accountID); err != nil {
		return types.SignatureOptions{}, fmt.Errorf("fetching nonce for %s: %w", accountID, err)
	}

	return types.SignatureOptions{
		BlockHash:          genesisHash,
		Era:                types.ExtrinsicEra{IsMortalEra: false},
		GenesisHash:        genesisHash,
		Nonce:              types.NewUCompactFromUInt(nonce),
		SpecVersion:        runtime.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: runtime.TransactionVersion,
	}, nil
}

// inBlockEvents lists the events the extrinsic with the given hash emitted in the block.
func (c *SubstrateClient) inBlockEvents(blockHash types.Hash, txHash string) ([]string, error) {
	block, err := c.api.RPC.Chain.GetBlock(blockHash)
	if err != nil {
		return nil, fmt.Errorf("fetching block %s: %w", blockHash.Hex(), err)
	}

	index := -1
	for i, ext := range block.Block.Extrinsics {
		encoded, err := codec.Encode(ext)
		if err != nil {
			return nil, fmt.Errorf("encoding extrinsic %d: %w", i, err)
		}
		if coding.ExtrinsicHash(encoded) == txHash {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("extrinsic %s not found in block %s", txHash, blockHash.Hex())
	}

	eventRetriever, err := retriever.NewDefaultEventRetriever(state.NewEventProvider(c.api.RPC.State), c.api.RPC.State)
	if err != nil {
		return nil, fmt.Errorf("creating event retriever: %w", err)
	}

	events, err := eventRetriever.GetEvents(blockHash)
	if err != nil {
		return nil, fmt.Errorf("fetching events of block %s: %w", blockHash.Hex(), err)
	}

	names := []string{}
	for _, event := range events {
		if event.Phase == nil || !event.Phase.IsApplyExtrinsic || int(event.Phase.AsApplyExtrinsic) != index {
			continue
		}
		names = append(names, EventName(event.Name))
	}
	return names, nil
}

func (c *SubstrateClient) LatestBlock(ctx context.Context) (units.BlockSample, error) {
	if err := ctx.Err(); err != nil {
		return units.BlockSample{}, err
	}

	header, err := c.api.RPC.Chain.GetHeaderLatest()
	if err != nil {
		return units.BlockSample{}, fmt.Errorf("fetching best header: %w", err)
	}

	number := uint64(header.Number)
	hash, err := c.api.RPC.Chain.GetBlockHash(number)
	if err != nil {
		return units.BlockSample{}, fmt.Errorf("fetching hash of block %d: %w", number, err)
	}

	return c.sample(number, hash)
}

func (c *SubstrateClient) Block(ctx context.Context, number uint64) (units.BlockSample, error) {
	if err := ctx.Err(); err != nil {
		return units.BlockSample{}, err
	}

	hash, err := c.api.RPC.Chain.GetBlockHash(number)
	if err != nil {
		return units.BlockSample{}, fmt.Errorf("fetching hash of block %d: %w", number, err)
	}
	if hash == (types.Hash{}) {
		return units.BlockSample{}, fmt.Errorf("%w: %d", ErrBlockNotFound, number)
	}

	return c.sample(number, hash)
}

func (c *SubstrateClient) sample(number uint64, hash types.Hash) (units.BlockSample, error) {
	meta, err := c.api.RPC.State.GetMetadataLatest()
	if err != nil {
		return units.BlockSample{}, fmt.Errorf("fetching metadata: %w", err)
	}

	key, err := types.CreateStorageKey(meta, "Timestamp", "Now")
	if err != nil {
		return units.BlockSample{}, fmt.Errorf("creating timestamp storage key: %w", err)
	}

	var millis types.U64
	ok, err := c.api.RPC.State.GetStorage(key, &millis, hash)
	if err != nil {
		return units.BlockSample{}, fmt.Errorf("fetching timestamp of block %d: %w", number, err)
	}
	if !ok {
		return units.BlockSample{}, fmt.Errorf("%w: no timestamp at %d", ErrBlockNotFound, number)
	}

	return units.BlockSample{
		Block:     number,
		Timestamp: time.UnixMilli(int64(millis)),
	}, nil
}
