package extrinsic

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/traumschule/joyutils/log"
	"github.com/traumschule/joyutils/util"
)

// Coordinator drives one signed transaction at a time from broadcast to block inclusion.
//
// The first in-block notification is terminal: finality is not awaited. Submissions are never retried,
// since rebroadcasting a mutation that may already be in the pool risks applying it twice.
type Coordinator struct {
	submitter Submitter
	metrics   *Metrics
	logger    *log.Logger

	inFlight atomic.Bool
}

func NewCoordinator(submitter Submitter, metrics *Metrics, logger *log.Logger) *Coordinator {
	return &Coordinator{
		submitter: submitter,
		metrics:   metrics,
		logger:    logger.ApplyPrefix("[extrinsic]"),
	}
}

// Submit signs and broadcasts tx for accountID, then waits for it to be included in a block.
//
// onProgress, when set, is called once with StatusSigned after the node accepted the broadcast. Every
// failure wraps ErrExtrinsicFailed, except for missing inputs (ErrMissingPrerequisite) and concurrent use
// (ErrSubmissionInFlight). Cancelling ctx abandons the wait and releases the subscription, but an
// extrinsic that was already broadcast may still be included.
func (c *Coordinator) Submit(
	ctx context.Context,
	tx *UnsignedTransaction,
	accountID string,
	signer Signer,
	onProgress ProgressFunc,
) (*Outcome, error) {
	switch {
	case tx == nil:
		return nil, fmt.Errorf("%w: no transaction", ErrMissingPrerequisite)
	case accountID == "":
		return nil, fmt.Errorf("%w: no account", ErrMissingPrerequisite)
	case signer == nil:
		return nil, fmt.Errorf("%w: no signer", ErrMissingPrerequisite)
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	logger := c.logger.With("submission_id", uuid.NewString(), "call", tx.Label(), "account", accountID)

	outcome, err := c.submit(ctx, tx, accountID, signer, onProgress, logger)
	switch {
	case err == nil && outcome.Failed():
		c.metrics.record(outcomeFailed)
		logger.Warn("included, but dispatch failed", "block_hash", outcome.BlockHash, "tx_hash", outcome.TransactionHash, "events", outcome.Events)
	case err == nil:
		c.metrics.record(outcomeCompleted)
		logger.Info("✅ included in block", "block_hash", outcome.BlockHash, "tx_hash", outcome.TransactionHash)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		c.metrics.record(outcomeCancelled)
		logger.Warn("submission abandoned", "error", err.Error())
	default:
		c.metrics.record(outcomeError)
		logger.Error("submission failed", "error", err.Error())
	}

	return outcome, err
}

func (c *Coordinator) submit(
	ctx context.Context,
	tx *UnsignedTransaction,
	accountID string,
	signer Signer,
	onProgress ProgressFunc,
	logger *log.Logger,
) (*Outcome, error) {
	logger.Debug("requesting signature")
	subscription, err := c.submitter.SignAndSend(ctx, tx, accountID, SendOptions{Signer: signer})
	if err != nil {
		return nil, fmt.Errorf("%w: sign and send: %w", ErrExtrinsicFailed, err)
	}
	defer subscription.Unsubscribe()

	txHash := subscription.TransactionHash()
	logger = logger.With("tx_hash", txHash)
	logger.Info("📣 broadcast accepted")

	if err := notifyProgress(onProgress, StatusSigned); err != nil {
		return nil, fmt.Errorf("%w: progress callback: %w", ErrExtrinsicFailed, err)
	}

	errs := subscription.Err()
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for inclusion: %w", ErrExtrinsicFailed, ctx.Err())

		case err, ok := <-errs:
			if !ok {
				// Closed without an error, keep draining notifications.
				errs = nil
				continue
			}
			return nil, fmt.Errorf("%w: subscription: %w", ErrExtrinsicFailed, err)

		case notification, ok := <-subscription.Notifications():
			if !ok {
				return nil, fmt.Errorf("%w: subscription closed before inclusion", ErrExtrinsicFailed)
			}
			logger.Debug("status update", "status", notification.String())

			if notification.IsError || IsErrorKind(notification.Kind) {
				return nil, fmt.Errorf("%w: extrinsic is %s", ErrExtrinsicFailed, notification.Kind)
			}

			if notification.IsInBlock() {
				return &Outcome{
					Events:          append([]string(nil), notification.Events...),
					BlockHash:       notification.BlockHash,
					TransactionHash: txHash,
				}, nil
			}
		}
	}
}

func notifyProgress(onProgress ProgressFunc, status Status) (err error) {
	if onProgress == nil {
		return nil
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = util.InterfaceToError(recovered)
		}
	}()

	onProgress(status)
	return nil
}
