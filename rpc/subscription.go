package rpc

import (
	"sync"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/traumschule/joyutils/extrinsic"
	"github.com/traumschule/joyutils/log"
)

type eventsFunc func(blockHash types.Hash, txHash string) ([]string, error)

// statusSource is the node's status stream. *author.ExtrinsicStatusSubscription implements it.
type statusSource interface {
	Chan() <-chan types.ExtrinsicStatus
	Err() <-chan error
	Unsubscribe()
}

// statusSubscription translates node status updates into notifications, resolving the events of the
// extrinsic once it is in a block.
type statusSubscription struct {
	sub    statusSource
	txHash string
	events eventsFunc
	logger *log.Logger

	notifications chan extrinsic.Notification
	errs          chan error
	done          chan struct{}
	once          sync.Once

	// Closed when run returns.
	stopped chan struct{}
}

var _ extrinsic.Subscription = (*statusSubscription)(nil)

func newStatusSubscription(sub statusSource, txHash string, events eventsFunc, logger *log.Logger) *statusSubscription {
	s := &statusSubscription{
		sub:    sub,
		txHash: txHash,
		events: events,
		logger: logger.With("tx_hash", txHash),

		notifications: make(chan extrinsic.Notification),
		errs:          make(chan error, 1),
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go s.run()
	return s
}

func (s *statusSubscription) run() {
	defer close(s.stopped)

	for {
		select {
		case <-s.done:
			return

		case err, ok := <-s.sub.Err():
			if !ok {
				return
			}
			s.errs <- err
			return

		case status, ok := <-s.sub.Chan():
			if !ok {
				close(s.notifications)
				return
			}

			notification := toNotification(status)
			if notification.IsInBlock() {
				events, err := s.events(status.AsInBlock, s.txHash)
				if err != nil {
					// Inclusion is what matters, the events are informational.
					s.logger.Warn("failed to fetch extrinsic events", "error", err.Error())
				}
				notification.Events = events
			}

			select {
			case s.notifications <- notification:
			case <-s.done:
				return
			}
		}
	}
}

func (s *statusSubscription) Notifications() <-chan extrinsic.Notification {
	return s.notifications
}

func (s *statusSubscription) Err() <-chan error {
	return s.errs
}

func (s *statusSubscription) TransactionHash() string {
	return s.txHash
}

func (s *statusSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		s.sub.Unsubscribe()
	})
}

func toNotification(status types.ExtrinsicStatus) extrinsic.Notification {
	var kind extrinsic.NotificationKind
	var blockHash string

	switch {
	case status.IsFuture:
		kind = extrinsic.KindFuture
	case status.IsReady:
		kind = extrinsic.KindReady
	case status.IsBroadcast:
		kind = extrinsic.KindBroadcast
	case status.IsInBlock:
		kind = extrinsic.KindInBlock
		blockHash = status.AsInBlock.Hex()
	case status.IsRetracted:
		kind = extrinsic.KindRetracted
	case status.IsFinalityTimeout:
		kind = extrinsic.KindFinalityTimeout
	case status.IsFinalized:
		kind = extrinsic.KindFinalized
		blockHash = status.AsFinalized.Hex()
	case status.IsUsurped:
		kind = extrinsic.KindUsurped
	case status.IsDropped:
		kind = extrinsic.KindDropped
	case status.IsInvalid:
		kind = extrinsic.KindInvalid
	}

	return extrinsic.Notification{
		Kind:      kind,
		IsError:   extrinsic.IsErrorKind(kind),
		BlockHash: blockHash,
	}
}
