package extrinsic_test

import (
	"context"
	"sync"

	"github.com/traumschule/joyutils/extrinsic"
)

type fakeSigner struct {
	address string
}

func (s fakeSigner) Address() string { return s.address }

// fakeSubscription replays scripted notifications and counts unsubscribes.
type fakeSubscription struct {
	notifications chan extrinsic.Notification
	errs          chan error
	hash          string

	lock         sync.Mutex
	unsubscribed int
}

var _ extrinsic.Subscription = (*fakeSubscription)(nil)

func newFakeSubscription(hash string, notifications ...extrinsic.Notification) *fakeSubscription {
	s := &fakeSubscription{
		notifications: make(chan extrinsic.Notification, len(notifications)+1),
		errs:          make(chan error, 1),
		hash:          hash,
	}
	for _, n := range notifications {
		s.notifications <- n
	}
	return s
}

func (s *fakeSubscription) Notifications() <-chan extrinsic.Notification { return s.notifications }
func (s *fakeSubscription) Err() <-chan error                           { return s.errs }
func (s *fakeSubscription) TransactionHash() string                     { return s.hash }

func (s *fakeSubscription) Unsubscribe() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.unsubscribed++
}

func (s *fakeSubscription) Unsubscribed() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.unsubscribed
}

type fakeSubmitter struct {
	subscription *fakeSubscription
	err          error

	// Closed once SignAndSend was entered, when set.
	entered chan struct{}
	// SignAndSend blocks until released, when set.
	release chan struct{}

	lock  sync.Mutex
	calls int
	last  extrinsic.SendOptions
}

var _ extrinsic.Submitter = (*fakeSubmitter)(nil)

func (s *fakeSubmitter) SignAndSend(ctx context.Context, tx *extrinsic.UnsignedTransaction, accountID string, opts extrinsic.SendOptions) (extrinsic.Subscription, error) {
	s.lock.Lock()
	s.calls++
	s.last = opts
	s.lock.Unlock()

	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}

	if s.err != nil {
		return nil, s.err
	}
	return s.subscription, nil
}

func (s *fakeSubmitter) Calls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.calls
}
