package extrinsic

import (
	"context"
	"fmt"
	"strings"

	"github.com/traumschule/joyutils/arrays"
)

// EventExtrinsicFailed is emitted by the system pallet when an included extrinsic failed to dispatch.
const EventExtrinsicFailed = "system.ExtrinsicFailed"

// Arg is one positional argument of a chain call. Value is handed to the chain client as is, Display is
// what users are shown when confirming.
type Arg struct {
	Name    string
	Value   any
	Display string
}

// UnsignedTransaction describes a chain call before it is signed. It is built by application code and
// consumed once by a Coordinator.
type UnsignedTransaction struct {
	// Module is the pallet in lower camel case, ex. "forumWorkingGroup".
	Module string
	// Method is the call in lower camel case, ex. "updateRewardAmount".
	Method string
	Args   []Arg
}

// Label renders the call as "module.method".
func (tx *UnsignedTransaction) Label() string {
	return fmt.Sprintf("%s.%s", tx.Module, tx.Method)
}

// Status is the progress of a single submission.
type Status int

const (
	StatusUnsigned Status = iota
	StatusSigned
	StatusCompleted
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUnsigned:
		return "unsigned"
	case StatusSigned:
		return "signed"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// IsTerminal reports whether no further transitions can happen.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Outcome is the result of a submission whose extrinsic was included in a block.
type Outcome struct {
	// Events emitted by the extrinsic as "module.Method", in emission order.
	Events          []string
	BlockHash       string
	TransactionHash string
}

// Failed reports whether the extrinsic was included but its dispatch failed.
func (o *Outcome) Failed() bool {
	return arrays.Any(o.Events, func(event string) bool { return event == EventExtrinsicFailed })
}

// NotificationKind mirrors the transaction pool statuses reported by author_submitAndWatchExtrinsic.
type NotificationKind string

const (
	KindFuture          NotificationKind = "future"
	KindReady           NotificationKind = "ready"
	KindBroadcast       NotificationKind = "broadcast"
	KindInBlock         NotificationKind = "inBlock"
	KindRetracted       NotificationKind = "retracted"
	KindFinalityTimeout NotificationKind = "finalityTimeout"
	KindFinalized       NotificationKind = "finalized"
	KindUsurped         NotificationKind = "usurped"
	KindDropped         NotificationKind = "dropped"
	KindInvalid         NotificationKind = "invalid"
)

// IsErrorKind reports whether the pool gave up on the extrinsic.
func IsErrorKind(kind NotificationKind) bool {
	switch kind {
	case KindDropped, KindFinalityTimeout, KindInvalid, KindUsurped:
		return true
	default:
		return false
	}
}

// Notification is one status update for a watched extrinsic.
type Notification struct {
	Kind    NotificationKind
	IsError bool

	// Only set for in-block notifications.
	BlockHash string
	Events    []string
}

func (n Notification) IsInBlock() bool {
	return n.Kind == KindInBlock
}

func (n Notification) String() string {
	if n.BlockHash == "" {
		return string(n.Kind)
	}
	return fmt.Sprintf("%s(%s) [%s]", n.Kind, n.BlockHash, strings.Join(n.Events, ", "))
}

// Signer is an opaque signing capability handed out by a wallet. Submitters know how to use the
// concrete signers they support.
type Signer interface {
	Address() string
}

type SendOptions struct {
	Signer Signer
}

// Submitter signs a transaction and broadcasts it, returning a subscription to its status updates.
type Submitter interface {
	SignAndSend(ctx context.Context, tx *UnsignedTransaction, accountID string, opts SendOptions) (Subscription, error)
}

// Subscription is a stream of status updates for one broadcast extrinsic.
type Subscription interface {
	// Notifications delivers updates in emission order.
	Notifications() <-chan Notification
	// Err delivers a transport error, after which no more notifications arrive.
	Err() <-chan error
	TransactionHash() string
	// Unsubscribe releases the subscription. It is safe to call more than once.
	Unsubscribe()
}

// ProgressFunc observes the Unsigned to Signed transition.
type ProgressFunc func(Status)
