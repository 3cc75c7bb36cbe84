package dialog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/traumschule/joyutils/chains"
	"github.com/traumschule/joyutils/extrinsic"
	"github.com/traumschule/joyutils/log"
)

var ErrDialogBusy = errors.New("dialog already holds a transaction")

// Submitter runs a submission to a terminal outcome. *extrinsic.Coordinator implements it.
type Submitter interface {
	Submit(ctx context.Context, tx *extrinsic.UnsignedTransaction, accountID string, signer extrinsic.Signer, onProgress extrinsic.ProgressFunc) (*extrinsic.Outcome, error)
}

// SignerProvider hands out the connected wallet's signer. *wallet.Store implements it.
type SignerProvider interface {
	Signer() (extrinsic.Signer, error)
}

// Scheduler runs f a moment later.
type Scheduler func(f func())

func goroutineScheduler(f func()) {
	go f()
}

type Option func(*Dialog)

// WithScheduler replaces how the post-close reset is deferred.
func WithScheduler(schedule Scheduler) Option {
	return func(d *Dialog) {
		d.schedule = schedule
	}
}

// WithExplorer links outcomes to a block explorer (ex. "https://joystream.subscan.io").
func WithExplorer(explorerUrl string) Option {
	return func(d *Dialog) {
		d.explorerUrl = explorerUrl
	}
}

// Dialog asks the user to confirm a staged transaction, submits it and holds the outcome until it is
// dismissed.
//
// Closing clears the staged transaction right away, but the status, account and outcome are reset a tick
// later, so a closing view never flashes empty content. Each Stage and Close starts a new generation, and
// work belonging to an older generation (a late reset or a submission abandoned by closing) never
// touches the current one.
type Dialog struct {
	submitter   Submitter
	signers     SignerProvider
	explorerUrl string
	schedule    Scheduler
	logger      *log.Logger

	lock       sync.Mutex
	state      State
	tx         *extrinsic.UnsignedTransaction
	accountID  string
	outcome    *extrinsic.Outcome
	err        error
	generation uint64
	cancel     context.CancelFunc
}

func New(submitter Submitter, signers SignerProvider, logger *log.Logger, opts ...Option) *Dialog {
	d := &Dialog{
		submitter: submitter,
		signers:   signers,
		schedule:  goroutineScheduler,
		logger:    logger.ApplyPrefix("[dialog]"),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Stage shows tx for accountID and waits for confirmation.
func (d *Dialog) Stage(tx *extrinsic.UnsignedTransaction, accountID string) error {
	if tx == nil || accountID == "" {
		return fmt.Errorf("%w: nothing to stage", extrinsic.ErrMissingPrerequisite)
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	if d.tx != nil && d.state != StateAwaitingConfirmation {
		return fmt.Errorf("%w: %s", ErrDialogBusy, d.state)
	}

	d.generation++
	d.state = StateAwaitingConfirmation
	d.tx = tx
	d.accountID = accountID
	d.outcome = nil
	d.err = nil
	d.logger.Debug("staged", "call", tx.Label(), "account", accountID)
	return nil
}

// Confirm signs and submits the staged transaction, blocking until it is included or fails. A missing
// signer fails with extrinsic.ErrMissingPrerequisite before anything changes.
func (d *Dialog) Confirm(ctx context.Context) error {
	d.lock.Lock()
	if d.state.InFlight() {
		d.lock.Unlock()
		return extrinsic.ErrSubmissionInFlight
	}
	if !d.canConfirm() {
		d.lock.Unlock()
		return fmt.Errorf("%w: no staged transaction", extrinsic.ErrMissingPrerequisite)
	}

	signer, err := d.signers.Signer()
	if err != nil {
		d.lock.Unlock()
		if !errors.Is(err, extrinsic.ErrMissingPrerequisite) {
			err = fmt.Errorf("%w: %w", extrinsic.ErrMissingPrerequisite, err)
		}
		return err
	}

	generation := d.generation
	tx, accountID := d.tx, d.accountID
	submitCtx, cancel := context.WithCancel(ctx)
	d.state = StateAwaitingSignature
	d.outcome = nil
	d.err = nil
	d.cancel = cancel
	d.lock.Unlock()
	defer cancel()

	outcome, err := d.submitter.Submit(submitCtx, tx, accountID, signer, func(status extrinsic.Status) {
		if status != extrinsic.StatusSigned {
			return
		}

		d.lock.Lock()
		defer d.lock.Unlock()
		if d.generation == generation && d.state == StateAwaitingSignature {
			d.state = StateAwaitingInclusion
		}
	})

	d.lock.Lock()
	defer d.lock.Unlock()

	if d.generation != generation {
		// Closed while in flight, the result belongs to nobody.
		d.logger.Debug("dropping result of a closed dialog", "call", tx.Label())
		return err
	}
	d.cancel = nil

	switch {
	case err != nil:
		d.state = StateFailed
		d.err = err
	case outcome.Failed():
		d.state = StateFailed
		d.outcome = outcome
		d.err = fmt.Errorf("%w: dispatch failed in block %s", extrinsic.ErrExtrinsicFailed, outcome.BlockHash)
	default:
		d.state = StateDone
		d.outcome = outcome
	}
	return d.err
}

// Close dismisses the dialog. It has no effect while waiting for a signature, since the wallet may still
// complete that request. Closing while waiting for inclusion abandons the submission.
func (d *Dialog) Close() bool {
	d.lock.Lock()
	if !d.canClose() {
		d.lock.Unlock()
		return false
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	d.tx = nil
	d.generation++
	generation := d.generation
	d.lock.Unlock()

	d.schedule(func() {
		d.lock.Lock()
		defer d.lock.Unlock()

		if d.generation != generation {
			return
		}
		d.state = StateIdle
		d.accountID = ""
		d.outcome = nil
		d.err = nil
	})
	return true
}

func (d *Dialog) State() State {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.state
}

// Visible reports whether a transaction is staged for an account.
func (d *Dialog) Visible() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.visible()
}

func (d *Dialog) CanConfirm() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.canConfirm()
}

func (d *Dialog) CanClose() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.canClose()
}

func (d *Dialog) visible() bool {
	return d.tx != nil && d.accountID != ""
}

// A failed submission can be retried, a successful one only dismissed.
func (d *Dialog) canConfirm() bool {
	return d.visible() && (d.state == StateAwaitingConfirmation || d.state == StateFailed)
}

func (d *Dialog) canClose() bool {
	return d.state != StateAwaitingSignature
}

// View is a snapshot of everything needed to render the dialog.
type View struct {
	Visible    bool
	State      State
	Status     string
	CanConfirm bool
	CanClose   bool

	Call      string
	Args      []extrinsic.Arg
	AccountID string

	Events          []string
	BlockHash       string
	TransactionHash string
	ExplorerLink    string
	Error           string
}

func (d *Dialog) View() View {
	d.lock.Lock()
	defer d.lock.Unlock()

	view := View{
		Visible:    d.visible(),
		State:      d.state,
		Status:     d.state.statusText(),
		CanConfirm: d.canConfirm(),
		CanClose:   d.canClose(),
		AccountID:  d.accountID,
	}

	if d.tx != nil {
		view.Call = d.tx.Label()
		view.Args = append([]extrinsic.Arg(nil), d.tx.Args...)
	}

	if d.outcome != nil {
		view.Events = append([]string(nil), d.outcome.Events...)
		view.BlockHash = d.outcome.BlockHash
		view.TransactionHash = d.outcome.TransactionHash
		if d.explorerUrl != "" && d.outcome.TransactionHash != "" {
			view.ExplorerLink = chains.ExtrinsicURL(d.explorerUrl, d.outcome.TransactionHash)
		}
	}

	if d.err != nil {
		view.Error = d.err.Error()
	}
	return view
}
