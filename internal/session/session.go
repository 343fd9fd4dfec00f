// Package session implements the customer-side cashback payment flow: a
// screen-scoped state object that validates amount input, submits the
// transaction and follows its status through the realtime change feed
// until the merchant approves or rejects it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/money"
	"localizei-backend/internal/realtime"
)

// Step is the UI-facing state of the payment flow.
type Step string

const (
	StepInput       Step = "input"
	StepSendingPush Step = "sending_push"
	StepWaiting     Step = "waiting"
	StepApproved    Step = "approved"
	StepRejected    Step = "rejected"
)

var (
	ErrNotEditable   = errors.New("a transaction is already in progress")
	ErrInvalidAmount = errors.New("purchase total must be greater than zero")
	ErrNotRejected   = errors.New("retry is only available after a rejection")
	ErrClosed        = errors.New("session is closed")
)

// Ledger is the session's view of the transaction backend: create a row,
// read store info and balance, watch one row's status feed.
type Ledger interface {
	CreateTransaction(ctx context.Context, customerID, storeID string, totalCents, cashbackUsedCents int64) (*domain.CashbackTransaction, error)
	StoreInfo(ctx context.Context, storeID string) (*domain.Store, error)
	Balance(ctx context.Context, customerID string) (int64, error)
	Watch(ctx context.Context, transactionID string) (realtime.Subscription, error)
}

// Result carries the final amounts delivered to the completion callback.
type Result struct {
	AmountPaidCents     int64
	CashbackEarnedCents int64
}

// Options tune the session. Callbacks are invoked without the session lock
// held, but sequentially per session.
type Options struct {
	// PushDelay is the simulated "merchant device notified" delay between
	// sending_push and waiting.
	PushDelay time.Duration
	// CompletionDelay is how long the approved step is shown before the
	// completion callback fires.
	CompletionDelay time.Duration
	// WaitTimeout bounds how long the session waits for a terminal status
	// after submitting. Zero waits indefinitely. On timeout the session
	// tears down its subscription and returns to the input step; the
	// ledger row stays pending and may still be settled later.
	WaitTimeout time.Duration
	// MaxUsePercent caps the balance deduction; defaults to 30.
	MaxUsePercent int64

	OnStep     func(Step)
	OnComplete func(Result)
	OnTimeout  func()
}

const (
	defaultPushDelay       = 1500 * time.Millisecond
	defaultCompletionDelay = 2 * time.Second
	defaultMaxUsePercent   = 30
)

// Session owns all mutable state of one payment screen. It is created when
// the screen mounts, mutated only by user input and ledger-driven status
// events, and discarded via Close when the screen unmounts.
type Session struct {
	ledger     Ledger
	customerID string
	storeID    string
	opts       Options

	mu           sync.Mutex
	store        *domain.Store
	balanceCents int64

	totalInput    string
	cashbackInput string
	totalCents    int64
	cashbackCents int64

	step          Step
	transactionID string
	result        Result
	sub           realtime.Subscription
	pushTimer     *time.Timer
	completeTimer *time.Timer
	timeoutTimer  *time.Timer
	completed     bool
	closed        bool
}

// New fetches the store info and the customer's balance once and returns a
// session in the input step.
func New(ctx context.Context, ledger Ledger, customerID, storeID string, opts Options) (*Session, error) {
	store, err := ledger.StoreInfo(ctx, storeID)
	if err != nil {
		return nil, err
	}
	balance, err := ledger.Balance(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if opts.PushDelay == 0 {
		opts.PushDelay = defaultPushDelay
	}
	if opts.CompletionDelay == 0 {
		opts.CompletionDelay = defaultCompletionDelay
	}
	if opts.MaxUsePercent == 0 {
		opts.MaxUsePercent = defaultMaxUsePercent
	}

	return &Session{
		ledger:       ledger,
		customerID:   customerID,
		storeID:      storeID,
		opts:         opts,
		store:        store,
		balanceCents: balance,
		step:         StepInput,
	}, nil
}

// SetTotalInput parses a new purchase total. Malformed input is ignored and
// the previous valid value retained. Lowering the total below the entered
// cashback clamps the cashback down so the two never go inconsistent.
func (s *Session) SetTotalInput(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepInput {
		return
	}
	cents, ok := money.ParseAmount(raw)
	if !ok {
		return
	}
	s.totalInput = raw
	s.totalCents = cents
	if limit := s.maxApplicableLocked(); s.cashbackCents > limit {
		s.cashbackCents = limit
		s.cashbackInput = money.FormatCents(limit)
	}
}

// SetCashbackInput parses a new balance deduction, clamping it to the
// applicable limit. Malformed input is ignored.
func (s *Session) SetCashbackInput(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepInput {
		return
	}
	cents, ok := money.ParseAmount(raw)
	if !ok {
		return
	}
	if limit := s.maxApplicableLocked(); cents > limit {
		cents = limit
		raw = money.FormatCents(limit)
	}
	s.cashbackInput = raw
	s.cashbackCents = cents
}

// UseMaxCashback sets the deduction to exactly the applicable limit.
func (s *Session) UseMaxCashback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepInput {
		return
	}
	limit := s.maxApplicableLocked()
	s.cashbackCents = limit
	s.cashbackInput = money.FormatCents(limit)
}

func (s *Session) maxApplicableLocked() int64 {
	return money.MaxApplicable(s.balanceCents, s.totalCents, s.opts.MaxUsePercent)
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) TransactionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactionID
}

func (s *Session) BalanceCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceCents
}

func (s *Session) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCents
}

func (s *Session) CashbackUsedCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cashbackCents
}

func (s *Session) PayNowCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return money.PayNow(s.totalCents, s.cashbackCents)
}

func (s *Session) CashbackToEarnCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return money.CashbackToEarn(money.PayNow(s.totalCents, s.cashbackCents), s.store.CashbackPercent)
}

func (s *Session) MaxApplicableCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxApplicableLocked()
}

// Submit validates the entered amounts and creates the pending transaction.
// On any error local state is unchanged and the user may resubmit. On
// success the session opens exactly one subscription for the new row and
// moves to sending_push.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.step != StepInput {
		s.mu.Unlock()
		return ErrNotEditable
	}
	if s.totalCents <= 0 {
		s.mu.Unlock()
		return ErrInvalidAmount
	}
	total, used := s.totalCents, s.cashbackCents
	// Reserve the transition before releasing the lock: an overlapping
	// Submit sees sending_push and fails with ErrNotEditable instead of
	// creating a second row.
	s.step = StepSendingPush
	s.mu.Unlock()

	// Suspension point: the lock is not held across the round-trip, and a
	// failed insert leaves nothing behind on either side.
	tx, err := s.ledger.CreateTransaction(ctx, s.customerID, s.storeID, total, used)
	if err != nil {
		s.abortSubmit()
		return err
	}
	sub, err := s.ledger.Watch(ctx, tx.ID)
	if err != nil {
		// The inserted row stays pending with nobody watching it; the
		// stale-pending expiry job settles it after the TTL, and a
		// resubmit intentionally starts a fresh transaction.
		s.abortSubmit()
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Close()
		return ErrClosed
	}
	s.transactionID = tx.ID
	s.result = Result{AmountPaidCents: tx.AmountToPayNowCents, CashbackEarnedCents: tx.CashbackToEarnCents}
	s.sub = sub
	s.pushTimer = time.AfterFunc(s.opts.PushDelay, s.pushDelayElapsed)
	if s.opts.WaitTimeout > 0 {
		s.timeoutTimer = time.AfterFunc(s.opts.WaitTimeout, s.waitTimedOut)
	}
	s.mu.Unlock()

	s.notifyStep(StepSendingPush)
	go s.consume(sub)
	return nil
}

// abortSubmit rolls the reserved sending_push step back to input after a
// failed ledger round-trip, restoring the resubmit-after-error contract.
func (s *Session) abortSubmit() {
	s.mu.Lock()
	if !s.closed && s.step == StepSendingPush {
		s.step = StepInput
	}
	s.mu.Unlock()
}

// consume forwards subscription events into the state machine until the
// subscription channel is closed.
func (s *Session) consume(sub realtime.Subscription) {
	for event := range sub.Updates() {
		s.handleStatus(event.Status)
	}
}

func (s *Session) pushDelayElapsed() {
	s.mu.Lock()
	// A ledger update may arrive before this timer; the subscription is
	// authoritative, so the timer only advances an untouched sending_push.
	if s.closed || s.step != StepSendingPush {
		s.mu.Unlock()
		return
	}
	s.step = StepWaiting
	s.mu.Unlock()
	s.notifyStep(StepWaiting)
}

// handleStatus is the watcher's transition function. It is total: terminal
// statuses move the machine exactly once, anything else is a no-op.
func (s *Session) handleStatus(status domain.TransactionStatus) {
	s.mu.Lock()
	if s.closed || (s.step != StepSendingPush && s.step != StepWaiting) {
		// Duplicate or late delivery after a terminal transition.
		s.mu.Unlock()
		return
	}

	switch status {
	case domain.TransactionStatusApproved:
		s.step = StepApproved
		s.stopTimersLocked()
		s.completeTimer = time.AfterFunc(s.opts.CompletionDelay, s.completionDelayElapsed)
		s.mu.Unlock()
		s.notifyStep(StepApproved)

	case domain.TransactionStatusRejected:
		s.step = StepRejected
		s.stopTimersLocked()
		s.closeSubscriptionLocked()
		s.mu.Unlock()
		s.notifyStep(StepRejected)

	default:
		// Non-terminal statuses carry no defined transition; ignore them
		// rather than guessing.
		s.mu.Unlock()
	}
}

func (s *Session) completionDelayElapsed() {
	s.mu.Lock()
	if s.closed || s.completed || s.step != StepApproved {
		s.mu.Unlock()
		return
	}
	s.completed = true
	s.closeSubscriptionLocked()
	result := s.result
	cb := s.opts.OnComplete
	s.mu.Unlock()

	if cb != nil {
		cb(result)
	}
}

func (s *Session) waitTimedOut() {
	s.mu.Lock()
	if s.closed || (s.step != StepSendingPush && s.step != StepWaiting) {
		s.mu.Unlock()
		return
	}
	// The pending row is left untouched: the merchant may still settle it,
	// we just stop watching, as if the customer had left the screen.
	s.teardownLocked()
	s.transactionID = ""
	s.step = StepInput
	cb := s.opts.OnTimeout
	s.mu.Unlock()

	s.notifyStep(StepInput)
	if cb != nil {
		cb()
	}
}

// Retry abandons a rejected attempt and returns to input for a fresh
// transaction. The rejected row stays rejected; nothing is reused.
func (s *Session) Retry() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.step != StepRejected {
		s.mu.Unlock()
		return ErrNotRejected
	}
	s.teardownLocked()
	s.transactionID = ""
	s.step = StepInput
	s.mu.Unlock()

	s.notifyStep(StepInput)
	return nil
}

// Close releases the subscription and timers. After Close no callbacks
// fire, even if the ledger later updates the row. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.teardownLocked()
	s.mu.Unlock()
}

func (s *Session) teardownLocked() {
	s.stopTimersLocked()
	if s.completeTimer != nil {
		s.completeTimer.Stop()
		s.completeTimer = nil
	}
	s.closeSubscriptionLocked()
}

func (s *Session) stopTimersLocked() {
	if s.pushTimer != nil {
		s.pushTimer.Stop()
		s.pushTimer = nil
	}
	if s.timeoutTimer != nil {
		s.timeoutTimer.Stop()
		s.timeoutTimer = nil
	}
}

func (s *Session) closeSubscriptionLocked() {
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
}

func (s *Session) notifyStep(step Step) {
	if s.opts.OnStep != nil {
		s.opts.OnStep(step)
	}
}
