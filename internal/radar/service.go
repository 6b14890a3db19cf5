// Package radar is the incremental change-detection service: it accepts
// debounced household updates per session, re-evaluates taxes and benefits,
// diffs against the previous snapshot, and emits change alerts. Superseded
// in-flight work is cancelled cooperatively and its results are discarded.
package radar

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cliffscope/cliffscope/internal/benefits"
	"github.com/cliffscope/cliffscope/internal/calculation"
	"github.com/cliffscope/cliffscope/internal/domain"
)

// Response is delivered to the sink when an evaluation completes and is
// still the latest for its session.
type Response struct {
	SessionID string                      `json:"sessionId"`
	Seq       uint64                      `json:"seq"`
	Tax       *domain.TaxResult           `json:"tax"`
	Programs  []domain.ProgramEligibility `json:"programs"`
	Alerts    []Alert                     `json:"alerts"`
}

// Sink receives accepted radar responses. It is called from evaluation
// goroutines and must be safe for concurrent use.
type Sink func(Response)

// Options tune the service. Zero values fall back to the defaults below.
type Options struct {
	Debounce    time.Duration // timer restarted on every update
	Timeout     time.Duration // per-evaluation deadline
	Materiality domain.Cents  // monthly change below this emits no alert
}

const (
	defaultDebounce    = 500 * time.Millisecond
	defaultTimeout     = 2 * time.Second
	defaultMateriality = domain.Cents(500) // $5/month
)

// sessionState names the per-session state machine states.
type sessionState string

const (
	stateIdle       sessionState = "idle"
	stateDebouncing sessionState = "debouncing"
	stateEvaluating sessionState = "evaluating"
	stateSettled    sessionState = "settled"
)

// session is the only mutable state in the engine. It is owned by exactly
// one Service and updated last-write-wins under the taskSlot's sequence
// numbers.
type session struct {
	mu       sync.Mutex
	id       string
	state    sessionState
	pending  domain.HouseholdInput
	timer    *time.Timer
	task     taskSlot
	snapshot *Snapshot
}

// Service owns the per-session snapshots and debounce timers.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session

	taxEngine *calculation.Engine
	benefits  *benefits.Evaluator
	sink      Sink
	logger    *zap.Logger
	opts      Options
}

// NewService creates a radar service over a rule set. The sink receives
// every accepted evaluation; the materiality default comes from the rule
// set's cliff thresholds unless overridden in opts.
func NewService(rules *domain.RuleSet, sink Sink, logger *zap.Logger, opts Options) *Service {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Materiality <= 0 {
		opts.Materiality = domain.CentsFromDollars(rules.Cliff.MaterialityMonthly)
		if opts.Materiality <= 0 {
			opts.Materiality = defaultMateriality
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions:  make(map[string]*session),
		taxEngine: calculation.NewEngine(rules),
		benefits:  benefits.NewEvaluator(rules),
		sink:      sink,
		logger:    logger,
		opts:      opts,
	}
}

// Update registers a household change for a session and (re)starts the
// debounce window. It returns the session id, generating one when the
// caller passes an empty id. Invalid inputs are rejected synchronously
// before any timer starts.
func (s *Service) Update(sessionID string, input domain.HouseholdInput) (string, error) {
	if err := input.Validate(); err != nil {
		return sessionID, err
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	sess := s.getOrCreate(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.pending = input
	sess.state = stateDebouncing
	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.timer = time.AfterFunc(s.opts.Debounce, func() { s.fire(sess) })
	s.logger.Debug("radar update debounced",
		zap.String("session", sessionID),
		zap.Duration("window", s.opts.Debounce))
	return sessionID, nil
}

// EndSession cancels any pending or in-flight work for a session and drops
// its snapshot.
func (s *Service) EndSession(sessionID string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return
	}
	sess.mu.Lock()
	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.state = stateIdle
	sess.mu.Unlock()
	sess.task.Cancel()
	s.logger.Debug("radar session ended", zap.String("session", sessionID))
}

// Snapshot returns a copy of the session's current program baseline, if one
// exists. Exposed for callers that want the last settled state.
func (s *Service) Snapshot(sessionID string) (Snapshot, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return Snapshot{}, false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.snapshot == nil {
		return Snapshot{}, false
	}
	copied := Snapshot{
		Seq:      sess.snapshot.Seq,
		TotalTax: sess.snapshot.TotalTax,
		Programs: make(map[domain.Program]programState, len(sess.snapshot.Programs)),
	}
	for k, v := range sess.snapshot.Programs {
		copied.Programs[k] = v
	}
	return copied, true
}

func (s *Service) getOrCreate(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{id: sessionID, state: stateIdle}
		s.sessions[sessionID] = sess
	}
	return sess
}

// fire runs when the debounce timer elapses with no newer input: it issues
// the next sequence number, cancels any still-in-flight evaluation, and
// starts a new one against the latest input.
func (s *Service) fire(sess *session) {
	sess.mu.Lock()
	input := sess.pending
	sess.state = stateEvaluating
	sess.mu.Unlock()

	sess.task.Launch(s.opts.Timeout, func(ctx context.Context, seq uint64) {
		s.evaluate(ctx, sess, seq, &input)
	})
}

// evaluate runs the tax and benefit modules and, if this sequence number is
// still the latest for the session, replaces the snapshot and emits alerts.
// Stale completions are discarded silently: no snapshot mutation, no alert
// emission.
func (s *Service) evaluate(ctx context.Context, sess *session, seq uint64, input *domain.HouseholdInput) {
	tax, err := s.taxEngine.EvaluateTax(ctx, input)
	if err != nil {
		s.finishWithError(sess, seq, err)
		return
	}
	programs, err := s.benefits.Evaluate(ctx, input)
	if err != nil {
		s.finishWithError(sess, seq, err)
		return
	}

	sess.mu.Lock()
	if !sess.task.Latest(seq) {
		sess.mu.Unlock()
		s.logger.Debug("stale radar result discarded",
			zap.String("session", sess.id), zap.Uint64("seq", seq))
		return
	}
	alerts := diffAlerts(sess.snapshot, programs, s.opts.Materiality)
	sess.snapshot = newSnapshot(seq, tax, programs)
	sess.state = stateSettled
	sess.mu.Unlock()

	if s.sink != nil {
		s.sink(Response{
			SessionID: sess.id,
			Seq:       seq,
			Tax:       tax,
			Programs:  programs,
			Alerts:    alerts,
		})
	}
}

// finishWithError logs a failed evaluation. The snapshot is left untouched;
// a timeout or cancellation never mutates session state beyond marking it
// settled when the failure is current.
func (s *Service) finishWithError(sess *session, seq uint64, err error) {
	if !sess.task.Latest(seq) {
		return
	}
	sess.mu.Lock()
	sess.state = stateSettled
	sess.mu.Unlock()
	if domain.IsCode(err, domain.ErrCodeComputationTimeout) {
		s.logger.Warn("radar evaluation timed out",
			zap.String("session", sess.id), zap.Uint64("seq", seq))
		return
	}
	s.logger.Error("radar evaluation failed",
		zap.String("session", sess.id), zap.Uint64("seq", seq), zap.Error(err))
}
