package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/abhisek/ziggy/internal/bank"
	"github.com/abhisek/ziggy/internal/gems"
	"github.com/abhisek/ziggy/internal/mastery"
	"github.com/abhisek/ziggy/internal/problemgen"
	"github.com/abhisek/ziggy/internal/store"
)

var (
	// ErrNoSession is returned when there is no mission to resume, or the
	// persisted mission no longer matches the question bank.
	ErrNoSession = errors.New("no session in progress")

	// ErrNotAcceptingAnswers is returned by SubmitAnswer outside the
	// answering phases.
	ErrNotAcceptingAnswers = errors.New("not accepting answers")

	// ErrCannotAdvance is returned by Advance before the current question
	// has been resolved.
	ErrCannotAdvance = errors.New("question not resolved")
)

// Config holds the engine's timing parameters. Zero values take defaults.
type Config struct {
	TimeLimit     time.Duration
	WarningBefore time.Duration
	TickInterval  time.Duration
}

func (c Config) withDefaults() Config {
	if c.TimeLimit <= 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	if c.WarningBefore <= 0 {
		c.WarningBefore = DefaultWarningBefore
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	return c
}

// Options configures an Engine. Bank and Records are required.
type Options struct {
	Bank    *bank.Bank
	Records store.RecordRepo

	// Events receives the event log. Optional.
	Events store.EventRepo

	// Planner defaults to a BankPlanner over Bank.
	Planner Planner
	// Clock defaults to RealClock.
	Clock  Clock
	Logger logrus.FieldLogger

	// Listener is notified of every state change. Optional.
	Listener Listener

	Config Config
}

// StartRequest describes a fresh mission.
type StartRequest struct {
	Domain problemgen.Domain

	// Size defaults to the learner's preferred mission size.
	Size int

	// Level defaults to the learner's current level in Domain.
	Level int
}

// Engine runs one mission at a time. Every operation and timer callback is
// serialized, and an operation returns only after its state has been
// persisted. A failed write leaves the engine at the last persisted state.
type Engine struct {
	mu sync.Mutex

	bank     *bank.Bank
	records  store.RecordRepo
	events   store.EventRepo
	planner  Planner
	clock    Clock
	log      logrus.FieldLogger
	listener Listener
	cfg      Config

	rec       *store.SessionRecord
	questions []*problemgen.Question
	phase     Phase

	revealed    string
	lastChoice  string
	lastCorrect bool
	result      *Result

	mastery *mastery.Service
	gems    *gems.Service

	timer       *Timer
	tick        countdown
	advance     countdown
	autoAdvance int
	autoLeft    int

	shownAt time.Time
	seq     uint64
	pending []Event
}

// New creates an idle engine.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	planner := opts.Planner
	if planner == nil {
		planner = NewPlanner(opts.Bank, log)
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock()
	}

	return &Engine{
		bank:     opts.Bank,
		records:  opts.Records,
		events:   opts.Events,
		planner:  planner,
		clock:    clock,
		log:      log.WithField("component", "session"),
		listener: opts.Listener,
		cfg:      opts.Config.withDefaults(),
		tick:     countdown{clock: clock},
		advance:  countdown{clock: clock},
		gems:     gems.NewService(opts.Events, log),
	}
}

// View returns a snapshot of the current state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Start plans and persists a fresh mission, replacing any mission in
// progress.
func (e *Engine) Start(ctx context.Context, req StartRequest) (View, error) {
	e.mu.Lock()
	defer e.unlock()

	settings, err := e.records.GetSettings(ctx)
	if err != nil {
		return e.viewLocked(), fmt.Errorf("load settings: %w", err)
	}
	progress, err := e.records.GetProgress(ctx)
	if err != nil {
		return e.viewLocked(), fmt.Errorf("load progress: %w", err)
	}
	masteryData, err := e.records.GetMastery(ctx)
	if err != nil {
		return e.viewLocked(), fmt.Errorf("load mastery: %w", err)
	}

	size := req.Size
	if size <= 0 {
		size = settings.DefaultMissionSize
	}
	level := req.Level
	if level <= 0 {
		level = progress.Levels.Get(req.Domain)
	}

	now := e.clock.Now()
	plan, err := e.planner.BuildPlan(req.Domain, level, size, now)
	if err != nil {
		return e.viewLocked(), fmt.Errorf("plan mission: %w", err)
	}
	questions, err := e.bank.Resolve(plan.QuestionIDs)
	if err != nil {
		return e.viewLocked(), fmt.Errorf("plan mission: %w", err)
	}

	rec := store.SessionRecord{
		SessionID:   uuid.NewString(),
		Module:      req.Domain,
		MissionSize: size,
		Level:       level,
		QuestionIDs: plan.QuestionIDs,
		BankVersion: e.bank.Version(),
		StartedAt:   now,
	}
	if err := e.records.SetSession(ctx, rec); err != nil {
		return e.viewLocked(), fmt.Errorf("save session: %w", err)
	}

	e.stopCountdowns()
	e.rec = &rec
	e.questions = questions
	e.mastery = mastery.NewService(&masteryData)
	e.gems.ResetSession()
	e.autoAdvance = autoAdvanceSeconds(settings)
	e.result = nil
	e.startTimer(now, 0)
	e.present(now)

	e.log.WithFields(logrus.Fields{
		"session_id": rec.SessionID,
		"domain":     rec.Module,
		"level":      level,
		"size":       len(questions),
		"fell_back":  plan.FellBack,
	}).Info("mission started")
	e.appendSessionEvent(ctx, "start")
	e.emit(Event{Kind: EventQuestion})

	return e.viewLocked(), nil
}

// Resume restores the persisted mission exactly where it was left. It
// returns ErrNoSession if nothing is persisted; a mission that no longer
// resolves against the current bank is discarded with the same error.
func (e *Engine) Resume(ctx context.Context) (View, error) {
	e.mu.Lock()
	defer e.unlock()

	rec, err := e.records.GetSession(ctx)
	if err != nil {
		return e.viewLocked(), fmt.Errorf("load session: %w", err)
	}
	if rec == nil {
		return e.viewLocked(), ErrNoSession
	}

	questions, reason := e.resolve(rec)
	if reason != "" {
		e.log.WithFields(logrus.Fields{
			"session_id":   rec.SessionID,
			"bank_version": rec.BankVersion,
		}).Warnf("discarding persisted session: %s", reason)
		if err := e.records.ClearSession(ctx); err != nil {
			return e.viewLocked(), fmt.Errorf("clear session: %w", err)
		}
		return e.viewLocked(), fmt.Errorf("%w: %s", ErrNoSession, reason)
	}

	settings, err := e.records.GetSettings(ctx)
	if err != nil {
		return e.viewLocked(), fmt.Errorf("load settings: %w", err)
	}
	masteryData, err := e.records.GetMastery(ctx)
	if err != nil {
		return e.viewLocked(), fmt.Errorf("load mastery: %w", err)
	}

	now := e.clock.Now()
	e.stopCountdowns()
	e.rec = rec
	e.questions = questions
	e.mastery = mastery.NewService(&masteryData)
	e.gems.ResetSession()
	e.autoAdvance = autoAdvanceSeconds(settings)
	e.result = nil

	elapsed := time.Duration(rec.ElapsedMs) * time.Millisecond
	if elapsed >= e.cfg.TimeLimit {
		// The break has been taken; a fresh block of time starts.
		elapsed = 0
	}
	e.startTimer(now, elapsed)

	q := e.currentQuestion()
	e.revealed = ""
	e.lastChoice = ""
	e.lastCorrect = false
	e.shownAt = now
	switch rec.Outcome {
	case store.OutcomeRetry:
		e.phase = PhaseAwaitingRetry
	case store.OutcomeCorrect:
		e.phase = PhaseCorrect
		e.lastCorrect = true
		e.armAutoAdvance()
	case store.OutcomeIncorrect:
		e.phase = PhaseIncorrectFinal
		e.revealed = q.CorrectAnswer
	default:
		e.phase = PhaseAwaitingFirstAnswer
	}

	e.log.WithFields(logrus.Fields{
		"session_id": rec.SessionID,
		"index":      rec.QIndex,
		"phase":      e.phase,
	}).Info("mission resumed")
	e.appendSessionEvent(ctx, "resume")
	_, tr := e.timer.Update(now)
	e.emit(Event{Kind: EventQuestion})
	if tr == TransitionWarning {
		e.emit(Event{Kind: EventTimeWarning})
	}

	return e.viewLocked(), nil
}

// resolve checks a persisted session against the bank. It returns the
// questions, or a non-empty reason the session cannot be used.
func (e *Engine) resolve(rec *store.SessionRecord) ([]*problemgen.Question, string) {
	if !semver.IsValid(rec.BankVersion) || semver.Major(rec.BankVersion) != semver.Major(e.bank.Version()) {
		return nil, fmt.Sprintf("bank version %q does not match %s", rec.BankVersion, e.bank.Version())
	}
	questions, err := e.bank.Resolve(rec.QuestionIDs)
	if err != nil {
		return nil, err.Error()
	}
	if rec.QIndex < 0 || rec.QIndex >= len(questions) {
		return nil, fmt.Sprintf("question index %d out of range", rec.QIndex)
	}
	return questions, ""
}

// SubmitAnswer checks choice, the text of an option, against the current
// question.
func (e *Engine) SubmitAnswer(ctx context.Context, choice string) (View, error) {
	e.mu.Lock()
	defer e.unlock()

	if !e.phase.AcceptsAnswers() {
		return e.viewLocked(), fmt.Errorf("%s: %w", e.phase, ErrNotAcceptingAnswers)
	}

	now := e.clock.Now()
	q := e.currentQuestion()
	correct := problemgen.CheckAnswer(choice, q)
	firstAttempt := e.phase == PhaseAwaitingFirstAnswer

	next := e.nextRecord(now)
	var award *gems.GemAward
	switch {
	case correct:
		next.CorrectCount++
		next.GemCount += gems.CorrectReward
		next.Outcome = store.OutcomeCorrect
		a := gems.NewAward(gems.GemCorrect, next.SessionID, q.ID, now)
		award = &a
	case firstAttempt:
		next.Outcome = store.OutcomeRetry
		next.HintShown = true
	default:
		next.GemCount += gems.EffortReward
		next.Outcome = store.OutcomeIncorrect
		a := gems.NewAward(gems.GemEffort, next.SessionID, q.ID, now)
		award = &a
	}

	var transition *mastery.StateTransition
	if firstAttempt {
		updated := e.mastery.Clone()
		transition = updated.RecordAnswer(q.Subskill, correct, q.ID, now)
		if err := e.records.SetSessionAndMastery(ctx, next, updated.Snapshot()); err != nil {
			return e.viewLocked(), fmt.Errorf("save answer: %w", err)
		}
		e.mastery = updated
	} else if err := e.records.SetSession(ctx, next); err != nil {
		return e.viewLocked(), fmt.Errorf("save answer: %w", err)
	}

	e.rec = &next
	e.lastChoice = choice
	e.lastCorrect = correct
	switch {
	case correct:
		e.phase = PhaseCorrect
		e.armAutoAdvance()
	case firstAttempt:
		e.phase = PhaseAwaitingRetry
	default:
		e.phase = PhaseIncorrectFinal
		e.revealed = q.CorrectAnswer
	}

	attempt := 2
	if firstAttempt {
		attempt = 1
	}
	e.appendAnswerEvent(ctx, q, choice, correct, attempt, now)
	if award != nil {
		e.gems.Record(ctx, *award)
	}

	ev := Event{Kind: EventAnswered}
	if transition != nil {
		ev.Mastery = &MasteryChange{
			Subskill: transition.Subskill,
			From:     string(transition.From),
			To:       string(transition.To),
		}
		e.appendMasteryEvent(ctx, transition)
	}
	e.emit(ev)

	return e.viewLocked(), nil
}

// RevealHint shows the current question's hint without using an attempt.
func (e *Engine) RevealHint(ctx context.Context) (View, error) {
	e.mu.Lock()
	defer e.unlock()

	if !e.phase.AcceptsAnswers() {
		return e.viewLocked(), fmt.Errorf("%s: %w", e.phase, ErrNotAcceptingAnswers)
	}
	if e.rec.HintShown {
		return e.viewLocked(), nil
	}

	next := e.nextRecord(e.clock.Now())
	next.HintShown = true
	if err := e.records.SetSession(ctx, next); err != nil {
		return e.viewLocked(), fmt.Errorf("save hint: %w", err)
	}
	e.rec = &next
	e.emit(Event{Kind: EventHint})

	return e.viewLocked(), nil
}

// Advance moves past a resolved question. After the last question the
// mission completes: the level and gem total are folded into progress and
// the session is cleared.
func (e *Engine) Advance(ctx context.Context) (View, error) {
	e.mu.Lock()
	defer e.unlock()

	if err := e.advanceLocked(ctx); err != nil {
		return e.viewLocked(), err
	}
	return e.viewLocked(), nil
}

func (e *Engine) advanceLocked(ctx context.Context) error {
	if e.phase != PhaseCorrect && e.phase != PhaseIncorrectFinal {
		return fmt.Errorf("%s: %w", e.phase, ErrCannotAdvance)
	}

	now := e.clock.Now()
	next := e.nextRecord(now)
	next.QIndex++
	next.Outcome = store.OutcomePending
	next.HintShown = false

	if next.QIndex >= len(e.questions) {
		return e.complete(ctx, next, now)
	}

	if err := e.records.SetSession(ctx, next); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	e.advance.stop()
	e.rec = &next
	e.present(now)
	e.emit(Event{Kind: EventQuestion})
	return nil
}

func (e *Engine) complete(ctx context.Context, final store.SessionRecord, now time.Time) error {
	progress, err := e.records.GetProgress(ctx)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	total := len(e.questions)
	before := progress.Levels.Get(final.Module)
	after := mastery.UpdateLevel(before, final.CorrectCount, total)
	progress.Levels = progress.Levels.Set(final.Module, after)
	progress.TotalGems += final.GemCount

	if err := e.records.CompleteSession(ctx, progress); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}

	e.stopCountdowns()
	e.rec = &final
	e.phase = PhaseCompleted
	e.result = &Result{
		SessionID:   final.SessionID,
		Module:      final.Module,
		Correct:     final.CorrectCount,
		Total:       total,
		Gems:        final.GemCount,
		LevelBefore: before,
		LevelAfter:  after,
		TotalGems:   progress.TotalGems,
		Duration:    time.Duration(final.ElapsedMs) * time.Millisecond,
	}

	e.log.WithFields(logrus.Fields{
		"session_id":   final.SessionID,
		"correct":      final.CorrectCount,
		"total":        total,
		"gems":         final.GemCount,
		"level_before": before,
		"level_after":  after,
	}).Info("mission completed")
	e.appendSessionEvent(ctx, "end")
	e.emit(Event{Kind: EventCompleted})
	return nil
}

// Quit stops the mission and persists it without advancing, so Resume
// returns to the same question.
func (e *Engine) Quit(ctx context.Context) (View, error) {
	e.mu.Lock()
	defer e.unlock()

	if e.rec == nil || e.phase.Terminal() {
		return e.viewLocked(), ErrNoSession
	}
	if err := e.stopLocked(ctx, PhaseQuit); err != nil {
		return e.viewLocked(), err
	}
	e.appendSessionEvent(ctx, "quit")
	e.emit(Event{Kind: EventQuit})
	return e.viewLocked(), nil
}

// stopLocked persists the mission as it stands and enters a terminal phase.
func (e *Engine) stopLocked(ctx context.Context, phase Phase) error {
	next := e.nextRecord(e.clock.Now())
	if err := e.records.SetSession(ctx, next); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	e.stopCountdowns()
	e.rec = &next
	e.phase = phase
	return nil
}

// onTick drives the mission timer.
func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	defer e.unlock()

	if !e.tick.current(gen) {
		return
	}

	now := e.clock.Now()
	status, tr := e.timer.Update(now)
	if status == TimerExpired {
		e.timeUp()
		return
	}
	if tr == TransitionWarning {
		e.emit(Event{Kind: EventTimeWarning})
	} else {
		e.emit(Event{Kind: EventTick})
	}
	e.tick.again(e.cfg.TickInterval, e.onTick)
}

func (e *Engine) timeUp() {
	ctx := context.Background()
	if err := e.stopLocked(ctx, PhaseTimeUp); err != nil {
		// Retried on the next tick.
		e.log.WithError(err).Error("persist on time up")
		e.emit(Event{Kind: EventError, Err: err})
		e.tick.again(e.cfg.TickInterval, e.onTick)
		return
	}
	e.log.WithField("session_id", e.rec.SessionID).Info("time up")
	e.appendSessionEvent(ctx, "timeup")
	e.emit(Event{Kind: EventTimeUp})
}

// onAutoAdvance counts down to the next question after a correct answer.
func (e *Engine) onAutoAdvance(gen uint64) {
	e.mu.Lock()
	defer e.unlock()

	if !e.advance.current(gen) {
		return
	}
	e.autoLeft--
	if e.autoLeft > 0 {
		e.emit(Event{Kind: EventAutoAdvanceTick})
		e.advance.again(time.Second, e.onAutoAdvance)
		return
	}

	e.advance.stop()
	if err := e.advanceLocked(context.Background()); err != nil {
		e.log.WithError(err).Error("auto advance")
		e.emit(Event{Kind: EventError, Err: err})
	}
}

func (e *Engine) armAutoAdvance() {
	e.autoLeft = e.autoAdvance
	e.advance.start(time.Second, e.onAutoAdvance)
}

func (e *Engine) startTimer(now time.Time, elapsed time.Duration) {
	e.timer = NewTimer(now.Add(-elapsed), e.cfg.TimeLimit)
	e.timer.WarnBefore = e.cfg.WarningBefore
	e.tick.start(e.cfg.TickInterval, e.onTick)
}

func (e *Engine) stopCountdowns() {
	e.tick.stop()
	e.advance.stop()
	e.autoLeft = 0
}

// present shows the question at the current index. Presenting and
// Advancing complete within the operation that enters them, so observers
// only ever see the question awaiting its first answer.
func (e *Engine) present(now time.Time) {
	e.revealed = ""
	e.lastChoice = ""
	e.lastCorrect = false
	e.shownAt = now
	e.phase = PhaseAwaitingFirstAnswer
}

func (e *Engine) currentQuestion() *problemgen.Question {
	if e.rec == nil || e.rec.QIndex >= len(e.questions) {
		return nil
	}
	return e.questions[e.rec.QIndex]
}

// nextRecord copies the persisted record with the elapsed time brought up
// to now.
func (e *Engine) nextRecord(now time.Time) store.SessionRecord {
	next := *e.rec
	if e.timer != nil {
		next.ElapsedMs = e.timer.Elapsed(now).Milliseconds()
	}
	return next
}

func (e *Engine) viewLocked() View {
	v := View{Phase: e.phase, Seq: e.seq, Result: e.result}
	if e.rec == nil {
		return v
	}
	v.SessionID = e.rec.SessionID
	v.Domain = e.rec.Module
	v.Level = e.rec.Level
	v.Index = e.rec.QIndex
	v.Total = len(e.questions)
	v.CorrectCount = e.rec.CorrectCount
	v.GemCount = e.rec.GemCount
	v.RevealedAnswer = e.revealed
	v.LastChoice = e.lastChoice
	v.LastCorrect = e.lastCorrect
	if !e.phase.Terminal() {
		v.Question = e.currentQuestion()
	}
	if v.Question != nil && e.rec.HintShown {
		v.Hint = v.Question.Hint
	}
	if e.advance.active {
		v.AutoAdvanceIn = e.autoLeft
	}
	if e.timer != nil {
		now := e.clock.Now()
		v.TimerStatus = e.timer.Status()
		v.Remaining = e.timer.Remaining(now)
	}
	return v
}

// emit queues ev for delivery once the lock is released.
func (e *Engine) emit(ev Event) {
	e.seq++
	ev.View = e.viewLocked()
	e.pending = append(e.pending, ev)
}

// unlock releases the engine lock and delivers queued events. Events carry
// a sequence number so a listener fed from several goroutines can drop
// stale views.
func (e *Engine) unlock() {
	events := e.pending
	e.pending = nil
	listener := e.listener
	e.mu.Unlock()

	if listener == nil {
		return
	}
	for _, ev := range events {
		listener(ev)
	}
}

func autoAdvanceSeconds(s store.Settings) int {
	if s.AutoAdvanceSpeed < 1 {
		return int(DefaultAutoAdvance / time.Second)
	}
	return s.AutoAdvanceSpeed
}

func (e *Engine) appendSessionEvent(ctx context.Context, action string) {
	if e.events == nil {
		return
	}
	served := e.rec.QIndex
	if action == "end" {
		served = len(e.questions)
	}
	err := e.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       e.rec.SessionID,
		Action:          action,
		Module:          string(e.rec.Module),
		Level:           e.rec.Level,
		QuestionsServed: served,
		CorrectAnswers:  e.rec.CorrectCount,
		GemsEarned:      e.rec.GemCount,
		DurationSecs:    float64(e.rec.ElapsedMs) / 1000,
	})
	if err != nil {
		e.log.WithError(err).WithField("action", action).Warn("append session event")
	}
}

func (e *Engine) appendAnswerEvent(ctx context.Context, q *problemgen.Question, choice string, correct bool, attempt int, now time.Time) {
	if e.events == nil {
		return
	}
	err := e.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     e.rec.SessionID,
		QuestionID:    q.ID,
		Module:        string(q.Domain),
		Subskill:      q.Subskill,
		Difficulty:    q.Difficulty,
		Attempt:       attempt,
		LearnerAnswer: choice,
		CorrectAnswer: q.CorrectAnswer,
		Correct:       correct,
		TimeMs:        now.Sub(e.shownAt).Milliseconds(),
	})
	if err != nil {
		e.log.WithError(err).WithField("question_id", q.ID).Warn("append answer event")
	}
}

func (e *Engine) appendMasteryEvent(ctx context.Context, t *mastery.StateTransition) {
	if e.events == nil {
		return
	}
	err := e.events.AppendMasteryEvent(ctx, store.MasteryEventData{
		SessionID:  e.rec.SessionID,
		Subskill:   t.Subskill,
		FromStatus: string(t.From),
		ToStatus:   string(t.To),
	})
	if err != nil {
		e.log.WithError(err).WithField("subskill", t.Subskill).Warn("append mastery event")
	}
}
