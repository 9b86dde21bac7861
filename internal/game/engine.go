// Package game implements the typing session state machine.
package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/tuiracer/internal/model"
	"github.com/verte-zerg/tuiracer/internal/obslog"
	"github.com/verte-zerg/tuiracer/internal/stats"
	"github.com/verte-zerg/tuiracer/internal/store"
)

// State is the session lifecycle stage.
type State int

// Session states.
const (
	StateReady State = iota
	StatePlaying
	StateFinished
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return "ready"
	}
}

const (
	// LavaStep is the hazard increase per lava tick.
	LavaStep = 0.5
	// MaxHazard ends a lava session when reached.
	MaxHazard = 100.0
)

// TextSource supplies prompts by difficulty.
type TextSource interface {
	Text(difficulty model.Difficulty) string
}

// Recorder receives finished results.
type Recorder interface {
	Append(ctx context.Context, result model.GameResult) error
}

// Options configures an Engine.
type Options struct {
	Mode       model.Mode
	Difficulty model.Difficulty
	Username   string
	Texts      TextSource
	Recorder   Recorder
	Now        func() time.Time
	Logger     *zap.Logger
}

// Engine owns a single typing session at a time. It is not safe for
// concurrent use; callers serialize input, timer fires, and transitions.
type Engine struct {
	texts    TextSource
	recorder Recorder
	now      func() time.Time
	log      *zap.Logger

	mode       model.Mode
	difficulty model.Difficulty
	username   string

	state     State
	sessionID string
	text      []rune
	input     []rune
	errors    int
	progress  int
	start     time.Time
	elapsed   int
	hazard    float64
	visible   bool

	gen   uint64
	armed map[TimerKind]bool

	result  model.GameResult
	saveErr error
}

// New returns an engine in the ready state.
func New(opts Options) *Engine {
	e := &Engine{
		texts:      opts.Texts,
		recorder:   opts.Recorder,
		now:        opts.Now,
		log:        obslog.OrNop(opts.Logger),
		mode:       opts.Mode,
		difficulty: opts.Difficulty,
		username:   opts.Username,
		visible:    true,
		armed:      make(map[TimerKind]bool),
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.mode == "" {
		e.mode = model.ModeClassic
	}
	if e.difficulty == "" {
		e.difficulty = model.DifficultyMedium
	}
	return e
}

// Start begins a new session, replacing any current one without recording
// it, and returns the timers the caller must arm.
func (e *Engine) Start() []Timer {
	e.disarm()
	text := ""
	if e.texts != nil {
		text = e.texts.Text(e.difficulty)
	}
	e.state = StatePlaying
	e.sessionID = uuid.NewString()
	e.text = []rune(text)
	e.input = nil
	e.errors = 0
	e.progress = 0
	e.start = e.now()
	e.elapsed = 0
	e.hazard = 0
	e.visible = true
	e.result = model.GameResult{}
	e.saveErr = nil

	timers := timersFor(e.mode, e.gen)
	for _, t := range timers {
		e.armed[t.Kind] = true
	}
	e.log.Info("session started",
		zap.String("session_id", e.sessionID),
		zap.String("mode", string(e.mode)),
		zap.String("difficulty", string(e.difficulty)),
		zap.Int("text_len", len(e.text)),
	)
	return timers
}

// Input replaces the typed input. It returns false when no session is
// playing. A correct full-length input finishes the session.
func (e *Engine) Input(ctx context.Context, value string) bool {
	if e.state != StatePlaying {
		return false
	}
	e.input = []rune(value)
	e.errors = countErrors(e.text, e.input)
	e.progress = progressOf(len(e.input), len(e.text))
	if len(e.input) == len(e.text) && e.errors == 0 {
		e.finish(ctx, true, e.now())
	}
	return true
}

// Fire delivers an expired timer at now. It reports whether a repeating
// timer should be armed again. Timers from a superseded session, of a kind
// no longer armed, or arriving outside play are ignored.
func (e *Engine) Fire(ctx context.Context, t Timer, now time.Time) bool {
	if t.Gen != e.gen || !e.armed[t.Kind] || e.state != StatePlaying {
		return false
	}
	switch t.Kind {
	case TimerClock:
		e.elapsed = elapsedSeconds(e.start, now)
	case TimerLava:
		e.hazard += LavaStep
		if e.hazard >= MaxHazard {
			e.hazard = MaxHazard
			e.finish(ctx, false, now)
			return false
		}
	case TimerReveal:
		e.visible = false
		delete(e.armed, TimerReveal)
		return false
	}
	return t.Repeat
}

// Finish ends the playing session. A session only counts as completed when
// the input matches the text exactly. It returns false when no session is
// playing.
func (e *Engine) Finish(ctx context.Context, completed bool) bool {
	if e.state != StatePlaying {
		return false
	}
	e.finish(ctx, completed, e.now())
	return true
}

// SetMode switches the mode. A playing session is discarded.
func (e *Engine) SetMode(mode model.Mode) {
	e.Abandon()
	e.mode = mode
}

// SetDifficulty switches the difficulty. A playing session is discarded.
func (e *Engine) SetDifficulty(difficulty model.Difficulty) {
	e.Abandon()
	e.difficulty = difficulty
}

// SetUsername sets the name recorded with later results.
func (e *Engine) SetUsername(name string) {
	e.username = name
}

// Abandon returns to ready without recording anything.
func (e *Engine) Abandon() {
	if e.state == StatePlaying {
		e.log.Info("session abandoned", zap.String("session_id", e.sessionID))
	}
	e.disarm()
	e.state = StateReady
	e.text = nil
	e.input = nil
	e.errors = 0
	e.progress = 0
	e.elapsed = 0
	e.hazard = 0
	e.visible = true
}

func (e *Engine) finish(ctx context.Context, completed bool, end time.Time) {
	e.disarm()
	e.state = StateFinished

	completed = completed && e.errors == 0 && string(e.input) == string(e.text)
	elapsed := end.Sub(e.start)
	e.elapsed = elapsedSeconds(e.start, end)

	username := e.username
	if username == "" {
		username = store.DefaultUsername
	}
	e.result = model.GameResult{
		Mode:       e.mode,
		WPM:        stats.WPM(len(e.text), elapsed),
		Accuracy:   stats.Accuracy(len(e.text), e.errors),
		Errors:     e.errors,
		Text:       string(e.text),
		Timestamp:  end.UTC().Truncate(time.Millisecond),
		Completed:  completed,
		Difficulty: e.difficulty,
		Username:   username,
	}
	e.log.Info("session finished",
		zap.String("session_id", e.sessionID),
		zap.String("mode", string(e.mode)),
		zap.String("difficulty", string(e.difficulty)),
		zap.Bool("completed", completed),
		zap.Float64("wpm", e.result.WPM),
		zap.Float64("accuracy", e.result.Accuracy),
		zap.Int("errors", e.errors),
	)
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Append(ctx, e.result); err != nil {
		e.saveErr = err
		e.log.Warn("result kept in memory only", zap.String("session_id", e.sessionID), zap.Error(err))
	}
}

func (e *Engine) disarm() {
	e.gen++
	for k := range e.armed {
		delete(e.armed, k)
	}
}

func countErrors(text, input []rune) int {
	errors := 0
	for i, r := range input {
		if i < len(text) && r != text[i] {
			errors++
		}
	}
	return errors
}

func progressOf(inputLen, textLen int) int {
	if textLen == 0 {
		return 100
	}
	p := 100 * inputLen / textLen
	if p > 100 {
		p = 100
	}
	return p
}

func elapsedSeconds(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// State returns the lifecycle stage.
func (e *Engine) State() State { return e.state }

// Mode returns the selected mode.
func (e *Engine) Mode() model.Mode { return e.mode }

// Difficulty returns the selected difficulty.
func (e *Engine) Difficulty() model.Difficulty { return e.difficulty }

// Username returns the name recorded with results.
func (e *Engine) Username() string { return e.username }

// SessionID identifies the current or last session.
func (e *Engine) SessionID() string { return e.sessionID }

// Text returns the prompt of the current session.
func (e *Engine) Text() string { return string(e.text) }

// TextLen returns the prompt length in characters.
func (e *Engine) TextLen() int { return len(e.text) }

// InputText returns the typed input.
func (e *Engine) InputText() string { return string(e.input) }

// Errors returns the mismatched character count.
func (e *Engine) Errors() int { return e.errors }

// Progress returns the typed share of the prompt, 0 to 100.
func (e *Engine) Progress() int { return e.progress }

// Elapsed returns whole seconds since start, as of the last clock tick.
func (e *Engine) Elapsed() int { return e.elapsed }

// Hazard returns the lava level, 0 to 100.
func (e *Engine) Hazard() float64 { return e.hazard }

// Visible reports whether the prompt should be shown.
func (e *Engine) Visible() bool { return e.visible }

// Result returns the last finished result. The boolean is false until a
// session finishes.
func (e *Engine) Result() (model.GameResult, bool) {
	return e.result, e.state == StateFinished
}

// SaveErr returns the error from persisting the last result, if any.
func (e *Engine) SaveErr() error { return e.saveErr }
