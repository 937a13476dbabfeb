// Package game implements the typing game loop: a tick-driven state
// machine that draws a word, runs the level countdown, validates input and
// moves between levels until time runs out.
package game

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/speedkeys/internal/config"
	"github.com/vovakirdan/speedkeys/internal/core"
	"github.com/vovakirdan/speedkeys/internal/registry"
	"github.com/vovakirdan/speedkeys/internal/session"
	"github.com/vovakirdan/speedkeys/internal/timer"
)

// Round is the transient state of one level. It is replaced every time a
// level starts and dropped when the level resolves.
type Round struct {
	Number         int
	Target         string
	Input          string
	Locked         bool // Level already resolved (success or game over)
	FeedbackActive bool // A feedback flash is on screen
}

// Game implements registry.Game for one rule preset.
type Game struct {
	id     string
	title  string
	preset config.Preset // Empty keeps the configured rules

	cfg       config.Config
	words     registry.WordSource
	navigator core.Navigator
	presenter core.Presenter
	logger    *log.Logger
	runtime   core.RuntimeConfig

	session *session.Session
	timer   *timer.Timer
	phase   core.Phase
	round   Round

	countdownLeft time.Duration
	feedbackLeft  time.Duration
	tick          uint64
	result        *core.Result
	presented     core.Frame
}

// New creates a game for the given preset. The game stays idle until Reset.
func New(id, title string, preset config.Preset, deps registry.Deps) *Game {
	deps = deps.WithDefaults()

	cfg := deps.Config
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}

	return &Game{
		id:        id,
		title:     title,
		preset:    preset,
		cfg:       cfg,
		words:     deps.Words,
		navigator: deps.Navigator,
		presenter: deps.Presenter,
		logger:    deps.Logger.WithPrefix(id),
		runtime:   core.DefaultConfig(),
		session:   session.New(cfg.Rules),
		timer:     timer.New(),
		phase:     core.PhaseIdle,
	}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return g.title
}

// Rules returns the timing rules this mode plays with.
func (g *Game) Rules() config.Rules {
	return g.cfg.Rules
}

// Reset starts a new run: level 1, no points, then the countdown.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.session.Reset()
	g.timer.Stop()
	g.round = Round{}
	g.result = nil
	g.tick = 0
	g.feedbackLeft = 0

	if g.words != nil {
		g.words.Reseed(cfg.Seed)
	}

	g.logger.Debug("run started", "seed", cfg.Seed, "time_initial", g.cfg.Rules.TimeInitial)

	if total := g.cfg.Countdown.Total(); total > 0 {
		g.phase = core.PhaseCountdown
		g.countdownLeft = total
	} else {
		g.startLevel()
	}
	g.present()
}

// startLevel opens a new round at the session's current level.
func (g *Game) startLevel() {
	target := ""
	if g.words != nil {
		target = g.words.Random()
	}

	g.round = Round{
		Number: g.round.Number + 1,
		Target: target,
	}
	g.feedbackLeft = 0
	g.phase = core.PhaseLevelActive
	g.timer.Start(g.session.TimeForLevel())

	g.logger.Debug("level started",
		"level", g.session.Level(),
		"seconds", g.timer.Total(),
		"target", target)
}

// SetInput replaces the current input. Ignored while the input field is
// not editable (countdown, correct feedback, game over).
func (g *Game) SetInput(text string) {
	if !g.editable() {
		return
	}
	g.round.Input = text
	g.present()
}

func (g *Game) editable() bool {
	return g.phase == core.PhaseLevelActive || g.phase == core.PhaseFeedbackIncorrect
}

// matches reports whether the trimmed input equals the target.
func (g *Game) matches() bool {
	return g.round.Target != "" && strings.TrimSpace(g.round.Input) == g.round.Target
}

// Submit validates the current input against the target.
// Only the first resolving event of a round counts; submits during a
// feedback flash are dropped.
func (g *Game) Submit() {
	if !g.editable() || g.round.Locked || g.round.FeedbackActive {
		return
	}

	if g.matches() {
		g.timer.Stop()
		g.succeed()
	} else {
		g.reject()
	}
	g.present()
}

// succeed closes the round with a point and shows the correct feedback.
func (g *Game) succeed() {
	g.round.Locked = true
	g.session.AddPoint()
	g.phase = core.PhaseFeedbackCorrect
	g.round.FeedbackActive = true
	g.feedbackLeft = g.cfg.Feedback.Delay

	g.logger.Debug("word correct", "level", g.session.Level(), "score", g.session.Score())

	if g.feedbackLeft <= 0 {
		g.finishFeedback()
	}
}

// reject shows the incorrect feedback; the timer keeps running.
func (g *Game) reject() {
	g.phase = core.PhaseFeedbackIncorrect
	g.round.FeedbackActive = true
	g.feedbackLeft = g.cfg.Feedback.Delay

	g.logger.Debug("word incorrect", "input", g.round.Input, "target", g.round.Target)

	if g.feedbackLeft <= 0 {
		g.finishFeedback()
	}
}

// finishFeedback ends the flash and moves on.
func (g *Game) finishFeedback() {
	g.round.FeedbackActive = false
	g.feedbackLeft = 0

	switch g.phase {
	case core.PhaseFeedbackCorrect:
		g.session.NextLevel()
		g.startLevel()
	case core.PhaseFeedbackIncorrect:
		g.phase = core.PhaseLevelActive
	}
}

// timeUp resolves a round whose countdown reached zero. A matching input
// still counts as a success.
func (g *Game) timeUp() {
	if g.round.Locked {
		return
	}

	if g.matches() {
		g.succeed()
		return
	}

	g.round.Locked = true
	g.round.FeedbackActive = false
	g.phase = core.PhaseGameOver
	g.result = &core.Result{Score: g.session.Score(), Level: g.session.Level()}

	g.logger.Info("game over", "score", g.result.Score, "level", g.result.Level)
	g.present()

	if g.navigator != nil {
		if err := g.navigator.GameOver(*g.result); err != nil {
			g.logger.Error("navigation to game over failed", "err", err)
		}
	}
}

// Advance moves the game forward by dt of wall-clock (or simulated) time.
func (g *Game) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}

	switch g.phase {
	case core.PhaseCountdown:
		g.countdownLeft -= dt
		if g.countdownLeft <= 0 {
			g.countdownLeft = 0
			g.startLevel()
		}

	case core.PhaseLevelActive:
		if g.timer.Advance(dt) {
			g.timeUp()
		}

	case core.PhaseFeedbackIncorrect:
		if g.timer.Advance(dt) {
			g.timeUp()
		}
		if g.phase != core.PhaseFeedbackIncorrect {
			break
		}
		g.feedbackLeft -= dt
		if g.feedbackLeft <= 0 {
			g.finishFeedback()
		}

	case core.PhaseFeedbackCorrect:
		g.feedbackLeft -= dt
		if g.feedbackLeft <= 0 {
			g.finishFeedback()
		}
	}
	g.present()
}

// Step advances the game by one tick: text first, then submit, then time.
// A submit and an expiry landing in the same tick resolve in the submit's favor.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.TextSet {
		g.SetInput(in.Text)
	}
	if in.Has(core.ActionSubmit) {
		g.Submit()
	}
	g.Advance(g.runtime.TickInterval())

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		GameOver: g.phase == core.PhaseGameOver,
	}
}

// Phase returns the current phase of the loop.
func (g *Game) Phase() core.Phase {
	return g.phase
}

// Round returns a copy of the current round.
func (g *Game) Round() Round {
	return g.round
}

// Result returns the final score and level once the run is over.
func (g *Game) Result() (core.Result, bool) {
	if g.result == nil {
		return core.Result{}, false
	}
	return *g.result, true
}

// Frame returns what the presentation layer should draw.
func (g *Game) Frame() core.Frame {
	f := core.Frame{
		Tick:      g.tick,
		Phase:     g.phase,
		Level:     g.session.Level(),
		Score:     g.session.Score(),
		Round:     g.round.Number,
		Target:    g.round.Target,
		Input:     g.round.Input,
		Remaining: g.timer.Remaining(),
		Total:     g.timer.Total(),
		TimeLeft:  g.timer.Fraction(),
		Editable:  g.editable(),
	}

	switch g.phase {
	case core.PhaseCountdown:
		f.Countdown = g.countdownValue()
	case core.PhaseFeedbackCorrect:
		f.Feedback = core.ColorGreen
	case core.PhaseFeedbackIncorrect:
		f.Feedback = core.ColorRed
	case core.PhaseGameOver:
		f.Feedback = core.ColorGray
	}

	return f
}

// present pushes the current frame to the presenter when it differs from
// the last one pushed. The tick counter alone does not count as a change.
func (g *Game) present() {
	if g.presenter == nil {
		return
	}
	f := g.Frame()
	f.Tick = 0
	if f == g.presented {
		return
	}
	g.presented = f
	f.Tick = g.tick
	g.presenter.Present(f)
}

// countdownValue maps the elapsed countdown time to the number on screen:
// From at the start, one less every Step, never below 1.
func (g *Game) countdownValue() int {
	c := g.cfg.Countdown
	if c.From <= 0 {
		return 0
	}
	if c.Step <= 0 {
		return 1
	}
	elapsed := c.Total() - g.countdownLeft
	n := c.From - int(elapsed/c.Step)
	return core.Clamp(n, 1, c.From)
}
