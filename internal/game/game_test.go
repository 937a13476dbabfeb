package game

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/speedkeys/internal/config"
	"github.com/vovakirdan/speedkeys/internal/core"
	"github.com/vovakirdan/speedkeys/internal/registry"
	"github.com/vovakirdan/speedkeys/internal/words"
)

const feedbackDelay = 500 * time.Millisecond

// recordingNavigator remembers every game over it receives.
type recordingNavigator struct {
	calls []core.Result
	err   error
}

func (n *recordingNavigator) GameOver(res core.Result) error {
	n.calls = append(n.calls, res)
	return n.err
}

// newTestGame builds a classic game over the given words with the
// countdown disabled, reset and ready at level 1.
func newTestGame(t *testing.T, list []string, mutate func(*config.Config)) (*Game, *recordingNavigator) {
	t.Helper()

	src, err := words.Load(strings.NewReader(strings.Join(list, "\n")), 1)
	if err != nil {
		t.Fatalf("words.Load() failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Countdown.From = 0
	cfg.Feedback.Delay = feedbackDelay
	if mutate != nil {
		mutate(&cfg)
	}

	nav := &recordingNavigator{}
	g := New(ModeCustom, "Test", "", registry.Deps{
		Config:    cfg,
		Words:     src,
		Navigator: nav,
	})
	g.Reset(core.RuntimeConfig{TickRate: 10, Seed: 1})
	return g, nav
}

// typeTarget types the current target and submits it.
func typeTarget(g *Game) {
	g.SetInput(g.Round().Target)
	g.Submit()
}

func TestExampleRun(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, nil)

	f := g.Frame()
	if f.Phase != core.PhaseLevelActive {
		t.Fatalf("Phase = %q, expected %q", f.Phase, core.PhaseLevelActive)
	}
	if f.Level != 1 || f.Score != 0 {
		t.Fatalf("start = (level %d, score %d), expected (1, 0)", f.Level, f.Score)
	}
	if f.Total != 10 || f.Remaining != 10 {
		t.Errorf("budget = %d/%d, expected 10/10", f.Remaining, f.Total)
	}
	if f.Target != "cat" {
		t.Errorf("Target = %q, expected %q", f.Target, "cat")
	}

	g.SetInput("cat")
	g.Submit()

	f = g.Frame()
	if f.Phase != core.PhaseFeedbackCorrect {
		t.Fatalf("Phase after correct submit = %q, expected %q", f.Phase, core.PhaseFeedbackCorrect)
	}
	if f.Feedback != core.ColorGreen {
		t.Errorf("Feedback = %v, expected green", f.Feedback)
	}
	if f.Score != 1 {
		t.Errorf("Score = %d, expected 1", f.Score)
	}
	if f.Level != 1 {
		t.Errorf("level should only advance after the feedback delay, got %d", f.Level)
	}

	g.Advance(feedbackDelay)

	f = g.Frame()
	if f.Phase != core.PhaseLevelActive {
		t.Fatalf("Phase after feedback = %q, expected %q", f.Phase, core.PhaseLevelActive)
	}
	if f.Score != 1 || f.Level != 2 {
		t.Errorf("after feedback = (level %d, score %d), expected (2, 1)", f.Level, f.Score)
	}
	if f.Round != 2 {
		t.Errorf("Round = %d, expected 2", f.Round)
	}
	if f.Input != "" {
		t.Errorf("new level should clear input, got %q", f.Input)
	}
}

func TestSubmitTrimsInput(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, nil)

	g.SetInput("  cat\t")
	g.Submit()

	if g.Phase() != core.PhaseFeedbackCorrect {
		t.Errorf("trimmed input should match, phase = %q", g.Phase())
	}
}

func TestSubmitIsCaseSensitive(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, nil)

	g.SetInput("Cat")
	g.Submit()

	if g.Phase() != core.PhaseFeedbackIncorrect {
		t.Errorf("input must match exactly, phase = %q", g.Phase())
	}
}

func TestSubmitMismatch(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, nil)

	g.SetInput("dog")
	g.Submit()

	f := g.Frame()
	if f.Phase != core.PhaseFeedbackIncorrect {
		t.Fatalf("Phase = %q, expected %q", f.Phase, core.PhaseFeedbackIncorrect)
	}
	if f.Feedback != core.ColorRed {
		t.Errorf("Feedback = %v, expected red", f.Feedback)
	}
	if !f.Editable {
		t.Error("input should stay editable during incorrect feedback")
	}

	// Submits during the flash are dropped, even correct ones
	g.SetInput("cat")
	g.Submit()
	if g.Phase() != core.PhaseFeedbackIncorrect || g.State().Score != 0 {
		t.Fatalf("submit during feedback should be ignored, phase %q score %d", g.Phase(), g.State().Score)
	}

	g.Advance(feedbackDelay)

	f = g.Frame()
	if f.Phase != core.PhaseLevelActive {
		t.Fatalf("Phase after feedback = %q, expected %q", f.Phase, core.PhaseLevelActive)
	}
	if f.Level != 1 || f.Score != 0 {
		t.Errorf("mismatch changed progress: (level %d, score %d)", f.Level, f.Score)
	}
	if f.Round != 1 {
		t.Errorf("mismatch should keep the round, got %d", f.Round)
	}
	if f.Input != "cat" {
		t.Errorf("input should be kept, got %q", f.Input)
	}

	// The timer kept running through the flash
	g.Advance(feedbackDelay)
	if g.Frame().Remaining != 9 {
		t.Errorf("Remaining = %d after 1s, expected 9", g.Frame().Remaining)
	}

	g.Submit()
	if g.Phase() != core.PhaseFeedbackCorrect {
		t.Errorf("correct submit after feedback should succeed, phase = %q", g.Phase())
	}
}

func TestLockedRoundIgnoresInput(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, nil)

	typeTarget(g)
	if !g.Round().Locked {
		t.Fatal("round should be locked after a correct submit")
	}

	g.SetInput("dog")
	g.Submit()

	if g.Round().Input != "cat" {
		t.Errorf("input changed while locked: %q", g.Round().Input)
	}
	if g.Phase() != core.PhaseFeedbackCorrect {
		t.Errorf("Phase = %q, expected %q", g.Phase(), core.PhaseFeedbackCorrect)
	}
	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected exactly 1", g.State().Score)
	}
	if g.Frame().Editable {
		t.Error("input should not be editable during correct feedback")
	}
}

func TestTimeUpWithMatchingInputCountsAsSuccess(t *testing.T) {
	g, nav := newTestGame(t, []string{"cat"}, nil)

	g.SetInput("cat") // typed but never submitted
	g.Advance(10 * time.Second)

	if g.Phase() != core.PhaseFeedbackCorrect {
		t.Fatalf("Phase = %q, expected %q", g.Phase(), core.PhaseFeedbackCorrect)
	}
	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected 1", g.State().Score)
	}

	g.Advance(feedbackDelay)
	st := g.State()
	if st.Score != 1 || st.Level != 2 || st.GameOver {
		t.Errorf("after expiry success = %+v, expected score 1 level 2", st)
	}
	if len(nav.calls) != 0 {
		t.Errorf("navigator called %d times, expected 0", len(nav.calls))
	}
}

func TestTimeUpEndsRun(t *testing.T) {
	g, nav := newTestGame(t, []string{"cat"}, nil)

	// Score one point first
	typeTarget(g)
	g.Advance(feedbackDelay)

	g.SetInput("ca")
	g.Advance(10 * time.Second)

	f := g.Frame()
	if f.Phase != core.PhaseGameOver {
		t.Fatalf("Phase = %q, expected %q", f.Phase, core.PhaseGameOver)
	}
	if !g.State().GameOver {
		t.Error("State().GameOver should be true")
	}
	if f.Editable {
		t.Error("input should not be editable after game over")
	}

	res, ok := g.Result()
	if !ok {
		t.Fatal("Result() should be available after game over")
	}
	if res.Score != 1 || res.Level != 2 {
		t.Errorf("Result() = %+v, expected score 1 level 2", res)
	}

	if len(nav.calls) != 1 || nav.calls[0] != res {
		t.Fatalf("navigator calls = %+v, expected one call with %+v", nav.calls, res)
	}

	// Nothing moves after the run ended
	g.SetInput("cat")
	g.Submit()
	g.Advance(time.Minute)
	if g.State().Score != 1 || len(nav.calls) != 1 {
		t.Errorf("events after game over had an effect: score %d, navigator calls %d", g.State().Score, len(nav.calls))
	}
}

func TestNavigatorErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	src, _ := words.Load(strings.NewReader("cat"), 1)
	cfg := config.DefaultConfig()
	cfg.Countdown.From = 0

	nav := &recordingNavigator{err: errors.New("screen missing")}
	g := New(ModeClassic, "Classic", config.PresetClassic, registry.Deps{
		Config:    cfg,
		Words:     src,
		Navigator: nav,
		Logger:    log.New(&buf),
	})
	g.Reset(core.RuntimeConfig{TickRate: 10, Seed: 1})
	g.Advance(10 * time.Second)

	if g.Phase() != core.PhaseGameOver {
		t.Fatalf("Phase = %q, expected game over despite navigator error", g.Phase())
	}
	if !strings.Contains(buf.String(), "screen missing") {
		t.Errorf("navigator error not logged, log = %q", buf.String())
	}
}

func TestTimeUpDuringIncorrectFeedback(t *testing.T) {
	g, nav := newTestGame(t, []string{"cat"}, nil)

	g.Advance(9*time.Second + 800*time.Millisecond)
	g.SetInput("dog")
	g.Submit()
	g.Advance(300 * time.Millisecond) // expires before the flash ends

	if g.Phase() != core.PhaseGameOver {
		t.Fatalf("Phase = %q, expected %q", g.Phase(), core.PhaseGameOver)
	}
	if len(nav.calls) != 1 {
		t.Errorf("navigator calls = %d, expected 1", len(nav.calls))
	}
}

func TestCountdown(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, func(c *config.Config) {
		c.Countdown = config.DefaultConfig().Countdown
	})

	steps := []struct {
		advance   time.Duration
		phase     core.Phase
		countdown int
	}{
		{0, core.PhaseCountdown, 3},
		{999 * time.Millisecond, core.PhaseCountdown, 3},
		{time.Millisecond, core.PhaseCountdown, 2},
		{time.Second, core.PhaseCountdown, 1},
		{499 * time.Millisecond, core.PhaseCountdown, 1},
		{time.Millisecond, core.PhaseLevelActive, 0},
	}

	for i, s := range steps {
		g.Advance(s.advance)
		f := g.Frame()
		if f.Phase != s.phase || f.Countdown != s.countdown {
			t.Fatalf("step %d: (phase %q, countdown %d), expected (%q, %d)", i, f.Phase, f.Countdown, s.phase, s.countdown)
		}
	}

	// Typing during the countdown is ignored
	g.Reset(core.RuntimeConfig{TickRate: 10, Seed: 1})
	g.SetInput("cat")
	g.Submit()
	if g.Round().Input != "" || g.Phase() != core.PhaseCountdown {
		t.Error("input during countdown should be ignored")
	}
}

func TestZeroFeedbackDelay(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, func(c *config.Config) {
		c.Feedback.Delay = 0
	})

	typeTarget(g)
	if g.Phase() != core.PhaseLevelActive || g.State().Level != 2 {
		t.Errorf("zero delay should advance immediately: phase %q level %d", g.Phase(), g.State().Level)
	}

	g.SetInput("dog")
	g.Submit()
	if g.Phase() != core.PhaseLevelActive {
		t.Errorf("zero delay mismatch should return to the level, phase %q", g.Phase())
	}
}

func TestBudgetShrinksWithLevel(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, nil)

	for i := 0; i < 5; i++ {
		typeTarget(g)
		g.Advance(feedbackDelay)
	}

	f := g.Frame()
	if f.Level != 6 || f.Score != 5 {
		t.Fatalf("after 5 words = (level %d, score %d), expected (6, 5)", f.Level, f.Score)
	}
	if f.Total != 8 {
		t.Errorf("level 6 budget = %d, expected 8", f.Total)
	}
}

func TestStepOrdering(t *testing.T) {
	oneSecond := func(c *config.Config) {
		c.Rules.TimeInitial = 1
		c.Rules.TimeMin = 1
	}

	t.Run("correct submit on the expiring tick wins", func(t *testing.T) {
		g, nav := newTestGame(t, []string{"cat"}, oneSecond)
		empty := core.NewInputFrame()
		for i := 0; i < 9; i++ {
			g.Step(empty)
		}

		in := core.NewInputFrame()
		in.SetText("cat")
		in.Set(core.ActionSubmit)
		res := g.Step(in)

		if res.State.GameOver || res.State.Score != 1 {
			t.Errorf("State = %+v, expected score 1 and no game over", res.State)
		}
		if len(nav.calls) != 0 {
			t.Error("navigator should not be called")
		}
	})

	t.Run("wrong submit on the expiring tick loses", func(t *testing.T) {
		g, nav := newTestGame(t, []string{"cat"}, oneSecond)
		empty := core.NewInputFrame()
		for i := 0; i < 9; i++ {
			g.Step(empty)
		}

		in := core.NewInputFrame()
		in.SetText("cap")
		in.Set(core.ActionSubmit)
		res := g.Step(in)

		if !res.State.GameOver {
			t.Errorf("State = %+v, expected game over", res.State)
		}
		if len(nav.calls) != 1 {
			t.Errorf("navigator calls = %d, expected 1", len(nav.calls))
		}
	})
}

func TestResetAfterGameOver(t *testing.T) {
	g, _ := newTestGame(t, []string{"cat"}, nil)

	typeTarget(g)
	g.Advance(feedbackDelay)
	g.Advance(time.Minute)
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	g.Reset(core.RuntimeConfig{TickRate: 10, Seed: 2})

	st := g.State()
	if st.GameOver || st.Score != 0 || st.Level != 1 {
		t.Errorf("after Reset = %+v, expected fresh run", st)
	}
	if _, ok := g.Result(); ok {
		t.Error("Result() should be cleared by Reset")
	}
	if g.Round().Number != 1 {
		t.Errorf("Round().Number = %d, expected 1", g.Round().Number)
	}
}

func TestDeterminism(t *testing.T) {
	list := []string{"apple", "river", "planet", "window", "garden", "silver"}

	play := func() []string {
		g, _ := newTestGame(t, list, nil)
		g.Reset(core.RuntimeConfig{TickRate: 10, Seed: 12345})
		var targets []string
		for i := 0; i < 20; i++ {
			targets = append(targets, g.Round().Target)
			typeTarget(g)
			g.Advance(feedbackDelay)
		}
		return targets
	}

	a, b := play(), play()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("target %d differs with same seed: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestRegisteredModes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rules.TimeInitial = 15

	tests := []struct {
		id          string
		timeInitial int
	}{
		{ModeClassic, 10},
		{ModeExtended, 20},
		{ModeCustom, 15},
	}

	for _, tc := range tests {
		g, err := registry.Create(tc.id, registry.Deps{Config: cfg})
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", tc.id, err)
		}
		if g.ID() != tc.id {
			t.Errorf("ID() = %q, expected %q", g.ID(), tc.id)
		}
		if got := g.Rules().TimeInitial; got != tc.timeInitial {
			t.Errorf("%s: TimeInitial = %d, expected %d", tc.id, got, tc.timeInitial)
		}
	}
}

func TestIdleUntilReset(t *testing.T) {
	g := New(ModeClassic, "Classic", config.PresetClassic, registry.Deps{})

	if g.Phase() != core.PhaseIdle {
		t.Fatalf("Phase = %q, expected %q", g.Phase(), core.PhaseIdle)
	}

	// Nothing happens before Reset, and nothing panics without words
	g.SetInput("cat")
	g.Submit()
	g.Advance(time.Minute)
	if g.Phase() != core.PhaseIdle {
		t.Errorf("Phase = %q after events, expected idle", g.Phase())
	}
}

// recordingPresenter keeps every frame pushed to it.
type recordingPresenter struct {
	frames []core.Frame
}

func (p *recordingPresenter) Present(f core.Frame) {
	p.frames = append(p.frames, f)
}

func TestPresenterReceivesChanges(t *testing.T) {
	src, _ := words.Load(strings.NewReader("cat"), 1)
	cfg := config.DefaultConfig()
	cfg.Countdown.From = 0
	cfg.Feedback.Delay = feedbackDelay

	p := &recordingPresenter{}
	g := New(ModeCustom, "Test", "", registry.Deps{
		Config:    cfg,
		Words:     src,
		Presenter: p,
	})
	g.Reset(core.RuntimeConfig{TickRate: 10, Seed: 1})

	if len(p.frames) != 1 || p.frames[0].Phase != core.PhaseLevelActive {
		t.Fatalf("Reset should present the first level, got %+v", p.frames)
	}

	// Same input twice only presents once
	g.SetInput("c")
	g.SetInput("c")
	if len(p.frames) != 2 {
		t.Fatalf("frames = %d after duplicate input, expected 2", len(p.frames))
	}

	g.SetInput("cat")
	g.Submit()
	last := p.frames[len(p.frames)-1]
	if last.Phase != core.PhaseFeedbackCorrect || last.Score != 1 {
		t.Errorf("last frame = %+v, expected correct feedback with score 1", last)
	}

	g.Advance(feedbackDelay)
	last = p.frames[len(p.frames)-1]
	if last.Phase != core.PhaseLevelActive || last.Level != 2 {
		t.Errorf("last frame = %+v, expected level 2 active", last)
	}

	g.Advance(10 * time.Second)
	last = p.frames[len(p.frames)-1]
	if last.Phase != core.PhaseGameOver {
		t.Errorf("last frame phase = %q, expected game over", last.Phase)
	}
}
