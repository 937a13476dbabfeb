package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/speedkeys/internal/core"
	"github.com/vovakirdan/speedkeys/internal/registry"
	"github.com/vovakirdan/speedkeys/internal/storage"
)

// frameSink keeps the latest frame pushed by the game.
type frameSink struct {
	frame core.Frame
}

// Present implements core.Presenter.
func (s *frameSink) Present(f core.Frame) {
	s.frame = f
}

// runRecorder receives the end of a run and files it in the session
// history. The game over screen reads the outcome back from it.
type runRecorder struct {
	store   *storage.Store
	mode    string
	started time.Time

	last    *storage.Run
	best    int
	newBest bool
}

// begin marks the start of a new run.
func (r *runRecorder) begin() {
	r.started = time.Now()
	r.last = nil
	r.best = 0
	r.newBest = false
}

// GameOver implements core.Navigator.
func (r *runRecorder) GameOver(res core.Result) error {
	run := storage.Run{
		Mode:     r.mode,
		Score:    res.Score,
		Level:    res.Level,
		Duration: time.Since(r.started),
	}
	r.last = &run
	r.best = res.Score

	if r.store == nil {
		return nil
	}

	prev, err := r.store.BestScore(r.mode)
	if err != nil {
		return err
	}
	saved, err := r.store.SaveRun(run)
	if err != nil {
		return err
	}

	r.last = &saved
	r.best = max(prev, res.Score)
	r.newBest = res.Score > prev
	return nil
}

// Model is the Bubble Tea model for one mode: countdown, levels, game
// over and replay.
type Model struct {
	game       registry.Game
	sink       *frameSink
	recorder   *runRecorder
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	keys       GameKeyMap
	input      textinput.Model
	bar        progress.Model
	help       help.Model
	inputFrame core.InputFrame
	round      int // Round the input field belongs to
	width      int
	height     int
	quitting   bool
	back       bool
}

// NewModel creates the game screen for the given mode. The model owns
// the navigator and presenter of the game it creates.
func NewModel(modeID string, deps registry.Deps, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sink := &frameSink{}
	recorder := &runRecorder{store: store, mode: modeID}
	deps.Presenter = sink
	deps.Navigator = recorder

	game, err := registry.Create(modeID, deps)
	if err != nil {
		return Model{}, err
	}

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "type the word"
	in.CharLimit = 256
	in.Width = 40

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)

	h := help.New()
	h.ShowAll = false

	return Model{
		game:       game,
		sink:       sink,
		recorder:   recorder,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		keys:       DefaultGameKeyMap(),
		input:      in,
		bar:        bar,
		help:       h,
		inputFrame: core.NewInputFrame(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}, nil
}

// Init starts the first run and the tick loop.
func (m Model) Init() tea.Cmd {
	m.recorder.begin()
	m.game.Reset(m.config)

	return tea.Batch(tickCmd(m.config.TickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case TickMsg:
		return m.handleTick()
	}

	// Cursor blink and friends
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	gameOver := m.game.State().GameOver

	action, isQuit := m.keyMapper.MapGameKey(msg, gameOver)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.back = true
		return m, tea.Quit
	case core.ActionSubmit, core.ActionRestart:
		m.inputFrame.Set(action)
		return m, nil
	}

	if gameOver {
		return m, nil
	}

	// Everything else is typing
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputFrame.SetText(m.input.Value())
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height

	w := core.Clamp(msg.Width-16, 10, 60)
	m.bar.Width = w
	m.input.Width = w
	m.help.Width = msg.Width
	return m
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for replay
	if m.inputFrame.Has(core.ActionRestart) && m.game.State().GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.recorder.begin()
		m.game.Reset(m.config)
		m.inputFrame.Clear()
		m.round = 0
		m.input.Reset()
		return m, tickCmd(m.config.TickRate)
	}

	m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	cmd := m.syncInput()
	return m, tea.Batch(tickCmd(m.config.TickRate), cmd)
}

// syncInput clears the field on a new round and focuses it only while
// the game accepts input.
func (m *Model) syncInput() tea.Cmd {
	f := m.sink.frame

	if f.Round != m.round {
		m.round = f.Round
		m.input.Reset()
	}

	if f.Editable && !m.input.Focused() {
		return m.input.Focus()
	}
	if !f.Editable && m.input.Focused() {
		m.input.Blur()
	}
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	f := m.sink.frame
	switch f.Phase {
	case core.PhaseCountdown:
		return m.renderCountdown(f)
	case core.PhaseGameOver:
		return m.renderGameOver(f)
	case core.PhaseIdle:
		return ""
	default:
		return m.renderPlaying(f)
	}
}

// Run starts the game screen for the given mode.
// Returns true if the user went back to the menu, false if quitting.
func Run(modeID string, deps registry.Deps, store *storage.Store, cfg core.RuntimeConfig) (goBack bool, err error) {
	deps = deps.WithDefaults()

	model, err := NewModel(modeID, deps, store, cfg)
	if err != nil {
		return false, err
	}

	deps.Logger.Debug("starting game screen", "mode", modeID, "fps", cfg.TickRate)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.back, nil
}
