// Package session tracks a single run's level and score and derives the
// time budget for the current level.
package session

import (
	"github.com/vovakirdan/speedkeys/internal/config"
	"github.com/vovakirdan/speedkeys/internal/core"
)

// Session is the mutable state of one run. Level and score only grow
// between two calls to Reset.
type Session struct {
	rules config.Rules
	level int
	score int
}

// New creates a session at level 1 with no points.
func New(rules config.Rules) *Session {
	s := &Session{rules: rules}
	s.Reset()
	return s
}

// Reset starts a new run.
func (s *Session) Reset() {
	s.level = 1
	s.score = 0
}

// AddPoint increments the score by one.
func (s *Session) AddPoint() {
	s.score++
}

// NextLevel increments the level by one.
func (s *Session) NextLevel() {
	s.level++
}

// Level returns the current level.
func (s *Session) Level() int {
	return s.level
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Rules returns the timing rules in effect.
func (s *Session) Rules() config.Rules {
	return s.rules
}

// TimeForLevel returns the time budget in seconds for the current level.
func (s *Session) TimeForLevel() int {
	return TimeFor(s.rules, s.level)
}

// TimeFor computes the budget for an arbitrary level: every LevelsStep
// levels TimeDiscount seconds are removed, never going below TimeMin.
func TimeFor(rules config.Rules, level int) int {
	if level < 1 {
		level = 1
	}
	step := rules.LevelsStep
	if step <= 0 {
		step = 1
	}
	cuts := (level - 1) / step
	return core.Max(rules.TimeMin, rules.TimeInitial-cuts*rules.TimeDiscount)
}

// Bracket is a run of consecutive levels sharing one time budget.
type Bracket struct {
	FirstLevel int
	LastLevel  int // 0 means open-ended (the floor has been reached)
	Seconds    int
}

// Brackets lists the distinct budgets from level 1 up to the level where
// TimeMin is reached, or up to maxLevel, whichever comes first.
func Brackets(rules config.Rules, maxLevel int) []Bracket {
	var out []Bracket
	for level := 1; level <= maxLevel; {
		secs := TimeFor(rules, level)
		last := level
		for last+1 <= maxLevel && TimeFor(rules, last+1) == secs {
			last++
		}

		b := Bracket{FirstLevel: level, LastLevel: last, Seconds: secs}
		if secs == rules.TimeMin || rules.TimeDiscount == 0 {
			b.LastLevel = 0
			out = append(out, b)
			break
		}
		out = append(out, b)
		level = last + 1
	}
	return out
}
