// Package words provides the word list the game draws targets from.
// A Source is immutable after loading; only its RNG advances.
package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
)

//go:embed words.txt
var embeddedWords string

// EmbeddedName is the source name reported for the built-in list.
const EmbeddedName = "embedded:words.txt"

// ErrNoWords is returned when a list contains no usable words.
var ErrNoWords = errors.New("words: list contains no words")

// LoadError describes why a word list could not be loaded.
type LoadError struct {
	Source string // File path or EmbeddedName
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("words: cannot load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source holds the candidate words and draws them uniformly at random.
type Source struct {
	name  string
	words []string
	rng   *rand.Rand
}

// Load reads one word per line from r. Surrounding whitespace is trimmed
// and blank lines are skipped. A zero seed uses the current time.
func Load(r io.Reader, seed int64) (*Source, error) {
	return load("reader", r, seed)
}

// LoadFile reads a word list from disk.
func LoadFile(path string, seed int64) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	return load(path, f, seed)
}

// Default returns the built-in word list.
func Default(seed int64) (*Source, error) {
	return load(EmbeddedName, strings.NewReader(embeddedWords), seed)
}

// Open loads path when set, otherwise the built-in list.
func Open(path string, seed int64) (*Source, error) {
	if path == "" {
		return Default(seed)
	}
	return LoadFile(path, seed)
}

func load(name string, r io.Reader, seed int64) (*Source, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}

	words := lo.Compact(lo.Map(lines, func(line string, _ int) string {
		return strings.TrimSpace(line)
	}))
	if len(words) == 0 {
		return nil, &LoadError{Source: name, Err: ErrNoWords}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Source{
		name:  name,
		words: words,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// readLines splits r on newlines without a line length limit.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if len(lines) == 0 {
				line = strings.TrimPrefix(line, "\ufeff")
			}
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Random returns a word chosen with uniform probability.
func (s *Source) Random() string {
	return s.words[s.rng.Intn(len(s.words))]
}

// Len returns the number of words in the list.
func (s *Source) Len() int {
	return len(s.words)
}

// Words returns a copy of the list in file order.
func (s *Source) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Name returns where the list was loaded from.
func (s *Source) Name() string {
	return s.name
}

// Reseed restarts the random sequence. A zero seed uses the current time.
func (s *Source) Reseed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(seed))
}
