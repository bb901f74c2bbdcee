// Package bank loads the static problem file: skill test questions per
// language and, optionally, practice problems per language and level.
package bank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/abhisek/codemaster/internal/placement"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/store"
)

//go:embed default_problems.json
var defaultProblems []byte

// File is the on-disk layout of problems.json.
type File struct {
	SkillTest map[string][]placement.Question `json:"skill_test"`

	// PracticeProblems is keyed by language then by level ("1".."5").
	PracticeProblems map[string]map[string][]problemgen.Problem `json:"practice_problems,omitempty"`
}

// Bank is a loaded problem file. It is read-only after Load.
type Bank struct {
	file File
}

// New wraps an in-memory File.
func New(f File) *Bank {
	return &Bank{file: f}
}

// Load reads the bank at path. A missing file is created from the built-in
// default. A malformed file yields an empty bank and a *store.ReadError.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("problem bank not found, writing default", "path", path)
		if werr := store.WriteFileAtomic(path, defaultProblems); werr != nil {
			slog.Warn("failed to write default problem bank", "path", path, "error", werr)
		}
		data, err = defaultProblems, nil
	}
	if err != nil {
		return New(File{}), &store.ReadError{Path: path, Err: err}
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return New(File{}), &store.ReadError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return New(f), nil
}

// Default returns the built-in bank.
func Default() *Bank {
	var f File
	if err := json.Unmarshal(defaultProblems, &f); err != nil {
		panic(fmt.Sprintf("bank: built-in problems.json is invalid: %v", err))
	}
	return New(f)
}

// SkillTest returns the placement questions for lang. May be empty.
func (b *Bank) SkillTest(lang problemgen.Language) []placement.Question {
	return b.file.SkillTest[string(lang)]
}

// Practice returns the practice problems for lang and level.
func (b *Bank) Practice(lang problemgen.Language, level int) []problemgen.Problem {
	return b.file.PracticeProblems[string(lang)][strconv.Itoa(level)]
}

// HasPractice reports whether any practice problems exist for lang and level.
func (b *Bank) HasPractice(lang problemgen.Language, level int) bool {
	return len(b.Practice(lang, level)) > 0
}

// Pick returns a uniformly random practice problem whose id solved does
// not report, or problemgen.ErrLevelComplete when none remain.
func (b *Bank) Pick(lang problemgen.Language, level int, solved func(id string) bool, rng *rand.Rand) (*problemgen.Problem, error) {
	var open []problemgen.Problem
	for _, p := range b.Practice(lang, level) {
		if solved == nil || !solved(p.ID) {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		return nil, problemgen.ErrLevelComplete
	}

	var i int
	if rng != nil {
		i = rng.IntN(len(open))
	} else {
		i = rand.IntN(len(open))
	}

	p := open[i]
	p.Language = lang
	p.Level = level
	p.Source = problemgen.SourceBank
	if p.Points <= 0 {
		p.Points = problemgen.MinPoints
	}
	return &p, nil
}
