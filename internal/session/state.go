package session

import (
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/codemaster/internal/placement"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/store"
)

// Phase is where a session sits in the learning flow.
type Phase int

const (
	PhaseAnonymous Phase = iota // Not logged in
	PhaseUntested               // Logged in, no placement yet
	PhasePlacement              // Answering the skill test
	PhaseIdle                   // Leveled, no problem on screen
	PhaseActive                 // Working on a problem
	PhaseGraded                 // Showing a correct result
)

var phaseNames = [...]string{"anonymous", "untested", "placement", "idle", "active", "graded"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// MarshalText lets the phase appear by name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Result is the latest grading judgement shown to the learner.
type Result struct {
	Correct       bool
	Feedback      string
	PointsAwarded int

	// Penalty is the deduction applied by an incorrect judgement.
	Penalty int

	// AlreadySolved is set when a correct answer earned nothing because the
	// problem was credited before.
	AlreadySolved bool

	// OracleFailed is set when the judgement is a fallback.
	OracleFailed bool
}

// State is one user's session. It is owned by a single front-end loop and
// is not safe for concurrent use.
type State struct {
	// ID identifies the session in logs and cookies.
	ID string

	// UserName is empty while anonymous.
	UserName string

	// Account is the last persisted view of the user's account.
	Account store.Account

	Phase Phase

	// PlacementLanguage and Questions hold the running skill test.
	PlacementLanguage problemgen.Language
	Questions         []placement.Question

	// Problem is the active problem (nil outside PhaseActive).
	Problem *problemgen.Problem

	// CurrentPoints is what a correct answer to Problem earns now.
	CurrentPoints int

	// Hint is the purchased hint for Problem, if any.
	Hint string

	Result *Result

	// Notice is a one-shot informational message for the UI.
	Notice string
}

// NewState returns an anonymous session.
func NewState() *State {
	return &State{ID: uuid.NewString(), Phase: PhaseAnonymous}
}

// Language returns the account's language.
func (s *State) Language() problemgen.Language {
	return problemgen.Language(s.Account.Language)
}

// Level returns the account's level, 0 before placement.
func (s *State) Level() int {
	return s.Account.Level
}

// LoggedIn reports whether a user is attached.
func (s *State) LoggedIn() bool {
	return s.UserName != ""
}

// clearProblem drops the active problem and everything tied to it.
func (s *State) clearProblem() {
	s.Problem = nil
	s.CurrentPoints = 0
	s.Hint = ""
}

// reset returns the state to anonymous, keeping the session id.
func (s *State) reset() {
	*s = State{ID: s.ID, Phase: PhaseAnonymous}
}

// Clone returns a copy that shares nothing mutable with s. Front-ends use
// it to run an operation off the UI loop and swap the result in.
func (s *State) Clone() *State {
	c := *s
	c.Account = s.Account.Clone()
	c.Questions = slices.Clone(s.Questions)
	if s.Problem != nil {
		p := *s.Problem
		c.Problem = &p
	}
	if s.Result != nil {
		r := *s.Result
		c.Result = &r
	}
	return &c
}
