// Package sharedtest builds a working shared.Session for screen tests.
package sharedtest

import (
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/codemaster/internal/account"
	"github.com/abhisek/codemaster/internal/bank"
	"github.com/abhisek/codemaster/internal/governor"
	"github.com/abhisek/codemaster/internal/grading"
	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/placement"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/screens/shared"
	"github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/store"
)

// Fixture is a session over temp files, a small bank and a mock oracle.
type Fixture struct {
	Session  *shared.Session
	Accounts *account.Service
	Oracle   *llm.MockProvider
	Events   store.EventRepo
}

// Bank has a three-question Python skill test (answers a, b, c) and two
// level 1 Python problems worth 20 points.
func Bank() *bank.Bank {
	q := func(text, answer string) placement.Question {
		return placement.Question{Question: text, Options: []string{"a", "b", "c"}, Answer: answer}
	}
	p := func(id string) problemgen.Problem {
		return problemgen.Problem{ID: id, Title: "두 수의 합", Description: "a와 b를 더하세요", FunctionStub: "solution(a, b)", Points: 20}
	}
	return bank.New(bank.File{
		SkillTest: map[string][]placement.Question{
			"Python": {q("q1", "a"), q("q2", "b"), q("q3", "c")},
		},
		PracticeProblems: map[string]map[string][]problemgen.Problem{
			"Python": {"1": {p("py-1-001"), p("py-1-002")}},
		},
	})
}

// New builds a Fixture. Home returns a stub screen titled "home".
func New(t *testing.T) *Fixture {
	t.Helper()
	dir := t.TempDir()

	db, err := store.Open(filepath.Join(dir, "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := &Fixture{
		Accounts: account.NewService(store.NewAccountStore(filepath.Join(dir, "users.json")), account.WithCost(bcrypt.MinCost)),
		Oracle:   llm.NewMockProvider(),
		Events:   db.EventRepo(),
	}
	gov := governor.New(store.NewFileUsageStore(filepath.Join(dir, "api_usage.json")), governor.DefaultLimits(), time.Now)
	engine := session.NewEngine(session.Deps{
		Accounts: f.Accounts,
		Bank:     Bank(),
		Grader:   grading.New(f.Oracle, grading.DefaultConfig()),
		Governor: gov,
		Events:   f.Events,
		Rand:     rand.New(rand.NewPCG(7, 7)),
	}, session.Config{Mode: problemgen.ModeBank})

	f.Session = &shared.Session{
		Ctx:    t.Context(),
		Engine: engine,
		State:  session.NewState(),
		Events: f.Events,
		Home:   func() screen.Screen { return Stub("home") },
	}
	return f
}

// LoginLeveled creates name at Python level 1 with score and logs it in.
func (f *Fixture) LoginLeveled(t *testing.T, name string, score int) {
	t.Helper()
	f.Login(t, name)
	_, err := f.Accounts.Update(t.Context(), name, func(a *store.Account) error {
		a.SkillTestTaken = true
		a.Language = "Python"
		a.Level = 1
		a.TotalScore = score
		return nil
	})
	if err != nil {
		t.Fatalf("level account: %v", err)
	}
	if err := f.Session.Engine.Reload(t.Context(), f.Session.State); err != nil {
		t.Fatalf("reload: %v", err)
	}
	f.Session.State.Phase = session.PhaseIdle
}

// Login creates name with password "pw" and logs it in.
func (f *Fixture) Login(t *testing.T, name string) {
	t.Helper()
	ctx := t.Context()
	if err := f.Accounts.Signup(ctx, name, "pw"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := f.Session.Engine.Login(ctx, f.Session.State, name, "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

// Verdict is a canned grading response.
func Verdict(correct bool, feedback string) llm.MockResponse {
	return llm.JSONResponse(map[string]any{"is_correct": correct, "feedback": feedback})
}

// HintResponse is a canned hint response.
func HintResponse(hint string) llm.MockResponse {
	return llm.JSONResponse(map[string]any{"hint": hint})
}

// Drive runs cmd and feeds the resulting messages back into s. Commands
// returned for operation results are run too; commands returned for any
// other message are dropped so cursor blinks cannot loop. Batches are
// flattened. Returns the final screen and the router messages seen.
func Drive(s screen.Screen, cmd tea.Cmd) (screen.Screen, []tea.Msg) {
	var nav []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.ResetScreenMsg:
			nav = append(nav, msg)
		case shared.OpDoneMsg:
			var next tea.Cmd
			s, next = s.Update(msg)
			queue = append(queue, next)
		default:
			s, _ = s.Update(msg)
		}
	}
	return s, nav
}

type stub struct{ title string }

// Stub returns an inert screen with the given title.
func Stub(title string) screen.Screen { return &stub{title: title} }

func (s *stub) Init() tea.Cmd                           { return nil }
func (s *stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stub) View(int, int) string                    { return s.title }
func (s *stub) Title() string                           { return s.title }
