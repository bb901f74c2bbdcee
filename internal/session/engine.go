// Package session implements the learning flow: login, placement, problem
// requests, hints and grading, with every oracle call gated by the usage
// governor.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/abhisek/codemaster/internal/account"
	"github.com/abhisek/codemaster/internal/governor"
	"github.com/abhisek/codemaster/internal/grading"
	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/placement"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/store"
)

// Grader judges submissions and writes hints. Failures are folded into
// the returned values.
type Grader interface {
	Grade(ctx context.Context, code string, p *problemgen.Problem, lang problemgen.Language) grading.Outcome
	Hint(ctx context.Context, p *problemgen.Problem, lang problemgen.Language) string
}

// Bank supplies skill tests and practice problems.
type Bank interface {
	problemgen.BankSource
	SkillTest(lang problemgen.Language) []placement.Question
}

// Deps are the collaborators of an Engine.
type Deps struct {
	Accounts  *account.Service
	Bank      Bank
	Generator problemgen.Generator
	Grader    Grader
	Governor  *governor.Governor

	// Events records grades and hints. Optional.
	Events store.EventRepo

	// Rand drives bank picks. Optional.
	Rand *rand.Rand
}

// Config selects the engine's policies.
type Config struct {
	Mode      problemgen.Mode
	Placement placement.Policy
	Penalty   PenaltyPolicy
}

// DefaultConfig returns auto mode, linear placement and the
// from-original penalty.
func DefaultConfig() Config {
	return Config{
		Mode:      problemgen.ModeAuto,
		Placement: placement.LinearPolicy,
		Penalty:   PenaltyFromOriginal,
	}
}

// Engine runs session operations. It is safe for concurrent use across
// different States; a single State must not be used concurrently.
type Engine struct {
	accounts  *account.Service
	bank      Bank
	generator problemgen.Generator
	grader    Grader
	governor  *governor.Governor
	events    store.EventRepo
	cfg       Config

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates an Engine.
func NewEngine(deps Deps, cfg Config) *Engine {
	if cfg.Mode == "" {
		cfg.Mode = problemgen.ModeAuto
	}
	if cfg.Placement.Name == "" {
		cfg.Placement = placement.LinearPolicy
	}
	if cfg.Penalty == "" {
		cfg.Penalty = PenaltyFromOriginal
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{
		accounts:  deps.Accounts,
		bank:      deps.Bank,
		generator: deps.Generator,
		grader:    deps.Grader,
		governor:  deps.Governor,
		events:    deps.Events,
		cfg:       cfg,
		rng:       rng,
	}
}

// Config returns the engine's policies.
func (e *Engine) Config() Config { return e.cfg }

// Usage returns the current oracle budget.
func (e *Engine) Usage(ctx context.Context) governor.Usage {
	return e.governor.Status(ctx)
}

// Signup creates an account. The session stays anonymous.
func (e *Engine) Signup(ctx context.Context, st *State, name, password string) error {
	if st.LoggedIn() {
		return ErrWrongPhase
	}
	if err := e.accounts.Signup(ctx, name, password); err != nil {
		return err
	}
	st.Notice = MsgSignupComplete
	return nil
}

// Login attaches an account to the session.
func (e *Engine) Login(ctx context.Context, st *State, name, password string) error {
	a, err := e.accounts.Login(ctx, name, password)
	if err != nil {
		return err
	}

	st.reset()
	st.UserName = strings.TrimSpace(name)
	st.Account = a
	st.Phase = phaseFor(a)

	slog.Info("user logged in", "user", st.UserName, "session", st.ID, "phase", st.Phase)
	return nil
}

// Resume attaches name's account without a password check. It serves
// front-ends that already authenticated the user, such as a signed cookie.
func (e *Engine) Resume(ctx context.Context, st *State, name string) error {
	a, err := e.accounts.Get(ctx, name)
	if err != nil {
		return err
	}
	st.reset()
	st.UserName = name
	st.Account = a
	st.Phase = phaseFor(a)
	return nil
}

// Logout clears everything but the session id.
func (e *Engine) Logout(st *State) {
	if st.LoggedIn() {
		slog.Info("user logged out", "user", st.UserName, "session", st.ID)
	}
	st.reset()
}

// Reload refreshes the account from the store.
func (e *Engine) Reload(ctx context.Context, st *State) error {
	if !st.LoggedIn() {
		return ErrWrongPhase
	}
	a, err := e.accounts.Get(ctx, st.UserName)
	if err != nil {
		return fmt.Errorf("reload account: %w", err)
	}
	st.Account = a
	return nil
}

func phaseFor(a store.Account) Phase {
	if !a.SkillTestTaken || !placement.ValidLevel(a.Level) {
		return PhaseUntested
	}
	if _, err := problemgen.ParseLanguage(a.Language); err != nil {
		return PhaseUntested
	}
	return PhaseIdle
}

// StartPlacement begins the skill test for language.
func (e *Engine) StartPlacement(_ context.Context, st *State, language string) error {
	if st.Phase != PhaseUntested && st.Phase != PhasePlacement {
		return ErrWrongPhase
	}
	lang, err := problemgen.ParseLanguage(language)
	if err != nil {
		return ErrUnsupportedLanguage
	}

	st.PlacementLanguage = lang
	st.Questions = e.bank.SkillTest(lang)
	st.Phase = PhasePlacement
	return nil
}

// CancelPlacement abandons the running skill test.
func (e *Engine) CancelPlacement(st *State) error {
	if st.Phase != PhasePlacement {
		return ErrWrongPhase
	}
	st.PlacementLanguage = ""
	st.Questions = nil
	st.Phase = PhaseUntested
	return nil
}

// SubmitPlacement scores the skill test and levels the account.
func (e *Engine) SubmitPlacement(ctx context.Context, st *State, answers []string) (placement.Result, error) {
	if st.Phase != PhasePlacement {
		return placement.Result{}, ErrWrongPhase
	}

	res := e.cfg.Placement.Evaluate(st.Questions, answers)
	lang := st.PlacementLanguage

	a, err := e.accounts.Update(ctx, st.UserName, func(a *store.Account) error {
		a.SkillTestTaken = true
		a.Language = string(lang)
		a.Level = res.Level
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("save placement: %w", err)
	}

	st.Account = a
	st.PlacementLanguage = ""
	st.Questions = nil
	st.Phase = PhaseIdle
	st.Notice = fmt.Sprintf("테스트 완료! %d문제 중 %d문제를 맞혔습니다. 당신의 레벨은 '%s'로 측정되었습니다.",
		res.Total, res.Correct, placement.LevelName(res.Level))

	slog.Info("placement completed", "user", st.UserName, "language", lang,
		"correct", res.Correct, "total", res.Total, "level", res.Level)
	return res, nil
}

// RequestProblem puts a new problem in front of the learner. Bank problems
// cost nothing; generated ones go through the governor.
func (e *Engine) RequestProblem(ctx context.Context, st *State) error {
	if st.Phase != PhaseIdle && st.Phase != PhaseActive {
		return ErrWrongPhase
	}
	lang, level := st.Language(), st.Level()

	if problemgen.UseBank(e.cfg.Mode, e.bank, lang, level) {
		p, err := e.pick(lang, level, st.Account.HasSolved)
		if errors.Is(err, problemgen.ErrLevelComplete) {
			st.Notice = MsgLevelComplete
		}
		if err != nil {
			return err
		}
		e.activate(st, p)
		return nil
	}

	m, err := e.admit(ctx)
	if err != nil {
		return err
	}
	p, err := e.generator.Generate(m.attach(oracleCtx(ctx, st)), problemgen.GenerateInput{Language: lang, Level: level})
	m.settle(ctx)
	var denied *QuotaDeniedError
	if errors.As(err, &denied) {
		return denied
	}
	if err != nil {
		slog.Warn("problem generation failed", "user", st.UserName, "language", lang, "level", level, "error", err)
		return ErrOracle
	}

	e.activate(st, p)
	return nil
}

func (e *Engine) pick(lang problemgen.Language, level int, solved func(string) bool) (*problemgen.Problem, error) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.bank.Pick(lang, level, solved, e.rng)
}

func (e *Engine) activate(st *State, p *problemgen.Problem) {
	st.Problem = p
	st.CurrentPoints = p.Points
	st.Hint = ""
	st.Result = nil
	st.Phase = PhaseActive
	slog.Debug("problem activated", "user", st.UserName, "problem", p.ID, "source", p.Source, "points", p.Points)
}

// HintCost returns what a hint costs the session's user now.
func (s *State) HintCost() int {
	return HintCost(s.Account.TotalScore)
}

// RequestHint buys a hint for the active problem.
func (e *Engine) RequestHint(ctx context.Context, st *State) error {
	if st.Phase != PhaseActive || st.Problem == nil {
		return ErrWrongPhase
	}
	// Another session of the same learner may have spent points since
	// this one last loaded the account.
	cur, err := e.accounts.Get(ctx, st.UserName)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}
	st.Account = cur
	cost := st.HintCost()
	if cur.TotalScore < cost {
		return &InsufficientScoreError{Cost: cost, Score: cur.TotalScore}
	}
	m, err := e.admit(ctx)
	if err != nil {
		return err
	}

	hint := e.grader.Hint(m.attach(oracleCtx(ctx, st)), st.Problem, st.Language())
	m.settle(ctx)

	a, err := e.accounts.Update(ctx, st.UserName, func(a *store.Account) error {
		if a.TotalScore < cost {
			return &InsufficientScoreError{Cost: cost, Score: a.TotalScore}
		}
		a.TotalScore -= cost
		return nil
	})
	var short *InsufficientScoreError
	if errors.As(err, &short) {
		st.Account.TotalScore = short.Score
		return short
	}
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}

	st.Account = a
	st.Hint = hint
	st.Notice = fmt.Sprintf("%d점을 사용하여 힌트를 얻었습니다!", cost)

	e.recordHint(ctx, st, cost, hint)
	return nil
}

// DismissHint hides the current hint.
func (e *Engine) DismissHint(st *State) error {
	if st.Phase != PhaseActive {
		return ErrWrongPhase
	}
	st.Hint = ""
	return nil
}

var errAlreadySolved = errors.New("already solved")

// SubmitSolution grades code against the active problem.
func (e *Engine) SubmitSolution(ctx context.Context, st *State, code string) (*Result, error) {
	if st.Phase != PhaseActive || st.Problem == nil {
		return nil, ErrWrongPhase
	}
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptySubmission
	}
	m, err := e.admit(ctx)
	if err != nil {
		return nil, err
	}

	p := st.Problem
	out := e.grader.Grade(m.attach(oracleCtx(ctx, st)), code, p, st.Language())
	m.settle(ctx)

	var res *Result
	if out.IsCorrect {
		res = &Result{Correct: true, Feedback: out.Feedback, PointsAwarded: st.CurrentPoints}

		a, err := e.accounts.Update(ctx, st.UserName, func(a *store.Account) error {
			if a.HasSolved(p.ID) {
				return errAlreadySolved
			}
			a.SolvedProblems = append(a.SolvedProblems, p.ID)
			a.TotalScore += res.PointsAwarded
			return nil
		})
		switch {
		case errors.Is(err, errAlreadySolved):
			res.PointsAwarded = 0
			res.AlreadySolved = true
			st.Notice = MsgAlreadySolved
		case err != nil:
			return nil, fmt.Errorf("save result: %w", err)
		default:
			st.Account = a
		}

		st.clearProblem()
		st.Phase = PhaseGraded
	} else {
		next, penalty := e.cfg.Penalty.Apply(p.Points, st.CurrentPoints)
		res = &Result{Feedback: out.Feedback, Penalty: penalty, OracleFailed: out.Failed}
		st.CurrentPoints = next
	}
	st.Result = res

	e.recordGrade(ctx, st, p, res)
	return res, nil
}

// Acknowledge dismisses a correct result and returns to idle.
func (e *Engine) Acknowledge(st *State) error {
	if st.Phase != PhaseGraded {
		return ErrWrongPhase
	}
	st.Result = nil
	st.Phase = PhaseIdle
	return nil
}

// ChangeSettings switches language and level. Any active problem is
// discarded.
func (e *Engine) ChangeSettings(ctx context.Context, st *State, language string, level int) error {
	switch st.Phase {
	case PhaseIdle, PhaseActive, PhaseGraded:
	default:
		return ErrWrongPhase
	}
	lang, err := problemgen.ParseLanguage(language)
	if err != nil {
		return ErrUnsupportedLanguage
	}
	if !placement.ValidLevel(level) {
		return ErrInvalidLevel
	}

	a, err := e.accounts.Update(ctx, st.UserName, func(a *store.Account) error {
		a.Language = string(lang)
		a.Level = level
		return nil
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	st.Account = a
	st.clearProblem()
	st.Result = nil
	st.Phase = PhaseIdle
	return nil
}

// oracleCtx attributes oracle calls to the session's learner.
func oracleCtx(ctx context.Context, st *State) context.Context {
	return llm.WithUser(ctx, st.UserName)
}

// admit checks the governor before an operation that reaches the oracle
// and returns the meter its round trips are charged to.
func (e *Engine) admit(ctx context.Context) (*quotaMeter, error) {
	if err := checkQuota(ctx, e.governor); err != nil {
		return nil, err
	}
	return &quotaMeter{gov: e.governor}, nil
}

func checkQuota(ctx context.Context, gov *governor.Governor) error {
	d := gov.Check(ctx)
	if d.Allowed {
		return nil
	}
	slog.Info("oracle call denied", "reason", d.Reason,
		"daily", d.Usage.DailyCount, "minute", d.Usage.MinuteCount)
	return &QuotaDeniedError{Reason: d.Reason, Usage: d.Usage}
}

// quotaMeter charges the governor once per oracle round trip of a single
// operation, retries included. It is driven by llm.MeteredProvider; when
// the provider chain has no metering stage, settle charges the operation
// once.
type quotaMeter struct {
	gov      *governor.Governor
	attempts int
}

func (m *quotaMeter) attach(ctx context.Context) context.Context {
	return llm.WithMeter(ctx, m)
}

func (m *quotaMeter) Admit(ctx context.Context) error {
	m.attempts++
	return checkQuota(ctx, m.gov)
}

func (m *quotaMeter) Charge(ctx context.Context) {
	if err := m.gov.Commit(context.WithoutCancel(ctx)); err != nil {
		slog.Warn("failed to record oracle call", "error", err)
	}
}

func (m *quotaMeter) settle(ctx context.Context) {
	if m.attempts == 0 {
		m.Charge(ctx)
	}
}

func (e *Engine) recordGrade(ctx context.Context, st *State, p *problemgen.Problem, res *Result) {
	if e.events == nil {
		return
	}
	err := e.events.AppendGradeEvent(context.WithoutCancel(ctx), store.GradeEventData{
		UserName:      st.UserName,
		ProblemID:     p.ID,
		Language:      string(st.Language()),
		Level:         st.Level(),
		Correct:       res.Correct,
		OracleFailed:  res.OracleFailed,
		PointsAwarded: res.PointsAwarded,
		Penalty:       res.Penalty,
		Feedback:      res.Feedback,
	})
	if err != nil {
		slog.Warn("failed to record grade event", "error", err)
	}
}

func (e *Engine) recordHint(ctx context.Context, st *State, cost int, hint string) {
	if e.events == nil {
		return
	}
	err := e.events.AppendHintEvent(context.WithoutCancel(ctx), store.HintEventData{
		UserName:  st.UserName,
		ProblemID: st.Problem.ID,
		Cost:      cost,
		HintText:  hint,
	})
	if err != nil {
		slog.Warn("failed to record hint event", "error", err)
	}
}
