// Package grading asks the oracle to judge a submission or produce a hint.
// Neither operation returns an error: every failure resolves to a fixed,
// user-facing fallback.
package grading

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/problemgen"
)

// Fallback messages shown to the learner.
const (
	GradeFailedFeedback  = "AI 채점 중 오류 발생. API 키 또는 네트워크를 확인해주세요."
	GradeMissingFeedback = "AI 응답 처리 실패"
	HintFailed           = "힌트 생성 중 오류가 발생했습니다."
	HintMissing          = "힌트를 생성하는 데 실패했습니다."
)

// Outcome is the oracle's judgement of one submission.
type Outcome struct {
	IsCorrect bool
	Feedback  string

	// Failed is set when the call or its response could not be used.
	Failed bool
}

// Grader grades submissions and writes hints.
type Grader struct {
	provider llm.Provider
	config   Config
}

// New creates a Grader.
func New(provider llm.Provider, cfg Config) *Grader {
	return &Grader{provider: provider, config: cfg}
}

type gradeOutput struct {
	IsCorrect *bool  `json:"is_correct"`
	Feedback  string `json:"feedback"`
}

// Grade judges code against problem. It always returns an Outcome.
func (g *Grader) Grade(ctx context.Context, code string, p *problemgen.Problem, lang problemgen.Language) Outcome {
	ctx = llm.WithPurpose(ctx, llm.PurposeGrade)

	req := llm.SingleTurn(gradeSystemPrompt, buildGradeUserMessage(code, p, lang))
	req.Schema = GradeSchema
	req.MaxTokens = g.config.GradeMaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		slog.Warn("grading call failed", "problem", p.ID, "error", err)
		return Outcome{Feedback: GradeFailedFeedback, Failed: true}
	}

	var out gradeOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		slog.Warn("grading response unreadable", "problem", p.ID, "error", err)
		return Outcome{Feedback: GradeFailedFeedback, Failed: true}
	}
	if out.IsCorrect == nil {
		return Outcome{Feedback: GradeMissingFeedback, Failed: true}
	}

	feedback := strings.TrimSpace(out.Feedback)
	if feedback == "" {
		feedback = GradeMissingFeedback
	}
	return Outcome{IsCorrect: *out.IsCorrect, Feedback: feedback}
}

type hintOutput struct {
	Hint string `json:"hint"`
}

// Hint returns a hint for p, or a fallback string when the oracle fails.
func (g *Grader) Hint(ctx context.Context, p *problemgen.Problem, lang problemgen.Language) string {
	ctx = llm.WithPurpose(ctx, llm.PurposeHint)

	req := llm.SingleTurn(hintSystemPrompt, buildHintUserMessage(p, lang))
	req.Schema = HintSchema
	req.MaxTokens = g.config.HintMaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		slog.Warn("hint call failed", "problem", p.ID, "error", err)
		return HintFailed
	}

	var out hintOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		slog.Warn("hint response unreadable", "problem", p.ID, "error", err)
		return HintFailed
	}
	if h := strings.TrimSpace(out.Hint); h != "" {
		return h
	}
	return HintMissing
}
