package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/codemaster/internal/problemgen"
)

const gradeSystemPrompt = `You are an expert programming tutor. Evaluate a user's code submission for a given problem.

Rules:
- Decide whether the code correctly solves the problem for all reasonable inputs, not only the example.
- Do not execute anything; reason about the code.
- Write the feedback in Korean. When the code is wrong, explain what is wrong without giving the full solution.`

const hintSystemPrompt = `You are a helpful programming tutor. A learner is stuck on a problem.

Rules:
- Give one concise hint in Korean that points toward the approach.
- Never include the answer or complete code.`

func writeProblem(b *strings.Builder, p *problemgen.Problem, lang problemgen.Language) {
	fmt.Fprintf(b, "Language: %s\n", lang)
	fmt.Fprintf(b, "Problem: %s\n", p.Title)
	fmt.Fprintf(b, "Description:\n%s\n", p.Description)
	if p.FunctionStub != "" {
		fmt.Fprintf(b, "Function signature: %s\n", p.FunctionStub)
	}
	if p.ExampleInput != "" || p.ExampleOutput != "" {
		fmt.Fprintf(b, "Example input: %s\n", p.ExampleInput)
		fmt.Fprintf(b, "Example output: %s\n", p.ExampleOutput)
	}
}

func buildGradeUserMessage(code string, p *problemgen.Problem, lang problemgen.Language) string {
	var b strings.Builder
	writeProblem(&b, p, lang)
	b.WriteString("\nSubmitted code:\n```\n")
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

func buildHintUserMessage(p *problemgen.Problem, lang problemgen.Language) string {
	var b strings.Builder
	writeProblem(&b, p, lang)
	return b.String()
}
