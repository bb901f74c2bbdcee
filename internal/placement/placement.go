// Package placement scores the skill test taken before a learner's first
// problem and maps the score to a starting level.
package placement

import (
	"fmt"
	"slices"
)

// Level bounds.
const (
	MinLevel = 1
	MaxLevel = 5
)

// Question is one multiple-choice skill test item.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Result is a scored skill test.
type Result struct {
	Correct int
	Total   int
	Percent float64
	Level   int
}

// Score counts answers matching the question's answer. answers is
// index-aligned with questions; a missing answer counts as wrong.
func Score(questions []Question, answers []string) (correct, total int) {
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.Answer {
			correct++
		}
	}
	return correct, len(questions)
}

// Percent returns correct/total as a percentage. An empty test is 0%.
func Percent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// Policy maps a score to a level through a table of minimum percentages,
// one per level in ascending order.
type Policy struct {
	Name       string
	Thresholds [MaxLevel]int
}

var (
	// LinearPolicy gives one level per 20 percentage points.
	LinearPolicy = Policy{Name: "linear", Thresholds: [MaxLevel]int{0, 20, 40, 60, 80}}

	// LadderPolicy asks for more before each promotion.
	LadderPolicy = Policy{Name: "ladder", Thresholds: [MaxLevel]int{0, 30, 50, 70, 90}}
)

// PolicyByName returns the named policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", LinearPolicy.Name:
		return LinearPolicy, nil
	case LadderPolicy.Name:
		return LadderPolicy, nil
	}
	return Policy{}, fmt.Errorf("unknown placement policy %q", name)
}

// Level returns the highest level whose threshold the score reaches. The
// comparison is exact: a score sitting on a threshold earns that level.
func (p Policy) Level(correct, total int) int {
	level := MinLevel
	if total <= 0 {
		return level
	}
	for i, th := range p.Thresholds {
		// correct/total*100 >= th without floating point.
		if correct*100 >= th*total {
			level = i + 1
		}
	}
	return level
}

// Evaluate scores answers and picks the level.
func (p Policy) Evaluate(questions []Question, answers []string) Result {
	correct, total := Score(questions, answers)
	return Result{
		Correct: correct,
		Total:   total,
		Percent: Percent(correct, total),
		Level:   p.Level(correct, total),
	}
}

// ValidLevel reports whether level is in range.
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

var levelNames = []string{
	"Level 1: 기초 문법",
	"Level 2: 자료 구조",
	"Level 3: 알고리즘",
	"Level 4: 심화",
	"Level 5: 전문가",
}

var levelTopics = []string{
	"very basic syntax",
	"basic data structures",
	"fundamental algorithms",
	"complex topics",
	"advanced topics",
}

// LevelName returns the display label for level.
func LevelName(level int) string {
	if !ValidLevel(level) {
		return "레벨 미정"
	}
	return levelNames[level-1]
}

// LevelNames returns every display label in level order.
func LevelNames() []string {
	return slices.Clone(levelNames)
}

// LevelTopic describes what problems at level should cover.
func LevelTopic(level int) string {
	if !ValidLevel(level) {
		return "general programming concepts"
	}
	return levelTopics[level-1]
}
