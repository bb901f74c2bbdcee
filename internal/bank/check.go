package bank

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/abhisek/codemaster/internal/placement"
	"github.com/abhisek/codemaster/internal/problemgen"
)

// Issue is one problem found by Check.
type Issue struct {
	Where   string
	Message string
}

func (i Issue) String() string { return i.Where + ": " + i.Message }

// Stats summarizes the bank contents.
type Stats struct {
	Questions map[problemgen.Language]int
	Practice  map[problemgen.Language]int
}

// Stats counts questions and practice problems per language.
func (b *Bank) Stats() Stats {
	st := Stats{
		Questions: map[problemgen.Language]int{},
		Practice:  map[problemgen.Language]int{},
	}
	for _, lang := range problemgen.Languages {
		st.Questions[lang] = len(b.SkillTest(lang))
		for level := placement.MinLevel; level <= placement.MaxLevel; level++ {
			st.Practice[lang] += len(b.Practice(lang, level))
		}
	}
	return st
}

// Check reports structural problems: unknown languages or levels, skill
// test answers that are not among the options, duplicate or empty ids and
// non-positive points.
func (b *Bank) Check() []Issue {
	var issues []Issue
	add := func(where, format string, args ...any) {
		issues = append(issues, Issue{Where: where, Message: fmt.Sprintf(format, args...)})
	}

	for lang, qs := range b.file.SkillTest {
		if _, err := problemgen.ParseLanguage(lang); err != nil {
			add("skill_test."+lang, "unsupported language")
		}
		for i, q := range qs {
			where := fmt.Sprintf("skill_test.%s[%d]", lang, i)
			if q.Question == "" {
				add(where, "empty question")
			}
			if len(q.Options) < 2 {
				add(where, "needs at least two options")
			}
			if !slices.Contains(q.Options, q.Answer) {
				add(where, "answer %q is not one of the options", q.Answer)
			}
		}
	}

	seen := map[string]string{}
	for lang, levels := range b.file.PracticeProblems {
		if _, err := problemgen.ParseLanguage(lang); err != nil {
			add("practice_problems."+lang, "unsupported language")
		}
		for key, problems := range levels {
			if lvl, err := strconv.Atoi(key); err != nil || !placement.ValidLevel(lvl) {
				add("practice_problems."+lang+"."+key, "level must be 1-5")
			}
			for i, p := range problems {
				where := fmt.Sprintf("practice_problems.%s.%s[%d]", lang, key, i)
				switch {
				case p.ID == "":
					add(where, "empty id")
				case seen[p.ID] != "":
					add(where, "duplicate id %q (first at %s)", p.ID, seen[p.ID])
				default:
					seen[p.ID] = where
				}
				if p.Title == "" || p.Description == "" {
					add(where, "title and description are required")
				}
				if p.Points <= 0 {
					add(where, "points must be positive")
				}
			}
		}
	}

	slices.SortFunc(issues, func(a, b Issue) int {
		switch {
		case a.Where < b.Where:
			return -1
		case a.Where > b.Where:
			return 1
		}
		return 0
	})
	return issues
}
