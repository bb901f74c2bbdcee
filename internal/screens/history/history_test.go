package history

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/screens/shared/sharedtest"
	"github.com/abhisek/codemaster/internal/store"
)

func TestLoadsOnlyTheUsersGrades(t *testing.T) {
	f := sharedtest.New(t)
	f.LoginLeveled(t, "kim", 0)
	ctx := t.Context()

	for _, e := range []store.GradeEventData{
		{UserName: "kim", ProblemID: "py-1-001", Language: "Python", Level: 1, Penalty: 4, Feedback: "경계값을 확인하세요"},
		{UserName: "lee", ProblemID: "c-1-001", Language: "C", Level: 1, Correct: true, PointsAwarded: 10},
		{UserName: "kim", ProblemID: "py-1-001", Language: "Python", Level: 1, Correct: true, PointsAwarded: 16},
	} {
		if err := f.Events.AppendGradeEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	h := New(f.Session)
	h.Update(h.Init()())

	if !h.loaded || h.errMsg != "" {
		t.Fatalf("load failed: %q", h.errMsg)
	}
	if len(h.grades) != 2 {
		t.Fatalf("expected 2 grades for kim, got %d", len(h.grades))
	}
	if !h.grades[0].Correct {
		t.Error("newest grade should come first")
	}

	view := h.View(120, 30)
	if !strings.Contains(view, "정답 +16") || !strings.Contains(view, "오답 -4") {
		t.Errorf("view missing outcomes:\n%s", view)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(h.View(120, 30), "경계값을 확인하세요") {
		t.Error("expanded row should show the feedback")
	}
}

func TestEmptyHistory(t *testing.T) {
	f := sharedtest.New(t)
	f.LoginLeveled(t, "kim", 0)

	h := New(f.Session)
	h.Update(h.Init()())

	if !strings.Contains(h.View(100, 30), "제출 기록이 없습니다") {
		t.Error("expected the empty-state message")
	}
}
