package settings

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/placement"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/screens/shared"
	sess "github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/abhisek/codemaster/internal/ui/layout"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

// SettingsScreen changes the learner's language and level. Saving drops
// the active problem.
type SettingsScreen struct {
	s      *shared.Session
	langs  components.Menu
	levels components.Menu
	focus  int // 0 = language, 1 = level
	busy   bool
	errMsg string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen preselecting the current language and level.
func New(s *shared.Session) *SettingsScreen {
	st := s.State

	langItems := make([]components.MenuItem, len(problemgen.Languages))
	for i, l := range problemgen.Languages {
		langItems[i] = components.MenuItem{Label: string(l)}
	}
	levelItems := make([]components.MenuItem, 0, placement.MaxLevel)
	for _, name := range placement.LevelNames() {
		levelItems = append(levelItems, components.MenuItem{Label: name})
	}

	ss := &SettingsScreen{
		s:      s,
		langs:  components.NewMenu(langItems),
		levels: components.NewMenu(levelItems),
	}
	for i, l := range problemgen.Languages {
		if l == st.Language() {
			ss.langs.Select(i)
			ss.langs.Items[i].Note = "현재"
		}
	}
	ss.levels.Select(st.Level() - 1)
	if i := st.Level() - 1; i >= 0 && i < len(levelItems) {
		ss.levels.Items[i].Note = "현재"
	}
	return ss
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "설정"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Tab", Description: "Switch list"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case shared.OpDoneMsg:
		s.busy = false
		s.s.Apply(msg)
		if msg.Err != nil {
			s.errMsg = shared.ErrorText(msg.Err)
			return s, nil
		}
		return s, shared.Pop()

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "left", "right":
			s.focus = 1 - s.focus
			return s, nil
		case "enter":
			return s, s.save()
		}
		if s.focus == 0 {
			s.langs, _ = s.langs.Update(msg)
		} else {
			s.levels, _ = s.levels.Update(msg)
		}
	}
	return s, nil
}

func (s *SettingsScreen) save() tea.Cmd {
	lang := string(problemgen.Languages[s.langs.Selected])
	level := s.levels.Selected + 1
	s.busy = true
	s.errMsg = ""
	engine := s.s.Engine
	return s.s.Run("settings", func(ctx context.Context, st *sess.State) error {
		return engine.ChangeSettings(ctx, st, lang, level)
	})
}

func (s *SettingsScreen) View(width, height int) string {
	heading := func(text string, focused bool) string {
		if focused {
			return theme.Selected.Render(text)
		}
		return theme.Subtitle.Render(text)
	}

	langCol := heading("언어", s.focus == 0) + "\n\n" + s.langs.View()
	levelCol := heading("레벨", s.focus == 1) + "\n\n" + s.levels.View()

	var b strings.Builder
	b.WriteString(theme.Title.Render("학습 설정"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(16).Render(langCol),
		levelCol))
	if s.s.State.Problem != nil {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("저장하면 현재 풀고 있는 문제는 사라집니다."))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := theme.FocusedCard.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
