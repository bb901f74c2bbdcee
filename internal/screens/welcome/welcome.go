package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond

	// Ticks a finished snippet stays on screen before the next one starts.
	holdTicks = 12
)

// snippets are typed out in turn, one per supported language.
var snippets = []struct {
	lang, code, output string
}{
	{"Python", `print("hi")`, "hi"},
	{"C", `printf("hi\n");`, "hi"},
	{"Java", `System.out.println("hi");`, "hi"},
}

type tickMsg time.Time

// WelcomeScreen types hello-world lines in each language until a key is
// pressed, then replaces itself with the screen next returns.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// typing returns the snippet on screen and how many of its runes are typed.
func (w *WelcomeScreen) typing() (int, int) {
	t := w.tickCount
	for {
		for i, s := range snippets {
			n := len([]rune(s.code))
			if t < n+holdTicks {
				return i, min(t, n)
			}
			t -= n + holdTicks
		}
	}
}

func (w *WelcomeScreen) renderTerminal() string {
	i, typed := w.typing()
	s := snippets[i]
	code := []rune(s.code)

	cursor := "_"
	if w.tickCount%2 == 1 {
		cursor = " "
	}
	lines := []string{
		theme.Subtitle.Render("● ● ●  ") + theme.Selected.Render(s.lang),
		"",
		theme.Code.Render("> "+string(code[:typed])) + cursor,
	}
	if typed == len(code) {
		lines = append(lines, theme.Body.Render(s.output))
	}
	return theme.Card.Width(34).Render(strings.Join(lines, "\n"))
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderTerminal()}
	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			theme.Body.Bold(true).Render("AI와 함께하는 코딩 연습"),
			"",
			theme.Hint.Render("아무 키나 눌러 시작하세요"),
		)
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
