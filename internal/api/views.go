package api

import (
	"github.com/abhisek/codemaster/internal/governor"
	"github.com/abhisek/codemaster/internal/placement"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/session"
)

type userView struct {
	Name       string `json:"name"`
	Language   string `json:"language,omitempty"`
	Level      int    `json:"level,omitempty"`
	LevelName  string `json:"level_name,omitempty"`
	TotalScore int    `json:"total_score"`
	Solved     int    `json:"solved"`
}

type problemView struct {
	*problemgen.Problem
	EditorTemplate string `json:"editor_template"`
}

type questionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type resultView struct {
	Correct       bool   `json:"correct"`
	Feedback      string `json:"feedback"`
	PointsAwarded int    `json:"points_awarded"`
	Penalty       int    `json:"penalty,omitempty"`
	AlreadySolved bool   `json:"already_solved,omitempty"`
	OracleFailed  bool   `json:"oracle_failed,omitempty"`
}

type stateView struct {
	Phase         session.Phase  `json:"phase"`
	User          *userView      `json:"user,omitempty"`
	Questions     []questionView `json:"questions,omitempty"`
	Problem       *problemView   `json:"problem,omitempty"`
	CurrentPoints int            `json:"current_points,omitempty"`
	HintCost      int            `json:"hint_cost,omitempty"`
	Hint          string         `json:"hint,omitempty"`
	Result        *resultView    `json:"result,omitempty"`
	Notice        string         `json:"notice,omitempty"`
}

type usageView struct {
	Date            string `json:"date"`
	DailyCount      int    `json:"daily_count"`
	DailyLimit      int    `json:"daily_limit"`
	MinuteCount     int    `json:"minute_count"`
	MinuteLimit     int    `json:"minute_limit"`
	RetryAfterSecs  int    `json:"retry_after_seconds,omitempty"`
	DailyRemaining  int    `json:"daily_remaining"`
	MinuteRemaining int    `json:"minute_remaining"`
}

type placementView struct {
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
	Percent float64   `json:"percent"`
	Level   int       `json:"level"`
	State   stateView `json:"state"`
}

type submitView struct {
	Result resultView `json:"result"`
	State  stateView  `json:"state"`
}

// renderState builds the client view and consumes the one-shot notice.
func renderState(st *session.State) stateView {
	v := stateView{Phase: st.Phase, Notice: st.Notice}
	st.Notice = ""

	if st.LoggedIn() {
		v.User = &userView{
			Name:       st.UserName,
			Language:   st.Account.Language,
			Level:      st.Account.Level,
			TotalScore: st.Account.TotalScore,
			Solved:     len(st.Account.SolvedProblems),
		}
		if placement.ValidLevel(st.Account.Level) {
			v.User.LevelName = placement.LevelName(st.Account.Level)
		}
	}

	for _, q := range st.Questions {
		v.Questions = append(v.Questions, questionView{Question: q.Question, Options: q.Options})
	}

	if st.Problem != nil {
		v.Problem = &problemView{
			Problem:        st.Problem,
			EditorTemplate: problemgen.EditorTemplate(st.Language(), st.Problem.FunctionStub),
		}
		v.CurrentPoints = st.CurrentPoints
		v.HintCost = st.HintCost()
		v.Hint = st.Hint
	}

	if st.Result != nil {
		r := renderResult(st.Result)
		v.Result = &r
	}
	return v
}

func renderResult(r *session.Result) resultView {
	return resultView{
		Correct:       r.Correct,
		Feedback:      r.Feedback,
		PointsAwarded: r.PointsAwarded,
		Penalty:       r.Penalty,
		AlreadySolved: r.AlreadySolved,
		OracleFailed:  r.OracleFailed,
	}
}

func renderUsage(u governor.Usage) usageView {
	return usageView{
		Date:            u.Date,
		DailyCount:      u.DailyCount,
		DailyLimit:      u.DailyLimit,
		MinuteCount:     u.MinuteCount,
		MinuteLimit:     u.MinuteLimit,
		RetryAfterSecs:  int(u.RetryAfter.Seconds() + 0.5),
		DailyRemaining:  u.DailyRemaining(),
		MinuteRemaining: u.MinuteRemaining(),
	}
}
