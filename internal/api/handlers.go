package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	var req credentials
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.engine.Signup(r.Context(), rs.entry.state, req.Name, req.Password); err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusCreated, renderState(rs.entry.state))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	var req credentials
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	st := rs.entry.state
	if err := s.engine.Login(r.Context(), st, req.Name, req.Password); err != nil {
		writeError(w, err)
		return
	}

	rs.cookie.Values[keyUser] = st.UserName
	if err := rs.cookie.Save(r, w); err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, renderState(st))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	rs := sessionFrom(r.Context())
	s.engine.Logout(rs.entry.state)

	delete(rs.cookie.Values, keyUser)
	if err := rs.cookie.Save(r, w); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, renderState(sessionFrom(r.Context()).entry.state))
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, renderUsage(s.engine.Usage(r.Context())))
}

func (s *Server) handleStartPlacement(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).entry.state
	if err := s.engine.StartPlacement(r.Context(), st, chi.URLParam(r, "language")); err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, renderState(st))
}

func (s *Server) handleSubmitPlacement(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).entry.state
	var req struct {
		Answers []string `json:"answers"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.engine.SubmitPlacement(r.Context(), st, req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, placementView{
		Correct: res.Correct,
		Total:   res.Total,
		Percent: res.Percent,
		Level:   res.Level,
		State:   renderState(st),
	})
}

func (s *Server) handleProblem(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).entry.state
	if err := s.engine.RequestProblem(r.Context(), st); err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, renderState(st))
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).entry.state
	if err := s.engine.RequestHint(r.Context(), st); err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, renderState(st))
}

func (s *Server) handleDismissHint(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).entry.state
	if err := s.engine.DismissHint(st); err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, renderState(st))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).entry.state
	var req struct {
		Code string `json:"code"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.engine.SubmitSolution(r.Context(), st, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, submitView{Result: renderResult(res), State: renderState(st)})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).entry.state
	if err := s.engine.Acknowledge(st); err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, renderState(st))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).entry.state
	var req struct {
		Language string `json:"language"`
		Level    int    `json:"level"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.engine.ChangeSettings(r.Context(), st, req.Language, req.Level); err != nil {
		writeError(w, err)
		return
	}
	JSON(w, http.StatusOK, renderState(st))
}
