package api

import (
	"errors"
	"net/http"

	"github.com/abhisek/codemaster/internal/account"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/session"
)

var (
	errUnauthorized = errors.New("로그인이 필요합니다.")
	errBadRequest   = errors.New("잘못된 요청입니다.")
	errInternal     = errors.New("서버 오류가 발생했습니다.")
)

// StatusFromError maps session and account errors to HTTP status codes.
func StatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var quota *session.QuotaDeniedError
	if errors.As(err, &quota) {
		return http.StatusTooManyRequests
	}
	var funds *session.InsufficientScoreError
	if errors.As(err, &funds) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, errUnauthorized), errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, account.ErrDuplicateName),
		errors.Is(err, session.ErrWrongPhase),
		errors.Is(err, problemgen.ErrLevelComplete):
		return http.StatusConflict
	case errors.Is(err, errBadRequest), session.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrOracle):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
