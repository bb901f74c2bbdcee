package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/codemaster/internal/account"
	"github.com/abhisek/codemaster/internal/governor"
)

// Messages shown to the learner.
const (
	MsgQuotaDenied    = "API 호출 한도에 도달했습니다. 잠시 후 다시 시도해주세요."
	MsgAlreadySolved  = "이미 해결한 문제입니다. 점수는 추가되지 않습니다."
	MsgLevelComplete  = "이 레벨의 모든 문제를 해결했습니다! 설정에서 레벨을 변경해 보세요."
	MsgSignupComplete = "회원가입 완료! 로그인하여 학습을 시작하세요."
)

var (
	ErrWrongPhase          = errors.New("지금은 할 수 없는 작업입니다.")
	ErrEmptySubmission     = errors.New("코드를 입력해주세요.")
	ErrUnsupportedLanguage = errors.New("지원하지 않는 언어입니다.")
	ErrInvalidLevel        = errors.New("레벨은 1에서 5 사이여야 합니다.")

	// ErrOracle means the oracle did not produce a problem. The call still
	// counted against the budget.
	ErrOracle = errors.New("문제 생성에 실패했습니다. 잠시 후 다시 시도해주세요.")
)

// IsValidation reports whether err is an input or flow error that leaves
// the state untouched.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrWrongPhase, ErrEmptySubmission, ErrUnsupportedLanguage, ErrInvalidLevel,
		account.ErrEmptyCredentials, account.ErrDuplicateName, account.ErrInvalidCredentials,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// QuotaDeniedError is returned when the governor refuses an oracle call.
type QuotaDeniedError struct {
	Reason governor.Reason
	Usage  governor.Usage
}

func (e *QuotaDeniedError) Error() string {
	return MsgQuotaDenied
}

// Detail describes the remaining budget.
func (e *QuotaDeniedError) Detail() string {
	if e.Reason == governor.ReasonMinuteLimit {
		return fmt.Sprintf("분당 AI 사용량 %d / %d 회 (%d초 후 재시도)",
			e.Usage.MinuteCount, e.Usage.MinuteLimit, int(e.Usage.RetryAfter.Round(time.Second)/time.Second))
	}
	return fmt.Sprintf("오늘 AI 사용량 %d / %d 회", e.Usage.DailyCount, e.Usage.DailyLimit)
}

// InsufficientScoreError is returned when a hint costs more than the
// learner's score.
type InsufficientScoreError struct {
	Cost  int
	Score int
}

func (e *InsufficientScoreError) Error() string {
	return fmt.Sprintf("힌트를 보려면 최소 %d점이 필요합니다.", e.Cost)
}
