package problemgen

import (
	"fmt"
	"math/rand/v2"
)

// Mode selects where problems come from.
type Mode string

const (
	// ModeAuto uses the bank when it has practice problems for the
	// language and level, otherwise the oracle.
	ModeAuto Mode = "auto"
	ModeBank Mode = "bank"
	ModeAI   Mode = "ai"
)

// ParseMode validates a mode name. Empty means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeBank, ModeAI:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown problem mode %q", s)
}

// BankSource is a fixed set of practice problems.
type BankSource interface {
	// HasPractice reports whether any problems exist for lang and level.
	HasPractice(lang Language, level int) bool

	// Pick returns a uniformly random problem the learner has not solved,
	// or ErrLevelComplete when none remain.
	Pick(lang Language, level int, solved func(id string) bool, rng *rand.Rand) (*Problem, error)
}

// UseBank reports whether a request in mode should be served from bank.
func UseBank(mode Mode, bank BankSource, lang Language, level int) bool {
	switch mode {
	case ModeBank:
		return true
	case ModeAI:
		return false
	}
	return bank != nil && bank.HasPractice(lang, level)
}
