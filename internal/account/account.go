// Package account handles signup and login against the account store.
package account

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/codemaster/internal/store"
)

var (
	ErrEmptyCredentials   = errors.New("모든 필드를 입력해주세요.")
	ErrDuplicateName      = errors.New("이미 존재하는 사용자 이름입니다.")
	ErrInvalidCredentials = errors.New("사용자 이름 또는 비밀번호가 잘못되었습니다.")
)

// Service creates and authenticates accounts.
type Service struct {
	store *store.AccountStore
	cost  int
}

// Option configures a Service.
type Option func(*Service)

// WithCost sets the bcrypt work factor.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService creates a Service over st.
func NewService(st *store.AccountStore, opts ...Option) *Service {
	s := &Service{store: st, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying account store.
func (s *Service) Store() *store.AccountStore { return s.store }

// Signup creates an account with zero score and no placement.
func (s *Service) Signup(ctx context.Context, name, password string) error {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return ErrEmptyCredentials
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.store.Update(ctx, name, func(a *store.Account, exists bool) error {
		if exists {
			return ErrDuplicateName
		}
		*a = store.Account{
			PasswordDigest: string(digest),
			SolvedProblems: []string{},
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("account created", "user", name)
	return nil
}

// Login checks the credentials and returns the account.
func (s *Service) Login(ctx context.Context, name, password string) (store.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return store.Account{}, ErrEmptyCredentials
	}

	a, err := s.store.Get(ctx, name)
	if errors.Is(err, store.ErrAccountNotFound) {
		return store.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return store.Account{}, err
	}

	if isLegacyDigest(a.PasswordDigest) {
		if !legacyMatch(a.PasswordDigest, password) {
			return store.Account{}, ErrInvalidCredentials
		}
		s.upgradeDigest(ctx, name, password, &a)
		return a, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordDigest), []byte(password)); err != nil {
		return store.Account{}, ErrInvalidCredentials
	}
	return a, nil
}

// Get returns the named account.
func (s *Service) Get(ctx context.Context, name string) (store.Account, error) {
	return s.store.Get(ctx, name)
}

// Update applies fn to an existing account and saves it.
func (s *Service) Update(ctx context.Context, name string, fn func(a *store.Account) error) (store.Account, error) {
	var out store.Account
	err := s.store.Update(ctx, name, func(a *store.Account, exists bool) error {
		if !exists {
			return store.ErrAccountNotFound
		}
		if err := fn(a); err != nil {
			return err
		}
		out = a.Clone()
		return nil
	})
	return out, err
}

// Accounts written by the first version of the app hold a hex SHA-256
// of the password. They are rewritten as bcrypt on the next login.
func isLegacyDigest(d string) bool {
	if len(d) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(d)
	return err == nil
}

func legacyMatch(digest, password string) bool {
	sum := sha256.Sum256([]byte(password))
	want := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(digest)), []byte(want)) == 1
}

func (s *Service) upgradeDigest(ctx context.Context, name, password string, a *store.Account) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		slog.Warn("failed to hash password for upgrade", "user", name, "error", err)
		return
	}
	updated, err := s.Update(ctx, name, func(cur *store.Account) error {
		cur.PasswordDigest = string(digest)
		return nil
	})
	if err != nil {
		slog.Warn("failed to upgrade password digest", "user", name, "error", err)
		return
	}
	*a = updated
}
