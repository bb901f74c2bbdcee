package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrAccountNotFound is returned when a named account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// Account is one user's persisted profile.
type Account struct {
	PasswordDigest string   `json:"password_digest"`
	SkillTestTaken bool     `json:"skill_test_taken"`
	Language       string   `json:"language"` // "" until placement
	Level          int      `json:"level"`    // 0 until placement, then 1..5
	SolvedProblems []string `json:"solved_problems"`
	TotalScore     int      `json:"total_score"`
}

// UnmarshalJSON also reads files written by the first version of the app,
// which kept the digest under "password" and the level as its label
// ("Level 3: 알고리즘").
func (a *Account) UnmarshalJSON(data []byte) error {
	type plain Account
	var raw struct {
		plain
		Level    json.RawMessage `json:"level"`
		Password string          `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Account(raw.plain)
	if a.PasswordDigest == "" {
		a.PasswordDigest = raw.Password
	}
	a.Level = 0
	if len(raw.Level) == 0 || string(raw.Level) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw.Level, &a.Level); err == nil {
		return nil
	}
	var label string
	if err := json.Unmarshal(raw.Level, &label); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if _, err := fmt.Sscanf(label, "Level %d", &a.Level); err != nil {
		a.Level = 0
	}
	return nil
}

// HasSolved reports whether id is in the solved set.
func (a *Account) HasSolved(id string) bool {
	return slices.Contains(a.SolvedProblems, id)
}

// Clone returns a deep copy so callers can mutate it freely.
func (a Account) Clone() Account {
	a.SolvedProblems = slices.Clone(a.SolvedProblems)
	return a
}

// Accounts maps account name to profile. Names are case-sensitive.
type Accounts map[string]Account

// AccountStore persists Accounts as a single JSON file.
type AccountStore struct {
	mu   sync.Mutex
	path string
}

// NewAccountStore returns a store backed by the file at path. The file is
// created on first Save.
func NewAccountStore(path string) *AccountStore {
	return &AccountStore{path: path}
}

// Path returns the backing file path.
func (s *AccountStore) Path() string { return s.path }

// Load returns every account. The mapping is never nil: on a missing or
// malformed file it is empty and the error is a *ReadError.
func (s *AccountStore) Load(_ context.Context) (Accounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *AccountStore) load() (Accounts, error) {
	accounts := Accounts{}
	if err := readJSON(s.path, &accounts); err != nil {
		return Accounts{}, err
	}
	if accounts == nil {
		accounts = Accounts{}
	}
	for name, a := range accounts {
		if a.SolvedProblems == nil {
			a.SolvedProblems = []string{}
			accounts[name] = a
		}
	}
	return accounts, nil
}

// Save overwrites the file with accounts.
func (s *AccountStore) Save(_ context.Context, accounts Accounts) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, accounts)
}

// Get returns a copy of the named account.
func (s *AccountStore) Get(ctx context.Context, name string) (Account, error) {
	accounts, err := s.Load(ctx)
	if err != nil && !isReadError(err) {
		return Account{}, err
	}
	a, ok := accounts[name]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a.Clone(), nil
}

// Put inserts or replaces the named account.
func (s *AccountStore) Put(ctx context.Context, name string, a Account) error {
	return s.Update(ctx, name, func(cur *Account, _ bool) error {
		*cur = a.Clone()
		return nil
	})
}

// Update runs fn on the named account under the store lock and saves the
// result. exists is false when the account is new; fn returning an error
// aborts the write. A missing or malformed file starts over empty; any
// other read failure aborts the write so existing accounts survive it.
func (s *AccountStore) Update(_ context.Context, name string, fn func(a *Account, exists bool) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil && !startsEmpty(err) {
		return fmt.Errorf("load accounts: %w", err)
	}

	a, exists := accounts[name]
	a = a.Clone()
	if err := fn(&a, exists); err != nil {
		return err
	}
	if a.SolvedProblems == nil {
		a.SolvedProblems = []string{}
	}
	accounts[name] = a

	if err := writeJSONAtomic(s.path, accounts); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

func isReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

func startsEmpty(err error) bool {
	var re *ReadError
	return errors.As(err, &re) && (re.NotExist() || re.Malformed())
}
