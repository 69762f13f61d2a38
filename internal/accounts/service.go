package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/redline/internal/model"
)

// Service provides in-memory lookup over the chart of accounts. It is
// immutable after construction.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts. Later duplicates of
// a code are ignored.
func NewService(accounts []model.Account) *Service {
	byCode := make(map[string]model.Account, len(accounts))
	kept := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := byCode[a.Code]; dup {
			continue
		}
		byCode[a.Code] = a
		kept = append(kept, a)
	}
	return &Service{accounts: kept, byCode: byCode}
}

// Default returns a Service over DefaultChart.
func Default() *Service {
	return NewService(DefaultChart())
}

// Load reads accounts/chart-of-accounts.csv from a project root and returns a Service.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, "accounts", "chart-of-accounts.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts in chart order.
func (s *Service) All() []model.Account {
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Codes returns every account code in chart order.
func (s *Service) Codes() []string {
	codes := make([]string, len(s.accounts))
	for i, a := range s.accounts {
		codes[i] = a.Code
	}
	return codes
}

// Get returns an account by code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// ByClass returns all accounts of the given class.
func (s *Service) ByClass(class model.AccountClass) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Class == class {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	dir := filepath.Join(root, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	path := filepath.Join(dir, "chart-of-accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
