package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"pos_service/internal/domain"
)

type Account struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Email        string      `yaml:"email"`
	Role         domain.Role `yaml:"role"`
	PasswordHash string      `yaml:"password_hash"`
}

type accountsFile struct {
	Accounts []Account `yaml:"accounts"`
}

// LoadAccounts reads staff accounts from a YAML file of the form
//
//	accounts:
//	  - id: "1"
//	    name: Ama Mensah
//	    email: ama@example.com
//	    role: manager
//	    password_hash: $2a$10$...
func LoadAccounts(path string) ([]Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file %s: %w", path, err)
	}
	var file accountsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", path, err)
	}
	for i, a := range file.Accounts {
		if a.ID == "" || a.Email == "" || a.PasswordHash == "" {
			return nil, fmt.Errorf("users file %s: account %d is missing id, email or password_hash", path, i)
		}
		if !domain.IsValidRole(a.Role) {
			return nil, fmt.Errorf("users file %s: account %s has invalid role '%s'", path, a.ID, a.Role)
		}
	}
	return file.Accounts, nil
}

// CredentialAuthenticator checks passwords against bcrypt hashes.
type CredentialAuthenticator struct {
	accounts map[string]Account
	log      *logrus.Logger
}

func NewCredentialAuthenticator(accounts []Account, logger *logrus.Logger) *CredentialAuthenticator {
	byEmail := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byEmail[normalizeEmail(a.Email)] = a
	}
	return &CredentialAuthenticator{accounts: byEmail, log: logger}
}

func (a *CredentialAuthenticator) Authenticate(_ context.Context, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	account, ok := a.accounts[email]
	if !ok {
		a.log.Warnf("Auth: Login failed - unknown account %s", email)
		return domain.User{}, domain.ErrInvalidCredentials
	}

	if err := CheckPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			a.log.Warnf("Auth: Login failed - incorrect password for %s (ID: %s)", email, account.ID)
			return domain.User{}, domain.ErrInvalidCredentials
		}
		a.log.Errorf("Auth: Error comparing password hash for %s: %v", email, err)
		return domain.User{}, fmt.Errorf("internal error during authentication: %w", err)
	}

	return domain.User{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(password, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
