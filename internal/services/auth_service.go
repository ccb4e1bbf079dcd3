package services

import (
	"errors"

	"medishare/internal/domain"
	"medishare/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Accounts *repos.AccountRepo
}

func NewAuthService(accounts *repos.AccountRepo) *AuthService {
	return &AuthService{Accounts: accounts}
}

// Login checks credentials and binds the session to the account. Accounts
// without a password hash (marketplace members) cannot sign in here.
func (s *AuthService) Login(sid, email, password string) (*domain.Account, error) {
	a, err := s.Accounts.ByEmail(email)
	if err != nil || a.Hash == "" {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Accounts.BindSession(sid, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Accounts.UnbindSession(sid)
}

func (s *AuthService) CurrentAccount(sid string) (*domain.Account, error) {
	return s.Accounts.SessionAccount(sid)
}
