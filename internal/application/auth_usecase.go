package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/internal/domain/repository"
)

type AuthUseCase struct {
	Users  repository.UserRepository
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *logrus.Logger
}

func NewAuthUseCase(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger) *AuthUseCase {
	return &AuthUseCase{Users: users, Hasher: hasher, Tokens: tokens, Logger: logger}
}

type LoginResult struct {
	UserID string
	Token  string
}

func (a *AuthUseCase) HashPassword(plain string) (string, error) {
	return a.Hasher.Hash(plain)
}

func (a *AuthUseCase) ValidatePassword(plain, hash string) bool {
	return a.Hasher.Verify(plain, hash)
}

// Login returns the same InvalidCredentials error whether the email is
// unknown, the account is inactive, or the password is wrong.
func (a *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		a.warn("login rejected: unknown or inactive account", email)
		return nil, errs.InvalidCredentials()
	}
	if !a.ValidatePassword(password, u.HashedPassword) {
		a.warn("login rejected: password mismatch", email)
		return nil, errs.InvalidCredentials()
	}

	token, err := a.Tokens.Issue(u.ID)
	if err != nil {
		if a.Logger != nil {
			a.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		}
		return nil, err
	}
	return &LoginResult{UserID: u.ID, Token: token}, nil
}

func (a *AuthUseCase) warn(msg, email string) {
	if a.Logger != nil {
		a.Logger.WithField("email", email).Warn(msg)
	}
}
