package session

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	userdomain "github.com/BruksfildServices01/estate-listings/internal/domain/user"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/identity"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

var (
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
	ErrInvalidEmailDomain = httperr.ErrBusiness("invalid_email_domain")
)

// ======================================================
// REGISTER
// ======================================================

type RegisterInput struct {
	Name     string
	LastName string
	Email    string
	Password string
	Phone    string
}

type Register struct {
	users       userdomain.Repository
	audit       audit.Sink
	emailDomain func(email string) bool
	cost        int
}

// NewRegister wires registration. emailDomain reports whether the email's
// domain can receive mail.
func NewRegister(
	users userdomain.Repository,
	sink audit.Sink,
	emailDomain func(email string) bool,
) *Register {
	return &Register{
		users:       users,
		audit:       sink,
		emailDomain: emailDomain,
		cost:        bcrypt.DefaultCost,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if !uc.emailDomain(email) {
		return nil, ErrInvalidEmailDomain
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   u.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: u.ID,
	})

	return u, nil
}

// ======================================================
// LOGIN
// ======================================================

type Login struct {
	users  userdomain.Repository
	tokens *identity.Tokens
}

func NewLogin(users userdomain.Repository, tokens *identity.Tokens) *Login {
	return &Login{users: users, tokens: tokens}
}

// Execute checks the password and returns the user with a signed session
// token. Unknown email and wrong password are indistinguishable.
func (uc *Login) Execute(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := uc.users.FindByEmail(ctx, email)
	if errors.Is(err, httperr.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if u.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.tokens.Sign(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
