package session

import (
	"context"
	"errors"

	userdomain "github.com/BruksfildServices01/estate-listings/internal/domain/user"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/identity"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/models"
)

// Credentials are whatever the request carried; either may be empty.
type Credentials struct {
	SessionToken  string
	ExternalToken string
}

type Resolver struct {
	tokens   *identity.Tokens
	users    userdomain.Repository
	external identity.ExternalProvider
}

// NewResolver builds a resolver. external may be nil when no identity
// provider is configured.
func NewResolver(
	tokens *identity.Tokens,
	users userdomain.Repository,
	external identity.ExternalProvider,
) *Resolver {
	return &Resolver{
		tokens:   tokens,
		users:    users,
		external: external,
	}
}

// Resolve returns the signed-in user with properties and credit history
// loaded, or nil when there is no valid credential. Only unexpected
// persistence failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, cred Credentials) (*models.User, error) {

	if cred.SessionToken != "" {
		u, err := r.fromSession(ctx, cred.SessionToken)
		if err != nil || u != nil {
			return u, err
		}
	}

	if cred.ExternalToken != "" && r.external != nil {
		return r.fromExternal(ctx, cred.ExternalToken)
	}

	return nil, nil
}

func (r *Resolver) fromSession(ctx context.Context, raw string) (*models.User, error) {
	claims, err := r.tokens.Parse(raw)
	if err != nil {
		return nil, nil
	}

	u, err := r.users.FindByID(ctx, claims.ID)
	if errors.Is(err, httperr.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// --------------------------------------------------
// External identity (sync on first sight)
// --------------------------------------------------

func (r *Resolver) fromExternal(ctx context.Context, token string) (*models.User, error) {
	log := logger.FromContext(ctx)

	profile, err := r.external.UserInfo(ctx, token)
	if err != nil {
		if !errors.Is(err, identity.ErrExternalUnauthorized) {
			log.Warn().Err(err).Msg("identity provider lookup failed")
		}
		return nil, nil
	}
	if profile.Email == "" {
		log.Warn().Str("subject", profile.Subject).Msg("identity profile has no email")
		return nil, nil
	}

	id, err := r.sync(ctx, profile)
	if err != nil {
		return nil, err
	}

	u, err := r.users.FindByID(ctx, id)
	if errors.Is(err, httperr.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// sync finds the local row for profile, linking by email or creating it
// when needed, and returns its id.
func (r *Resolver) sync(ctx context.Context, profile *identity.ExternalProfile) (string, error) {

	u, err := r.users.FindByExternalID(ctx, profile.Subject)
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, httperr.ErrNotFound) {
		return "", err
	}

	u, err = r.users.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if err := r.users.LinkExternalID(ctx, u.ID, profile.Subject); err != nil {
			return "", err
		}
		return u.ID, nil
	case !errors.Is(err, httperr.ErrNotFound):
		return "", err
	}

	subject := profile.Subject
	created := &models.User{
		Email:      profile.Email,
		Name:       profile.GivenName,
		LastName:   profile.FamilyName,
		Phone:      profile.Phone,
		Role:       models.RoleUser,
		ExternalID: &subject,
	}
	err = r.users.Create(ctx, created)
	if errors.Is(err, httperr.ErrConflict) {
		// another request synced the same identity first
		u, err := r.users.FindByExternalID(ctx, profile.Subject)
		if err != nil {
			return "", err
		}
		return u.ID, nil
	}
	if err != nil {
		return "", err
	}
	return created.ID, nil
}
