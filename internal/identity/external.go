package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const ExternalTokenHeader = "X-Identity-Token"

var ErrExternalUnauthorized = errors.New("external identity rejected the token")

// ExternalProfile is what the identity provider tells us about a user.
type ExternalProfile struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Phone      string `json:"phone_number"`
}

type ExternalProvider interface {
	UserInfo(ctx context.Context, accessToken string) (*ExternalProfile, error)
}

// UserInfoClient resolves access tokens against an OpenID Connect style
// userinfo endpoint.
type UserInfoClient struct {
	client *resty.Client
	url    string
}

func NewUserInfoClient(url string, timeout time.Duration) *UserInfoClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &UserInfoClient{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

func (u *UserInfoClient) UserInfo(ctx context.Context, accessToken string) (*ExternalProfile, error) {
	var profile ExternalProfile

	resp, err := u.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&profile).
		Get(u.url)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, ErrExternalUnauthorized
	case resp.IsError():
		return nil, fmt.Errorf("userinfo http %d", resp.StatusCode())
	}

	if profile.Subject == "" {
		return nil, ErrExternalUnauthorized
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	return &profile, nil
}
