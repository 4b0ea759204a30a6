package api

import (
	"context"
	"io"
	"net/http"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// SignInRequest is the credential-issuing payload.
type SignInRequest struct {
	Email    string `json:"email"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Token is the issued bearer credential.
type Token struct {
	Value               string `json:"value"`
	ExpirationTimestamp int64  `json:"expirationTimestamp"`
}

// SignInResponse carries the issued token and the signed-in profile.
type SignInResponse struct {
	Token Token           `json:"token"`
	User  catalog.Profile `json:"user"`
}

// SignUpRequest is the registration payload. No credential is issued on
// success; the user signs in afterwards.
type SignUpRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Login     string `json:"login"`
	Password  string `json:"password"`
}

// SignIn exchanges credentials for a token and profile.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (SignInResponse, error) {
	var resp SignInResponse
	err := c.doJSON(ctx, http.MethodPost, c.userURL("user", "signIn"), req, &resp)
	return resp, err
}

// SignUp registers a new user.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	return c.doJSON(ctx, http.MethodPost, c.userURL("user", "signUp"), req, nil)
}

// Profile fetches the current profile over the ambient cookie session.
//
// A 401 here means "no session", which the caller owns (forced sign-out,
// not an error), so this path returns ErrNotAuthenticated instead of going
// through the session-expired classification.
func (c *Client) Profile(ctx context.Context) (catalog.Profile, error) {
	var profile catalog.Profile
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL("profile"), nil)
	if err != nil {
		return profile, &Error{Kind: KindUnexpected, Message: "building request: " + err.Error()}
	}
	resp, err := c.do(req)
	if err != nil {
		return profile, &Error{Kind: KindUnexpected, Message: "service unreachable"}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return profile, ErrNotAuthenticated
	}
	if err := c.checkResponse(resp); err != nil {
		return profile, err
	}
	if err := decodeJSON(resp.Body, &profile); err != nil {
		return profile, err
	}
	return profile, nil
}
