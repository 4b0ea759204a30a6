// Package session owns sign-in, sign-up, sign-out and session restoration.
// It is the sole writer of the credential store and the registrant of the
// pipeline's session-expired callback.
package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/credentials"
	"github.com/blackwell-systems/catalogctl/internal/store"
)

// Controller drives the session state machine:
// unauthenticated → authenticating → authenticated, with any failure or an
// explicit sign-out returning to unauthenticated.
type Controller struct {
	store  *store.Store
	client *api.Client
	creds  *credentials.Store
	log    *zap.Logger
}

// New wires the controller and registers the session-expired callback.
func New(st *store.Store, client *api.Client, creds *credentials.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{store: st, client: client, creds: creds, log: log}
	client.OnSessionExpired(c.sessionExpired)
	return c
}

// SignUpParams is the registration form payload.
type SignUpParams struct {
	Email     string
	FirstName string
	LastName  string
	Login     string
	Password  string
}

// SignIn exchanges credentials for a token, persists it with the profile,
// and dispatches the session transition. On failure the session stays
// unauthenticated and the normalized errors are dispatched and returned.
//
// Sign-in fails closed: there is no fallback response for any particular
// login/password pair.
func (c *Controller) SignIn(ctx context.Context, email, login, password string) error {
	c.store.Dispatch(store.SignInRequested{})

	resp, err := c.client.SignIn(ctx, api.SignInRequest{
		Email:    email,
		Login:    login,
		Password: password,
	})
	if err != nil {
		c.log.Info("sign-in failed", zap.String("login", login), zap.Error(err))
		c.store.Dispatch(store.SignInFailed{Errors: api.Details(err)})
		return err
	}

	profile := resp.User
	if err := c.creds.Save(credentials.Credentials{
		Token:     resp.Token.Value,
		ExpiresAt: resp.Token.ExpirationTimestamp,
		Profile:   &profile,
	}); err != nil {
		c.log.Error("persisting credentials", zap.Error(err))
		c.store.Dispatch(store.SignInFailed{Errors: []api.FieldError{
			{Code: "CREDENTIAL_STORE_ERROR", Description: err.Error()},
		}})
		return err
	}

	c.store.Dispatch(store.SignInSucceeded{Profile: profile})
	return nil
}

// SignUp registers a new user. No credential is persisted on success; the
// user signs in afterwards.
func (c *Controller) SignUp(ctx context.Context, params SignUpParams) error {
	c.store.Dispatch(store.SignUpRequested{})

	err := c.client.SignUp(ctx, api.SignUpRequest{
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Login:     params.Login,
		Password:  params.Password,
	})
	if err != nil {
		c.store.Dispatch(store.SignUpFailed{Errors: api.Details(err)})
		return err
	}
	c.store.Dispatch(store.SignUpSucceeded{})
	return nil
}

// SignOut clears every credential field and resets the session slice.
func (c *Controller) SignOut() {
	if err := c.creds.Clear(); err != nil {
		c.log.Warn("clearing credentials", zap.Error(err))
	}
	c.store.Dispatch(store.SignedOut{})
}

// Restore attempts a cookie-authenticated profile fetch, as done on
// startup. A 401 means "not signed in" and triggers
// sign-out rather than an error; other failures surface as session errors.
func (c *Controller) Restore(ctx context.Context) error {
	c.store.Dispatch(store.ProfileRequested{})

	profile, err := c.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrNotAuthenticated) {
			c.SignOut()
			return nil
		}
		c.store.Dispatch(store.ProfileFailed{Message: api.Display(err, "Profile fetch failed")})
		return err
	}

	c.store.Dispatch(store.ProfileLoaded{Profile: profile})
	return nil
}

// sessionExpired runs when the pipeline classifies a response as an
// authentication failure: drop the credential and reset the session. This
// is the sole channel by which a failed request forces logout; restoration
// is attempted again on the next startup.
func (c *Controller) sessionExpired() {
	c.log.Info("session expired, forcing sign-out")
	if err := c.creds.Clear(); err != nil {
		c.log.Warn("clearing credentials", zap.Error(err))
	}
	c.store.Dispatch(store.SessionExpired{})
}
