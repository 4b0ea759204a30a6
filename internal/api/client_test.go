package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// staticToken is a TokenSource with a fixed value.
type staticToken string

func (t staticToken) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.URL, staticToken(token), nil), srv
}

func TestDo_AttachesBearerWhenTokenPresent(t *testing.T) {
	var gotAuth, gotAccept string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`[]`))
	}), "tok-123")

	_, err := c.ListAuthors(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestDo_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var hasHeader bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasHeader = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}), "")

	_, err := c.ListAuthors(context.Background())
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
	assert.False(t, hasHeader)
}

func TestListBooks_PayloadDefaults(t *testing.T) {
	var payload map[string]json.RawMessage
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/book/_list", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"content":[],"totalPages":0}`))
	}), "")

	_, err := c.ListBooks(context.Background(), ListBooksRequest{Page: 2})
	require.NoError(t, err)

	assert.JSONEq(t, `2`, string(payload["page"]))
	assert.JSONEq(t, `10`, string(payload["size"]))
	assert.JSONEq(t, `"id"`, string(payload["sortBy"]))
	assert.JSONEq(t, `"DESC"`, string(payload["sortOrder"]))
	// Unset author filter serializes as an explicit null.
	assert.JSONEq(t, `null`, string(payload["authorId"]))
}

func TestCheckResponse_401FiresCallbackOnce(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
	}), "stale")

	fired := 0
	c.OnSessionExpired(func() { fired++ })

	_, err := c.GetBook(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.Equal(t, 1, fired)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestCheckResponse_TokenErrorCodeFiresCallback(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"code":"TOKEN_EXPIRED","description":"token expired"}]}`))
	}), "stale")

	fired := 0
	c.OnSessionExpired(func() { fired++ })

	err := c.DeleteBook(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.Equal(t, 1, fired)
}

func TestCheckResponse_StructuredErrors(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"code":"EMPTY_LOGIN","description":"login must not be empty"}]}`))
	}), "")

	_, err := c.SignIn(context.Background(), SignInRequest{})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRemote, apiErr.Kind)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "EMPTY_LOGIN", apiErr.Details[0].Code)
	assert.Equal(t, "EMPTY_LOGIN: login must not be empty", apiErr.Error())
}

func TestCheckResponse_BareArrayBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`[{"code":"DUPLICATE_LOGIN","description":"login taken"}]`))
	}), "")

	err := c.SignUp(context.Background(), SignUpRequest{Login: "reader"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRemote, apiErr.Kind)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "DUPLICATE_LOGIN", apiErr.Details[0].Code)
}

func TestCheckResponse_PlainMessageBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"book not found"}`))
	}), "")

	_, err := c.GetBook(context.Background(), 99)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRemote, apiErr.Kind)
	assert.Equal(t, "book not found", apiErr.Message)
}

func TestCheckResponse_UnparseableBodyFallsBackToStatus(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}), "")

	_, err := c.GetBook(context.Background(), 1)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRemote, apiErr.Kind)
	assert.NotEmpty(t, apiErr.Message)
}

func TestDoJSON_MalformedSuccessBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}), "")

	_, err := c.GetBook(context.Background(), 1)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnexpected, apiErr.Kind)
}

func TestDoJSON_UnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL, srv.URL, staticToken(""), nil)

	_, err := c.ListAuthors(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnexpected, apiErr.Kind)
	assert.Equal(t, "service unreachable", apiErr.Message)
}

func TestProfile_401BypassesSessionExpiredCallback(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/profile", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}), "stale")

	fired := 0
	c.OnSessionExpired(func() { fired++ })

	_, err := c.Profile(context.Background())

	assert.True(t, errors.Is(err, ErrNotAuthenticated))
	assert.Zero(t, fired, "a missing session is not an expiring one")
}

func TestProfile_Success(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(catalog.Profile{
			Login:       "reader",
			Authorities: []string{"ROLE_USER"},
		})
	}), "tok")

	profile, err := c.Profile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "reader", profile.Login)
	assert.Equal(t, []string{"ROLE_USER"}, profile.Authorities)
}

func TestSignIn_DecodesTokenAndUser(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/signIn", r.URL.Path)
		var req SignInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "reader", req.Login)
		_, _ = w.Write([]byte(`{
			"token":{"value":"tok-abc","expirationTimestamp":1900000000},
			"user":{"login":"reader","authorities":["ROLE_USER"]}
		}`))
	}), "")

	resp, err := c.SignIn(context.Background(), SignInRequest{Login: "reader", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", resp.Token.Value)
	assert.Equal(t, int64(1900000000), resp.Token.ExpirationTimestamp)
	assert.Equal(t, "reader", resp.User.Login)
}

func TestDisplayAndDetails(t *testing.T) {
	structured := &Error{Kind: KindRemote, Details: []FieldError{{Code: "EMPTY_TITLE"}}}
	assert.Equal(t, "EMPTY_TITLE", Display(structured, "fallback"))
	assert.Equal(t, structured.Details, Details(structured))

	plain := &Error{Kind: KindRemote, Message: "boom"}
	assert.Equal(t, "boom", Display(plain, "fallback"))
	assert.Equal(t, []FieldError{{Code: "REMOTE_ERROR", Description: "boom"}}, Details(plain))

	assert.Equal(t, "fallback", Display(errors.New("opaque"), "fallback"))
	assert.Equal(t, []FieldError{{Code: "UNEXPECTED_ERROR", Description: "request failed"}}, Details(errors.New("opaque")))
}
