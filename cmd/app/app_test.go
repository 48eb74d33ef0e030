package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/auth"
	"blogapi/internal/config"
)

const testSecret = "e2e-secret"

type client struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()

	cfg := &config.Config{
		ServerPort: 8080,
		DB: config.DB{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "blog.db"),
		},
		JWTSecretKey:         testSecret,
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
		BcryptCost:           bcrypt.MinCost,
		ShutdownTimeout:      time.Second,
	}
	require.NoError(t, cfg.Validate())

	logger, _ := test.NewNullLogger()

	application, err := App(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })

	return &client{t: t, router: application.Router}
}

func (c *client) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	return rr
}

func (c *client) register(username, email, password string) map[string]any {
	c.t.Helper()

	rr := c.do(http.MethodPost, "/auth/register", "", map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(c.t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode(c.t, rr)
}

func (c *client) login(email, password string) auth.TokenPair {
	c.t.Helper()

	rr := c.do(http.MethodPost, "/auth/login", "", map[string]any{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, rr.Code, rr.Body.String())

	var pair auth.TokenPair
	require.NoError(c.t, json.Unmarshal(rr.Body.Bytes(), &pair))
	return pair
}

// user registers and logs in, returning the new id and an access token.
func (c *client) user(username string) (int64, string) {
	c.t.Helper()

	email := username + "@x.com"
	created := c.register(username, email, "s3cret!pw")
	pair := c.login(email, "s3cret!pw")
	return int64(created["id"].(float64)), pair.AccessToken
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func TestAliceScenario(t *testing.T) {
	c := newClient(t)

	created := c.register("alice", "alice@x.com", "s3cret!pw")
	assert.Equal(t, "alice", created["username"])
	assert.NotContains(t, created, "password")
	assert.NotEmpty(t, created["created_at"])

	pair := c.login("alice@x.com", "s3cret!pw")
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	rr := c.do(http.MethodGet, "/users", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"email":"alice@x.com"`)
	assert.NotContains(t, rr.Body.String(), "password")

	userPath := fmt.Sprintf("/users/%d", int64(created["id"].(float64)))

	rr = c.do(http.MethodDelete, userPath, pair.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = c.do(http.MethodGet, userPath, pair.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "user not found", decode(t, rr)["error"])
}

func TestRegisterRules(t *testing.T) {
	c := newClient(t)
	c.register("alice", "alice@x.com", "s3cret!pw")

	rr := c.do(http.MethodPost, "/auth/register", "", map[string]any{
		"username": "alice2",
		"email":    "alice@x.com",
		"password": "s3cret!pw",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "email already registered", decode(t, rr)["error"])

	// a taken email is reported before any other field error
	rr = c.do(http.MethodPost, "/auth/register", "", map[string]any{
		"username": "b",
		"email":    "alice@x.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, map[string]any{"error": "email already registered"}, decode(t, rr))

	// exact-match uniqueness: a different case is a different email
	c.register("alice3", "Alice@x.com", "s3cret!pw")

	rr = c.do(http.MethodPost, "/auth/register", "", map[string]any{
		"username": "b",
		"email":    "nope",
		"password": "short",
		"id":       7,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	fields := decode(t, rr)["fields"].(map[string]any)
	assert.Len(t, fields, 4)
	assert.Equal(t, "is read-only", fields["id"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	c := newClient(t)
	c.register("alice", "alice@x.com", "s3cret!pw")

	wrong := c.do(http.MethodPost, "/auth/login", "", map[string]any{"email": "alice@x.com", "password": "wrong!pass"})
	unknown := c.do(http.MethodPost, "/auth/login", "", map[string]any{"email": "ghost@x.com", "password": "wrong!pass"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	assert.JSONEq(t, `{"error":"invalid credentials"}`, wrong.Body.String())
}

func TestTokens(t *testing.T) {
	c := newClient(t)
	c.register("alice", "alice@x.com", "s3cret!pw")
	pair := c.login("alice@x.com", "s3cret!pw")

	t.Run("protected routes need a token", func(t *testing.T) {
		rr := c.do(http.MethodGet, "/posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"unauthorized"}`, rr.Body.String())

		rr = c.do(http.MethodGet, "/posts", "not.a.jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("logout does not revoke", func(t *testing.T) {
		rr := c.do(http.MethodPost, "/auth/logout", pair.AccessToken, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "logged out", decode(t, rr)["message"])

		rr = c.do(http.MethodGet, "/posts", pair.AccessToken, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("logout needs a token", func(t *testing.T) {
		rr := c.do(http.MethodPost, "/auth/logout", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired access token", func(t *testing.T) {
		past := auth.NewTokenIssuer(testSecret, time.Hour, 24*time.Hour).
			WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		expired, err := past.Issue(1, "alice@x.com", auth.AccessToken)
		require.NoError(t, err)

		rr := c.do(http.MethodGet, "/posts", expired, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		forged, err := auth.NewTokenIssuer("other", time.Hour, time.Hour).Issue(1, "alice@x.com", auth.AccessToken)
		require.NoError(t, err)

		rr := c.do(http.MethodGet, "/posts", forged, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("refresh", func(t *testing.T) {
		rr := c.do(http.MethodPost, "/auth/refresh", pair.RefreshToken, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		access := decode(t, rr)["access_token"].(string)

		rr = c.do(http.MethodGet, "/users", access, nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = c.do(http.MethodPost, "/auth/refresh", pair.AccessToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = c.do(http.MethodGet, "/users", pair.RefreshToken, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestPostContentBoundary(t *testing.T) {
	c := newClient(t)
	userID, token := c.user("alice")

	rr := c.do(http.MethodPost, "/posts", token, map[string]any{
		"title":   "Hello",
		"content": "123456789",
		"user_id": userID,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode(t, rr)["fields"], "content")

	rr = c.do(http.MethodPost, "/posts", token, map[string]any{
		"title":   "Hello",
		"content": "1234567890",
		"user_id": userID,
	})
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	post := decode(t, rr)
	assert.NotEmpty(t, post["date_posted"])
	assert.Nil(t, post["category_id"])
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	c := newClient(t)
	_, token := c.user("alice")

	for _, resource := range []string{"users", "posts", "comments", "categories"} {
		rr := c.do(http.MethodDelete, "/"+resource+"/999", token, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, resource)

		rr = c.do(http.MethodGet, "/"+resource+"/abc", token, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, resource)
	}
}

func TestNoOwnershipEnforcement(t *testing.T) {
	c := newClient(t)
	aliceID, aliceToken := c.user("alice")
	_, bobToken := c.user("bob")

	rr := c.do(http.MethodPost, "/posts", aliceToken, map[string]any{
		"title":   "Alice writes",
		"content": "Some long enough content",
		"user_id": aliceID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	postID := int64(decode(t, rr)["id"].(float64))

	rr = c.do(http.MethodPost, "/comments", aliceToken, map[string]any{
		"content": "Alice comments",
		"user_id": aliceID,
		"post_id": postID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	commentID := int64(decode(t, rr)["id"].(float64))

	rr = c.do(http.MethodPost, "/categories", aliceToken, map[string]any{"name": "Alice Travel"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	categoryID := int64(decode(t, rr)["id"].(float64))

	// The post goes last so its cascade does not remove the comment first.
	tests := []struct {
		path   string
		update map[string]any
		field  string
		keep   string
		kept   any
	}{
		{
			path:   fmt.Sprintf("/comments/%d", commentID),
			update: map[string]any{"content": "Bob rewrites this"},
			field:  "content",
			keep:   "post_id",
			kept:   float64(postID),
		},
		{
			path:   fmt.Sprintf("/categories/%d", categoryID),
			update: map[string]any{"name": "Bob Travel"},
			field:  "name",
			keep:   "id",
			kept:   float64(categoryID),
		},
		{
			path:   fmt.Sprintf("/posts/%d", postID),
			update: map[string]any{"title": "Bob edits"},
			field:  "title",
			keep:   "content",
			kept:   "Some long enough content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := c.do(http.MethodPut, tt.path, bobToken, tt.update)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			updated := decode(t, rr)
			assert.Equal(t, tt.update[tt.field], updated[tt.field])
			assert.Equal(t, tt.kept, updated[tt.keep])

			rr = c.do(http.MethodDelete, tt.path, bobToken, nil)
			assert.Equal(t, http.StatusNoContent, rr.Code)

			rr = c.do(http.MethodGet, tt.path, aliceToken, nil)
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestDeletedRowIsGone(t *testing.T) {
	c := newClient(t)
	userID, token := c.user("alice")

	rr := c.do(http.MethodPost, "/posts", token, map[string]any{
		"title":   "Host post",
		"content": "Some long enough content",
		"user_id": userID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	postID := int64(decode(t, rr)["id"].(float64))

	tests := []struct {
		resource string
		body     map[string]any
	}{
		{"comments", map[string]any{"content": "Looks great", "user_id": userID, "post_id": postID}},
		{"categories", map[string]any{"name": "Travel"}},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			rr := c.do(http.MethodPost, "/"+tt.resource, token, tt.body)
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
			path := fmt.Sprintf("/%s/%d", tt.resource, int64(decode(t, rr)["id"].(float64)))

			rr = c.do(http.MethodGet, path, token, nil)
			require.Equal(t, http.StatusOK, rr.Code)

			rr = c.do(http.MethodDelete, path, token, nil)
			assert.Equal(t, http.StatusNoContent, rr.Code)
			assert.Empty(t, rr.Body.String())

			rr = c.do(http.MethodGet, path, token, nil)
			assert.Equal(t, http.StatusNotFound, rr.Code)

			rr = c.do(http.MethodDelete, path, token, nil)
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestReferencesAndCascade(t *testing.T) {
	c := newClient(t)
	aliceID, token := c.user("alice")

	rr := c.do(http.MethodPost, "/categories", token, map[string]any{"name": "Travel"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	categoryID := int64(decode(t, rr)["id"].(float64))

	rr = c.do(http.MethodPost, "/posts", token, map[string]any{
		"title":       "Trip",
		"content":     "Went somewhere nice",
		"user_id":     aliceID,
		"category_id": 999,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "category does not exist", decode(t, rr)["fields"].(map[string]any)["category_id"])

	rr = c.do(http.MethodPost, "/posts", token, map[string]any{
		"title":       "Trip",
		"content":     "Went somewhere nice",
		"user_id":     aliceID,
		"category_id": categoryID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	postID := int64(decode(t, rr)["id"].(float64))
	postPath := fmt.Sprintf("/posts/%d", postID)

	rr = c.do(http.MethodPost, "/comments", token, map[string]any{
		"content": "Looks great",
		"user_id": aliceID,
		"post_id": postID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	commentPath := fmt.Sprintf("/comments/%d", int64(decode(t, rr)["id"].(float64)))

	rr = c.do(http.MethodDelete, fmt.Sprintf("/categories/%d", categoryID), token, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = c.do(http.MethodGet, postPath, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, decode(t, rr)["category_id"])

	rr = c.do(http.MethodDelete, postPath, token, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = c.do(http.MethodGet, commentPath, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "comment not found", decode(t, rr)["error"])
}

func TestHealth(t *testing.T) {
	c := newClient(t)

	rr := c.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, rr.Body.String())
}
