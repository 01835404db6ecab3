package endpoints

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tilhq/til-in-go/pkg/server/middleware"
)

func sessionCookieFrom(t *testing.T, cookies []*http.Cookie) *http.Cookie {
	t.Helper()
	for _, cookie := range cookies {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestIndexListsAcronyms(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "Alice", "alice", "password123")
	seedAcronymWithCategories(t, ts, user.ID, "OMG", "Oh My God")

	rec := getPage(t, ts, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OMG")
	assert.Contains(t, rec.Body.String(), "Oh My God")
}

func TestIndexEmpty(t *testing.T) {
	ts := newTestServer(t)

	rec := getPage(t, ts, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "There aren't any acronyms yet!")
}

func TestIndexShowsAuthState(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "Alice", "alice", "password123")

	rec := getPage(t, ts, "/")
	assert.Contains(t, rec.Body.String(), "Log in")

	_, cookie := ts.loginSession(user.ID)
	rec = getPage(t, ts, "/", cookie)
	assert.Contains(t, rec.Body.String(), "Log out")
}

func TestIndexSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)

	rec := getPage(t, ts, "/")
	cookie := sessionCookieFrom(t, rec.Result().Cookies())
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	_, ok := ts.Sessions.Get(cookie.Value)
	assert.True(t, ok)
}

func TestAcronymPage(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "Alice", "alice", "password123")
	seedAcronymWithCategories(t, ts, user.ID, "OMG", "Oh My God", "Funny")

	rec := getPage(t, ts, "/acronyms/1")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "OMG means Oh My God")
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Funny")
}

func TestAcronymPageNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := getPage(t, ts, "/acronyms/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserPage(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "Alice", "alice", "password123")
	seedAcronymWithCategories(t, ts, user.ID, "OMG", "Oh My God")

	rec := getPage(t, ts, "/users/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")
	assert.Contains(t, rec.Body.String(), "OMG")
}

func TestUserPageNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := getPage(t, ts, "/users/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAllUsersPage(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "Alice", "alice", "password123")
	ts.seedUser(t, "Bob", "bob", "password123")

	rec := getPage(t, ts, "/users")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")
	assert.Contains(t, rec.Body.String(), "Bob")
}

func TestAllCategoriesPage(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "Alice", "alice", "password123")
	seedAcronymWithCategories(t, ts, user.ID, "OMG", "Oh My God", "Funny", "Informal")

	rec := getPage(t, ts, "/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Funny")
	assert.Contains(t, rec.Body.String(), "Informal")
}

func TestCategoryPage(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "Alice", "alice", "password123")
	seedAcronymWithCategories(t, ts, user.ID, "OMG", "Oh My God", "Funny")

	rec := getPage(t, ts, "/categories/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Funny")
	assert.Contains(t, rec.Body.String(), "OMG")
}

func TestCategoryPageNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := getPage(t, ts, "/categories/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAboutPage(t *testing.T) {
	ts := newTestServer(t)

	rec := getPage(t, ts, "/about")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestLoginPage(t *testing.T) {
	ts := newTestServer(t)

	rec := getPage(t, ts, "/login")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "authentication error")

	rec = getPage(t, ts, "/login?error")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication error")
}

func TestLoginPostSuccess(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "Alice", "alice", "password123")

	form := url.Values{
		"username": {"alice"},
		"password": {"password123"},
	}
	rec := postForm(t, ts, "/login", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookie := sessionCookieFrom(t, rec.Result().Cookies())
	sess, ok := ts.Sessions.Get(cookie.Value)
	require.True(t, ok)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, user.ID, sess.UserID())
}

func TestLoginPostWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "Alice", "alice", "password123")

	form := url.Values{
		"username": {"alice"},
		"password": {"wrongwrong"},
	}
	rec := postForm(t, ts, "/login", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error", rec.Header().Get("Location"))

	cookie := sessionCookieFrom(t, rec.Result().Cookies())
	sess, ok := ts.Sessions.Get(cookie.Value)
	require.True(t, ok)
	assert.False(t, sess.Authenticated())
}

func TestLoginPostUnknownUsername(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{
		"username": {"nobody"},
		"password": {"password123"},
	}
	rec := postForm(t, ts, "/login", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error", rec.Header().Get("Location"))
}

func TestLogoutDestroysSession(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "Alice", "alice", "password123")
	sess, cookie := ts.loginSession(user.ID)

	rec := postForm(t, ts, "/logout", url.Values{}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	_, ok := ts.Sessions.Get(sess.ID())
	assert.False(t, ok, "session must be destroyed, not just deauthenticated")

	expired := sessionCookieFrom(t, rec.Result().Cookies())
	assert.Less(t, expired.MaxAge, 0)
}

func TestRegisterPage(t *testing.T) {
	ts := newTestServer(t)

	rec := getPage(t, ts, "/register")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = getPage(t, ts, "/register?message=username+taken")
	assert.Contains(t, rec.Body.String(), "username taken")
}

func TestRegisterSuccess(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{
		"name":            {"Alice"},
		"username":        {"alice"},
		"password":        {"password123"},
		"confirmPassword": {"password123"},
	}
	rec := postForm(t, ts, "/register", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	user, err := ts.users.FindUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	// Stored as a hash, never plaintext.
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))

	// Registration logs the new user in.
	cookie := sessionCookieFrom(t, rec.Result().Cookies())
	sess, ok := ts.Sessions.Get(cookie.Value)
	require.True(t, ok)
	assert.Equal(t, user.ID, sess.UserID())
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		reason string
	}{
		{
			name: "mismatched passwords",
			form: url.Values{
				"name":            {"Alice"},
				"username":        {"alice"},
				"password":        {"password123"},
				"confirmPassword": {"password456"},
			},
			reason: "passwords don't match",
		},
		{
			name: "short password",
			form: url.Values{
				"name":            {"Alice"},
				"username":        {"alice"},
				"password":        {"short"},
				"confirmPassword": {"short"},
			},
			reason: "password must be at least 8 characters",
		},
		{
			name: "short username",
			form: url.Values{
				"name":            {"Alice"},
				"username":        {"al"},
				"password":        {"password123"},
				"confirmPassword": {"password123"},
			},
			reason: "username must be at least 3 alphanumeric characters",
		},
		{
			name: "non-alphanumeric username",
			form: url.Values{
				"name":            {"Alice"},
				"username":        {"alice!"},
				"password":        {"password123"},
				"confirmPassword": {"password123"},
			},
			reason: "username must be at least 3 alphanumeric characters",
		},
		{
			name: "non-ascii name",
			form: url.Values{
				"name":            {"Ałice"},
				"username":        {"alice"},
				"password":        {"password123"},
				"confirmPassword": {"password123"},
			},
			reason: "name contains invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			rec := postForm(t, ts, "/register", tt.form)

			require.Equal(t, http.StatusSeeOther, rec.Code)

			location, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, "/register", location.Path)
			assert.Equal(t, tt.reason, location.Query().Get("message"))

			assert.Empty(t, ts.users.users, "invalid registration must not create a user")
		})
	}
}
