package identity

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/hirewire/jobboard/internal/pkg/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieNames(cookies []*http.Cookie) []string {
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	return names
}

// The refresh-token cookie must be scoped so a browser presents it back to
// the refresh and logout endpoints; a wrong Path silently breaks rotation.
func TestSetAuthCookies_RefreshCookieReachesAuthEndpoints(t *testing.T) {
	h := NewHandler(nil, CookieSettings{
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
	})

	rec := httptest.NewRecorder()
	h.setAuthCookies(rec, &TokenPair{AccessToken: "access", RefreshToken: "refresh"})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	loginURL, _ := url.Parse("http://app.test/api/auth/login")
	jar.SetCookies(loginURL, rec.Result().Cookies())

	refreshURL, _ := url.Parse("http://app.test/api/auth/refresh")
	assert.Contains(t, cookieNames(jar.Cookies(refreshURL)), httputil.RefreshTokenCookie)

	logoutURL, _ := url.Parse("http://app.test/api/auth/logout")
	assert.Contains(t, cookieNames(jar.Cookies(logoutURL)), httputil.RefreshTokenCookie)

	// The refresh token stays off every other route.
	jobsURL, _ := url.Parse("http://app.test/api/jobs")
	assert.NotContains(t, cookieNames(jar.Cookies(jobsURL)), httputil.RefreshTokenCookie)
	assert.Contains(t, cookieNames(jar.Cookies(jobsURL)), httputil.AccessTokenCookie)
}

func TestClearAuthCookies_ExpiresRefreshCookieOnSamePath(t *testing.T) {
	h := NewHandler(nil, CookieSettings{})

	rec := httptest.NewRecorder()
	h.clearAuthCookies(rec)

	var refreshCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == httputil.RefreshTokenCookie {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie)

	// A clearing cookie only matches the stored one when paths agree.
	assert.Equal(t, authCookiePath, refreshCookie.Path)
	assert.Equal(t, -1, refreshCookie.MaxAge)
}
