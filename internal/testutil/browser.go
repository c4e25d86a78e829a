package testutil

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Browser is an HTTP client with a cookie jar that behaves like a visitor: it keeps the
// session between requests and echoes the CSRF cookie the way the page script does.
type Browser struct {
	t      testing.TB
	base   *url.URL
	client *http.Client
}

// NewBrowser returns a Browser for ts. Redirects are not followed so tests can assert them.
func NewBrowser(t testing.TB, ts *httptest.Server) *Browser {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse(ts.URL)
	require.NoError(t, err)
	return &Browser{
		t:    t,
		base: base,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Get fetches path; htmx adds the HX-Request header.
func (b *Browser) Get(path string, htmx bool) (*http.Response, []byte) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base.String()+path, nil)
	require.NoError(b.t, err)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return b.Do(req)
}

// Post sends an htmx POST carrying the CSRF header.
func (b *Browser) Post(path string) (*http.Response, []byte) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base.String()+path, nil)
	require.NoError(b.t, err)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("X-CSRF-Token", b.Cookie("csrf_token"))
	return b.Do(req)
}

// PostForm submits a plain form, as a browser without scripts would.
func (b *Browser) PostForm(path string, form url.Values) (*http.Response, []byte) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base.String()+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.Do(req)
}

// Do sends req and returns the response with its body already read.
func (b *Browser) Do(req *http.Request) (*http.Response, []byte) {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, body
}

// Cookie returns the value of the named cookie for the server, or "".
func (b *Browser) Cookie(name string) string {
	for _, c := range b.client.Jar.Cookies(b.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// Cookies returns what the jar would send to the server right now.
func (b *Browser) Cookies() []*http.Cookie {
	return b.client.Jar.Cookies(b.base)
}

// Replay sends an htmx POST carrying exactly cookies instead of the jar's, the way an
// overlapping request still holding an older cookie would. Set-Cookie answers are not stored.
func (b *Browser) Replay(path string, cookies []*http.Cookie) (*http.Response, []byte) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.base.String()+path, nil)
	require.NoError(b.t, err)
	req.Header.Set("HX-Request", "true")
	for _, c := range cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		if c.Name == "csrf_token" {
			req.Header.Set("X-CSRF-Token", c.Value)
		}
	}
	client := &http.Client{CheckRedirect: b.client.CheckRedirect}
	resp, err := client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, body
}
