package fogis

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/pitchconnect/fogis-api-client-go/internal/logging"
)

// The session is a two-state machine: unauthenticated or authenticated with a
// cookie jar. Transitions happen only through a successful login handshake or
// an explicit invalidation by a failed probe. Lazy login means domain
// operations call ensureAuthenticated instead of requiring Login upfront.

// ensureAuthenticated gates every domain operation. Cookie-constructed clients
// are authenticated from the start; password-constructed clients run the login
// handshake on first need. Concurrent callers share a single handshake.
func (c *Client) ensureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	authenticated := c.authenticated
	c.mu.Unlock()
	if authenticated {
		return nil
	}

	if c.username == "" || c.password == "" {
		return &LoginError{Message: "login failed: no credentials provided and no cookies available"}
	}

	_, err, _ := c.loginGroup.Do("login", func() (any, error) {
		c.mu.Lock()
		done := c.authenticated
		c.mu.Unlock()
		if done {
			return nil, nil
		}

		jar, err := c.performLogin(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cookies = jar
		c.authenticated = true
		c.mu.Unlock()
		return nil, nil
	})
	return err
}

// Login pre-authenticates explicitly and returns a copy of the resulting
// cookie jar. It is a no-op when the session is already authenticated.
func (c *Client) Login(ctx context.Context) (map[string]string, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}
	return c.Cookies(), nil
}

// Cookies returns a copy of the current session cookies, or nil when the
// client has never authenticated. Mutating the copy does not touch the jar.
func (c *Client) Cookies() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cookies) == 0 {
		return nil
	}
	copied := make(map[string]string, len(c.cookies))
	for k, v := range c.cookies {
		copied[k] = v
	}
	return copied
}

// ValidateSession issues a lightweight authenticated probe and reports whether
// the session is still accepted upstream. A failed probe never returns an
// error; it flags the session so the next ensureAuthenticated re-runs the
// handshake.
func (c *Client) ValidateSession(ctx context.Context) bool {
	c.mu.Lock()
	empty := len(c.cookies) == 0
	c.mu.Unlock()
	if empty {
		return false
	}

	ok := c.probeSession(ctx)
	if !ok {
		logging.Info(c.logger, "session cookies are no longer valid")
		c.mu.Lock()
		c.authenticated = false
		c.mu.Unlock()
	}
	return ok
}

func (c *Client) probeSession(ctx context.Context) bool {
	req, err := c.buildAPIRequest(ctx, http.MethodGet, endpointMatchList, nil)
	if err != nil {
		return false
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordAPICall(endpointMatchList, time.Since(start), err)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	// An expired session answers with the login page rather than an envelope.
	if _, err := decodeEnvelope(resp.Body, endpointMatchList); err != nil {
		return false
	}
	return true
}

// performLogin runs the browser-emulating handshake:
// fetch the login page, extract the hidden form state, submit credentials,
// classify the response, and follow the authenticated-area redirect.
func (c *Client) performLogin(ctx context.Context) (cookies map[string]string, err error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordLogin(time.Since(start), err)
	}()

	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &LoginError{Message: "login failed: invalid base URL: " + err.Error()}
	}

	hc, err := c.newLoginClient()
	if err != nil {
		return nil, err
	}

	loginURL := c.baseURL + loginPath

	// Step 1: fetch the login page and extract the hidden form state.
	form, err := c.fetchLoginForm(ctx, hc, loginURL)
	if err != nil {
		return nil, err
	}

	hc.Jar.SetCookies(baseURL, []*http.Cookie{{Name: consentCookieName, Value: "dismiss", Path: "/"}})

	// Step 2: submit the credentials with the extracted state.
	actionURL := resolveAction(loginURL, form.Action)
	resp, err := c.submitLoginForm(ctx, hc, actionURL, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	// Step 3: classify. Success is a redirect carrying the auth cookie;
	// anything else (typically the login page again) means rejected credentials.
	if !loginSucceeded(resp) {
		logging.Warn(c.logger, "login rejected", logging.FieldStatusCode, resp.StatusCode)
		return nil, &LoginError{Message: "login failed: invalid credentials or session issue"}
	}

	// Step 4: follow the redirect to finish the handshake and collect the
	// final cookie set.
	if err := c.followLoginRedirect(ctx, hc, baseURL, resp.Header.Get("Location")); err != nil {
		return nil, err
	}

	cookies = make(map[string]string)
	for _, cookie := range hc.Jar.Cookies(baseURL) {
		cookies[cookie.Name] = cookie.Value
	}
	logging.Info(c.logger, "login successful")
	return cookies, nil
}

// newLoginClient builds the HTTP client used only for the handshake: its own
// cookie jar, and redirects held back so the 302 can be classified manually.
func (c *Client) newLoginClient() (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, &LoginError{Message: "login failed: could not create cookie jar: " + err.Error()}
	}
	return &http.Client{
		Transport: c.transport,
		Jar:       jar,
		Timeout:   defaultHTTPTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, nil
}

func (c *Client) fetchLoginForm(ctx context.Context, hc *http.Client, loginURL string) (*loginForm, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loginURL, nil)
	if err != nil {
		return nil, &RequestError{Endpoint: loginPath, Err: err}
	}
	setBrowserHeaders(req)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &RequestError{Endpoint: loginPath, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Endpoint: loginPath, StatusCode: resp.StatusCode}
	}
	return parseLoginForm(resp.Body)
}

func (c *Client) submitLoginForm(ctx context.Context, hc *http.Client, actionURL string, form *loginForm) (*http.Response, error) {
	data := url.Values{}
	for name, value := range form.Hidden {
		data.Set(name, value)
	}
	data.Set(usernameField, c.username)
	data.Set(passwordField, c.password)
	data.Set(loginButtonField, loginButtonValue)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, actionURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, &RequestError{Endpoint: loginPath, Err: err}
	}
	setBrowserHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &RequestError{Endpoint: loginPath, Err: err}
	}
	return resp, nil
}

func (c *Client) followLoginRedirect(ctx context.Context, hc *http.Client, base *url.URL, location string) error {
	target, err := normalizeRedirect(base, location)
	if err != nil {
		return &LoginError{Message: "login failed: bad redirect target: " + err.Error()}
	}

	logging.Debug(c.logger, "following login redirect", logging.FieldPath, target.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return &RequestError{Endpoint: target.Path, Err: err}
	}
	setBrowserHeaders(req)

	resp, err := hc.Do(req)
	if err != nil {
		return &RequestError{Endpoint: target.Path, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Endpoint: target.Path, StatusCode: resp.StatusCode}
	}
	return nil
}

func loginSucceeded(resp *http.Response) bool {
	if resp.StatusCode != http.StatusFound {
		return false
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == authCookieName {
			return true
		}
	}
	return false
}

// normalizeRedirect resolves the redirect target against the base URL,
// collapsing a duplicated base path prefix first. Relative-to-absolute
// composition upstream has been observed to emit targets like
// /mdk/mdk/home for a /mdk base, which 404 unless collapsed to /mdk/home.
func normalizeRedirect(base *url.URL, location string) (*url.URL, error) {
	if location == "" {
		return nil, &LoginError{Message: "login failed: redirect without location"}
	}

	basePath := strings.TrimSuffix(base.Path, "/")
	if basePath != "" {
		doubled := basePath + basePath + "/"
		if strings.HasPrefix(location, doubled) {
			location = basePath + "/" + strings.TrimPrefix(location, doubled)
		}
	}

	ref, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(ref), nil
}

func resolveAction(loginURL, action string) string {
	if action == "" {
		return loginURL
	}
	base, err := url.Parse(loginURL)
	if err != nil {
		return loginURL
	}
	ref, err := url.Parse(action)
	if err != nil {
		return loginURL
	}
	return base.ResolveReference(ref).String()
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", browserAccept)
}
