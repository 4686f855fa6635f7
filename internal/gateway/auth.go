package gateway

import "net/http"

// AuthLogin forces a session to be established now instead of on first use.
func (h *Handler) AuthLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	cookies, err := h.client.Login(r.Context())
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"cookies":       names,
	})
}

// AuthValidate probes whether the current session is still accepted upstream.
func (h *Handler) AuthValidate(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{
		"valid": h.client.ValidateSession(r.Context()),
	})
}

// AuthCookies returns the session cookies so another process can reuse them.
func (h *Handler) AuthCookies(w http.ResponseWriter, r *http.Request) {
	cookies := h.client.Cookies()
	if cookies == nil {
		h.writeError(w, http.StatusUnauthorized, "no active session")
		return
	}
	h.writeJSON(w, http.StatusOK, cookies)
}
