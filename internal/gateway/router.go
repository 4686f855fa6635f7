package gateway

import "net/http"

// NewRouter registers the gateway routes on a ServeMux.
func NewRouter(handler *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/hello", handler.Hello)
	mux.HandleFunc("/matches", handler.Matches)
	mux.HandleFunc("/match/", handler.MatchResource)
	mux.HandleFunc("/team/", handler.TeamResource)
	mux.HandleFunc("/events", handler.ReportEvent)
	mux.HandleFunc("/event/", handler.DeleteEvent)
	mux.HandleFunc("/auth/login", handler.AuthLogin)
	mux.HandleFunc("/auth/validate", handler.AuthValidate)
	mux.HandleFunc("/auth/cookies", handler.AuthCookies)
	return mux
}
