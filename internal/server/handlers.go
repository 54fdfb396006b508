package server

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/hostguard/middlewares"
	"github.com/dmitrymomot/hostguard/pkg/cookie"
	"github.com/dmitrymomot/hostguard/pkg/hostresolver"
	"github.com/dmitrymomot/hostguard/pkg/metrics"
)

const bannerCookie = "hostguard_banner_dismissed"

// WhoAmI is the JSON body of GET /whoami.
type WhoAmI struct {
	RequestID  string          `json:"request_id,omitempty"`
	Scheme     string          `json:"scheme"`
	Host       string          `json:"host"`
	URL        string          `json:"url,omitempty"`
	Source     string          `json:"source"`
	Rejections []RejectionInfo `json:"rejections,omitempty"`
	Secure     bool            `json:"secure"`
	HasURL     bool            `json:"has_url"`
}

// RejectionInfo describes one demoted candidate.
type RejectionInfo struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

func (s *Server) readiness(context.Context) error {
	if s.draining.Load() {
		return ErrShuttingDown
	}
	return nil
}

// origin returns the resolution stored by the Origin middleware.
func (s *Server) origin(r *http.Request) hostresolver.Resolution {
	if res, ok := middlewares.GetOrigin(r.Context()); ok {
		return res
	}
	return s.resolver.Request(r)
}

func (s *Server) whoami(w http.ResponseWriter, r *http.Request) {
	res := s.origin(r)

	body := WhoAmI{
		RequestID: middlewares.GetRequestID(r.Context()),
		Scheme:    res.Host.Prefix,
		Host:      res.Host.Domain,
		URL:       res.URL,
		Source:    string(res.Source),
		Secure:    res.Secure,
		HasURL:    res.HasURL,
	}
	for _, rej := range res.Rejections {
		body.Rejections = append(body.Rejections, RejectionInfo{
			Source: string(rej.Source),
			Reason: metrics.Reason(rej.Err),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to encode whoami response", slog.String("error", err.Error()))
	}
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(
	`<section class="admin">` +
		`{{if .ShowBanner}}<div class="banner">Signed in on {{.Host}}. <a href="{{.DismissURL}}">Dismiss</a></div>{{end}}` +
		`<a href="{{.SettingsURL}}">Settings</a>` +
		`</section>`,
))

type dashboardData struct {
	Host        string
	SettingsURL string
	DismissURL  string
	ShowBanner  bool
}

// dashboard renders the admin fragment. Links are absolute only when the
// origin is trustworthy; otherwise they stay relative to the current page.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	res := s.origin(r)

	_, err := s.cookies.Get(r, bannerCookie)
	data := dashboardData{
		Host:        res.Host.Domain,
		SettingsURL: link(res, "/admin/settings"),
		DismissURL:  link(res, "/admin/dismiss"),
		ShowBanner:  errors.Is(err, cookie.ErrNotFound),
	}
	if data.Host == "" {
		data.Host = "this server"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to render dashboard", slog.String("error", err.Error()))
	}
}

func (s *Server) dismissBanner(w http.ResponseWriter, r *http.Request) {
	if err := s.cookies.Set(w, r, bannerCookie, "1", 30*24*60*60); err != nil {
		s.logger.WarnContext(r.Context(), "failed to set banner cookie", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, link(s.origin(r), "/admin"), http.StatusSeeOther)
}

// redirect sends the client to an absolute URL on the resolved origin.
// It is mounted behind RequireRequestURL.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	if to == "" {
		to = "/"
	}
	if !localPath(to) {
		http.Error(w, "invalid redirect target", http.StatusBadRequest)
		return
	}

	res := s.origin(r)
	http.Redirect(w, r, res.URL+to, http.StatusFound)
}

func link(res hostresolver.Resolution, path string) string {
	if res.HasURL {
		return res.URL + path
	}
	return path
}

// localPath accepts absolute paths on the same origin only.
func localPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return false
	}
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.User == nil
}
