package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/filling"
	"github.com/redtoridefire/smart-autofill/internal/ingestion"
	"github.com/redtoridefire/smart-autofill/internal/schemas"
	"github.com/redtoridefire/smart-autofill/internal/sites"
	"github.com/redtoridefire/smart-autofill/internal/store"
	"github.com/redtoridefire/smart-autofill/internal/types"
)

// FillRequest represents the request body for /fill. Exactly one of
// url or html must be set: html fills a static document, url drives a
// live browser page.
type FillRequest struct {
	URL    string `json:"url,omitempty"`
	HTML   string `json:"html,omitempty"`
	Manual bool   `json:"manual,omitempty"`
}

// CheckSiteResponse represents the response for /check-site
type CheckSiteResponse struct {
	URL     string `json:"url"`
	Allowed bool   `json:"allowed"`
}

// ApplicationsResponse represents the response for /applications
type ApplicationsResponse struct {
	FilledToday  int                       `json:"filled_today"`
	Applications []store.ApplicationRecord `json:"applications"`
}

// handleFill runs one fill pass against the submitted page
func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	var req FillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.HTML == "" && req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either url or html is required")
		return
	}

	var (
		page    dom.Page
		cleanup func()
	)
	if req.HTML != "" {
		doc, err := dom.NewDocument(req.HTML, req.URL)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Failed to parse HTML: "+err.Error())
			return
		}
		page = doc
	} else {
		if s.openPage == nil {
			s.errorResponse(w, http.StatusBadRequest, "Browser fills are not enabled on this server")
			return
		}
		var err error
		page, cleanup, err = s.openPage(r.Context(), req.URL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to open page: "+err.Error())
			return
		}
	}
	if cleanup != nil {
		defer cleanup()
	}

	opts := filling.Options{Manual: req.Manual, Verbose: s.verbose}
	if req.HTML != "" {
		// Static documents have no framework to pace against.
		zero := time.Duration(0)
		opts.Delay = &zero
	}

	session := filling.NewSession(page, s.store, opts)
	result, err := session.Fill(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCheckSite reports whether a URL passes the site allowlist
func (s *Server) handleCheckSite(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	settings, err := s.store.Settings(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	gate := sites.NewGate(settings.AllowedSites, settings.DisabledDefaultSites)

	s.jsonResponse(w, http.StatusOK, CheckSiteResponse{
		URL:     rawURL,
		Allowed: gate.Allowed(rawURL),
	})
}

// handleGetProfile returns the stored candidate profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.Profile(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handlePutProfile replaces the stored candidate profile
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateProfile(body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var profile types.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := profile.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.SaveProfile(r.Context(), &profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, &profile)
}

// handleGetSettings returns the effective engine settings
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.Settings(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, settings)
}

// handlePutSettings replaces the engine settings
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings types.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if settings.AutoFillMode != "" &&
		settings.AutoFillMode != types.ModeManual &&
		settings.AutoFillMode != types.ModeAutomatic {
		s.errorResponse(w, http.StatusBadRequest, "auto_fill_mode must be \"manual\" or \"automatic\"")
		return
	}

	if err := s.store.SaveSettings(r.Context(), &settings); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, &settings)
}

// handlePutResume stores resume data. JSON bodies are schema-validated
// structured resumes; plain text bodies go through the text sweep.
func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var resume *types.ResumeData
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := schemas.ValidateResume(body); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		var data types.ResumeData
		if err := json.Unmarshal(body, &data); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		resume = &data
	} else {
		resume = ingestion.ParseText(string(body))
	}

	if err := s.store.SaveResume(r.Context(), resume); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleListLearned returns every learned response
func (s *Server) handleListLearned(w http.ResponseWriter, r *http.Request) {
	learned, err := s.store.LearnedResponses(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, learned)
}

// handleClearLearned deletes every learned response
func (s *Server) handleClearLearned(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearLearned(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleListApplications returns recent history with today's count
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := s.store.RecentApplications(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	today, err := s.store.FilledToday(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if records == nil {
		records = []store.ApplicationRecord{}
	}
	s.jsonResponse(w, http.StatusOK, ApplicationsResponse{FilledToday: today, Applications: records})
}
