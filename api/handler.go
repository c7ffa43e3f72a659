package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"time"

	"go.uber.org/zap"

	"freight-netback/core/input"
	"freight-netback/core/output"
	"freight-netback/core/session"
	"freight-netback/internal/errors"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":   "healthy",
		"version":  s.opts.Version,
		"sessions": s.sessions.Len(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.opts.Version,
		"engine":  "freight-netback",
	}, http.StatusOK)
}

// handleCreateSession handles POST /sessions.
// The table is either the multipart field "file" or the raw body, named by ?name=.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+1<<20)

	src, closeFn, err := s.uploadSource(r)
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	defer closeFn()

	opts := s.opts.Session
	opts.ID = ""
	opts.Dataset.MaxBytes = s.opts.MaxUploadBytes

	sess, err := session.Open(r.Context(), src, opts)
	s.metrics.observeDataset(err)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.sessions.Put(sess)
	s.writeJSON(w, sess.Summary(), http.StatusCreated)
}

func (s *Server) uploadSource(r *http.Request) (input.Source, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "upload.csv"
		}
		return input.NewUploadSource(name, r.Body), func() {}, nil
	}

	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		return nil, nil, err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errors.Wrap(errors.TypeInput, `multipart field "file" is required`, err)
	}
	cleanup := func() {
		file.Close()
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}
	return input.NewUploadSource(header.Filename, file), cleanup, nil
}

func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	if isTooLarge(err) {
		s.writeTooLarge(w)
		return
	}
	s.writeError(w, CodeInvalidUpload, err.Error(), nil, http.StatusBadRequest)
}

func (s *Server) writeTooLarge(w http.ResponseWriter) {
	s.writeError(w, CodePayloadTooLarge, "upload exceeds the size limit", map[string]interface{}{
		"limit": s.opts.MaxUploadBytes,
	}, http.StatusRequestEntityTooLarge)
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return true
	}
	if e, ok := errors.As(err); ok {
		_, limited := e.Context[errors.ContextLimit]
		return limited
	}
	return false
}

// handleListSessions handles GET /sessions
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"sessions": s.sessions.List(),
	}, http.StatusOK)
}

// handleGetSession handles GET /sessions/{id}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, sessionFrom(r).Summary(), http.StatusOK)
}

// handleDeleteSession handles DELETE /sessions/{id}
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(sessionFrom(r).ID()); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCountries handles GET /sessions/{id}/countries
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.writeJSON(w, CountriesResponse{
		Order:     string(sess.Catalog().Order()),
		Countries: nonNil(sess.Countries()),
	}, http.StatusOK)
}

// handleUnits handles GET /sessions/{id}/units
func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, UnitsResponse{Units: nonNil(sessionFrom(r).Units())}, http.StatusOK)
}

// handlePorts handles GET /sessions/{id}/ports?country=
// Without a country the ports of the first listed country are returned.
func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	country := r.URL.Query().Get("country")
	if country == "" {
		country = sess.Catalog().DefaultCountry()
	}
	s.writeJSON(w, PortsResponse{
		Country: country,
		Ports:   nonNil(sess.Ports(country)),
	}, http.StatusOK)
}

// handleQuote handles POST /sessions/{id}/quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	var req QuoteRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, CodeInvalidJSON, err.Error(), nil, http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, CodeValidation, "request validation failed", fieldErrors(err), http.StatusBadRequest)
		return
	}

	quote, err := sess.Quote(req.Key(), req.Cost, req.LocalRate)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.observeQuote(quote)

	report := output.NewQuoteReport(sess.Source(), quote)
	report.Session = sess.ID()
	s.writeJSON(w, report, http.StatusOK)
}

// writeDomainError maps internal error types onto HTTP statuses
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	if isTooLarge(err) {
		s.writeTooLarge(w)
		return
	}

	e, ok := errors.As(err)
	if !ok {
		s.log.Error("unhandled error", zap.Error(err))
		s.writeError(w, CodeInternal, "internal error", nil, http.StatusInternalServerError)
		return
	}

	var details map[string]interface{}
	status := http.StatusInternalServerError
	switch e.Type {
	case errors.TypeParse:
		status = http.StatusUnprocessableEntity
	case errors.TypeSchema:
		status = http.StatusUnprocessableEntity
		missing, _ := errors.MissingColumns(err)
		available, _ := errors.AvailableColumns(err)
		details = map[string]interface{}{"missing": missing, "available": available}
	case errors.TypeInput:
		status = http.StatusBadRequest
		if field, ok := e.Context[errors.ContextField]; ok {
			details = map[string]interface{}{"field": field}
		}
	case errors.TypeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.writeError(w, string(e.Type), e.Message, details, status)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
