package server

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/sirupsen/logrus"

	"seo_article_generator/export"
	"seo_article_generator/generator"
)

const excerptLen = 120

// --- Requests / responses ---

type credentialReq struct {
	Credential string `json:"credential"`
}

type basicInfoReq struct {
	Title        string `json:"title"`
	MainKeywords string `json:"main_keywords"`
	SubKeywords  string `json:"sub_keywords"`
}

type contentDetailsReq struct {
	Purpose  string `json:"purpose"`
	Length   string `json:"length"`
	Audience string `json:"audience"`
}

type styleReq struct {
	Tone string `json:"tone"`
}

type articleEditReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type sessionResp struct {
	SessionID     string                      `json:"session_id"`
	Step          int                         `json:"step"`
	StepName      string                      `json:"step_name"`
	Params        generator.ArticleParameters `json:"params"`
	Article       *generator.GeneratedArticle `json:"article"`
	HasCredential bool                        `json:"has_credential"`
	HistorySize   int                         `json:"history_size"`
}

type historyItem struct {
	generator.GeneratedArticle
	Excerpt string `json:"excerpt"`
}

type historyResp struct {
	Articles []historyItem `json:"articles"`
}

type optionsResp struct {
	Lengths []generator.Option `json:"lengths"`
	Tones   []generator.Option `json:"tones"`
}

type errorResp struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *generator.Session)

// withSession looks up {id} and holds the session lock for the whole request.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.store.get(r.PathValue("id"))
		if !ok {
			writeErrorBody(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		h(w, r, e.sess)
	}
}

// --- Handlers ---

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResp{Lengths: generator.LengthOptions(), Tones: generator.ToneOptions()})
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	e := s.store.create(s.gen)
	s.logger.WithFields(logrus.Fields{"session_id": e.sess.ID, "sessions": s.store.count()}).Info("session created")
	writeJSON(w, http.StatusCreated, stateOf(e.sess))
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req credentialReq
	if !decode(w, r, &req) {
		return
	}
	sess.SetCredential(req.Credential)
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleBasicInfo(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req basicInfoReq
	if !decode(w, r, &req) {
		return
	}
	if err := sess.SubmitBasicInfo(req.Title, req.MainKeywords, req.SubKeywords); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleContentDetails(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req contentDetailsReq
	if !decode(w, r, &req) {
		return
	}
	if err := sess.SubmitContentDetails(req.Purpose, req.Length, req.Audience); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req styleReq
	if !decode(w, r, &req) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.generateTimeout)
	defer cancel()
	if _, err := sess.SubmitStylePreferences(ctx, req.Tone); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if err := sess.GoBack(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleStartNew(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if err := sess.StartNew(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleArticleEdit(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req articleEditReq
	if !decode(w, r, &req) {
		return
	}
	if err := sess.EditCurrentArticle(req.Title, req.Content); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleArticlePreview(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	last := sess.State().Last
	if last == nil {
		s.writeError(w, generator.ErrNoArticle)
		return
	}
	html, err := export.RenderHTML(*last)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleArticleExport(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	last := sess.State().Last
	if last == nil {
		s.writeError(w, generator.ErrNoArticle)
		return
	}
	s.writeExport(w, r, *last)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	articles := sess.History.List()
	items := make([]historyItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, historyItem{GeneratedArticle: a, Excerpt: generator.Excerpt(a.Content, excerptLen)})
	}
	writeJSON(w, http.StatusOK, historyResp{Articles: items})
}

func (s *Server) handleHistoryOpen(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if _, err := sess.OpenArticle(r.PathValue("articleID")); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(sess))
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if err := sess.DeleteArticle(r.PathValue("articleID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	a, ok := sess.History.Get(r.PathValue("articleID"))
	if !ok {
		s.writeError(w, generator.ErrArticleNotFound)
		return
	}
	s.writeExport(w, r, a)
}

func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, a generator.GeneratedArticle) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	f, err := export.Export(a, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	_, _ = w.Write(f.Data)
}

// --- Helpers ---

func stateOf(sess *generator.Session) sessionResp {
	st := sess.State()
	return sessionResp{
		SessionID:     sess.ID,
		Step:          int(st.Step),
		StepName:      st.Step.String(),
		Params:        st.Params,
		Article:       st.Last,
		HasCredential: sess.HasCredential(),
		HistorySize:   sess.History.Len(),
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", err.Error())
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var validation *generator.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: validation.Error(), Kind: "validation", Field: validation.Field})
	case errors.Is(err, generator.ErrMissingCredential):
		writeErrorBody(w, http.StatusBadRequest, "missing_credential", err.Error())
	case errors.Is(err, generator.ErrInvalidTransition):
		writeErrorBody(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, generator.ErrNoArticle), errors.Is(err, generator.ErrArticleNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", err.Error())
	default:
		if genErr, ok := generator.AsGenerationError(err); ok {
			writeErrorBody(w, http.StatusBadGateway, string(genErr.Kind), genErr.Error())
			return
		}
		s.logger.WithError(err).Error("unhandled error")
		writeErrorBody(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

func writeErrorBody(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResp{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
