package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/sharetext"
	"go.uber.org/zap"
)

type textRequest struct {
	Text        string `json:"text" validate:"required"`
	GroupDigits bool   `json:"groupDigits"`
}

type validateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

type shareResponse struct {
	Text     string   `json:"text"`
	Commands []string `json:"commands"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (a *API) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !a.decode(w, r, &req) {
		return
	}

	err := hunt.Check(req.Text)
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:   err == nil,
		Message: hunt.UserMessage(err),
	})
}

func (a *API) handleParse(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !a.decode(w, r, &req) || !a.check(w, &req) {
		return
	}

	summary, ok := a.parse(w, r, req.Text)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleShare(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !a.decode(w, r, &req) || !a.check(w, &req) {
		return
	}

	summary, ok := a.parse(w, r, req.Text)
	if !ok {
		return
	}
	opts := a.share
	opts.GroupDigits = req.GroupDigits
	writeJSON(w, http.StatusOK, shareResponse{
		Text:     sharetext.Render(summary, opts),
		Commands: sharetext.Commands(summary),
	})
}

// parse runs the parser and writes the error response itself on failure.
func (a *API) parse(w http.ResponseWriter, r *http.Request, text string) (*hunt.Summary, bool) {
	summary, err := hunt.Parse(text, a.opts)
	if err == nil {
		return summary, true
	}

	if errors.Is(err, hunt.ErrEmptyInput) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return nil, false
	}

	var fe *hunt.FormatError
	if errors.As(err, &fe) {
		a.logger.Debug("rejected session report", zap.Int("line", fe.Line), zap.Error(err))
	} else {
		a.logger.Warn("failed to parse session report", zap.String("request_id", w.Header().Get(requestIDHeader)), zap.Error(err))
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: hunt.UserMessage(err)})
	return nil, false
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxInputBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "report is too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (a *API) check(w http.ResponseWriter, req *textRequest) bool {
	if err := a.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
