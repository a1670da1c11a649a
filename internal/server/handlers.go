package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/adphone/internal/apperr"
	"github.com/sells-group/adphone/internal/extract"
	"github.com/sells-group/adphone/internal/model"
)

const maxBodyBytes = 1 << 20

type parseResponse struct {
	Success  bool           `json:"success"`
	Phone    string         `json:"phone,omitempty"`
	Platform model.Platform `json:"platform,omitempty"`
	URL      string         `json:"url,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type historyResponse struct {
	History []model.HistoryEntry `json:"history"`
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgParseFailed+err.Error())
		return
	}

	req, err := decodeParseRequest(body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgParseFailed+err.Error())
		return
	}

	res, err := s.extractor.Extract(r.Context(), req.URL)
	if err != nil {
		if status := HTTPStatus(err); status == http.StatusBadRequest {
			writeError(w, status, err.Error())
			return
		}
		zap.L().Error("parse request failed", zap.String("url", req.URL), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgParseFailed+err.Error())
		return
	}

	if !res.Found() {
		writeJSON(w, http.StatusNotFound, parseResponse{Success: false, Error: MsgPhoneNotFound})
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{
		Success:  true,
		Phone:    res.Phone,
		Platform: res.Platform,
		URL:      res.URL,
	})
}

// decodeParseRequest reads the /parse body. An empty body behaves like {}.
// The body must otherwise be a JSON object whose "url", when present, is a
// string; null is rejected in both places.
func decodeParseRequest(body []byte) (extract.Request, error) {
	var req extract.Request
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return req, eris.Wrap(err, "server: decode body")
	}
	if fields == nil {
		return req, eris.New("server: request body must be a JSON object")
	}

	raw, ok := fields["url"]
	if !ok {
		return req, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return req, eris.New("server: url must be a string")
	}
	if err := json.Unmarshal(raw, &req.URL); err != nil {
		return req, eris.Wrap(err, "server: decode url")
	}
	return req, nil
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := s.history.ParseLimit(q.Get("limit"), q.Has("limit"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgDatabaseError+err.Error())
		return
	}

	entries, err := s.history.List(r.Context(), limit)
	if err != nil {
		if apperr.IsConfiguration(err) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		zap.L().Error("history request failed", zap.Int("limit", limit), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgDatabaseError+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{History: entries})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Error: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
