package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/raindrop-mcp/internal/domain"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/raindrop-mcp/internal/tools"
)

const maxCallBody = 1 << 20

type listToolsResponse struct {
	Tools []tools.Descriptor `json:"tools"`
}

type callRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callResponse struct {
	Content []textContent `json:"content"`
	IsError bool          `json:"isError"`
}

func ListTools(d deps.Deps) http.HandlerFunc {
	list := listToolsResponse{Tools: d.Dispatcher.Catalog().Tools()}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, list)
	}
}

// CallTool runs one tool. The body is {name, arguments}; the answer mirrors
// an MCP tools/call result, with the HTTP status classifying failures.
func CallTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req callRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCallBody))
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		text, err := d.Dispatcher.Call(r.Context(), req.Name, req.Arguments)
		if err != nil {
			writeJSON(w, callStatus(err), callResponse{
				Content: []textContent{{Type: "text", Text: err.Error()}},
				IsError: true,
			})
			return
		}
		writeJSON(w, http.StatusOK, callResponse{Content: []textContent{{Type: "text", Text: text}}})
	}
}

func callStatus(err error) int {
	var (
		ve *domain.ValidationError
		ue *domain.UnknownOperationError
		re *domain.RemoteError
		ce *domain.ConfigurationError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ue):
		return http.StatusNotFound
	case errors.As(err, &re):
		return http.StatusBadGateway
	case errors.As(err, &ce):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
