package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jpassword/jpassword-go/internal/model"
	"github.com/jpassword/jpassword-go/internal/service"
)

const maxGenerateBody = 1 << 10

var errBadQuery = errors.New("invalid query parameter")

// GeneratorHandler serves the JSON generation API.
type GeneratorHandler struct {
	service *service.GeneratorService
	logger  *slog.Logger
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService, logger *slog.Logger) *GeneratorHandler {
	return &GeneratorHandler{service: svc, logger: logger}
}

// HandleGenerate handles POST /api/v1/generate. An empty body means all defaults.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if r.ContentLength != 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxGenerateBody)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	h.respond(w, req)
}

// HandleGenerateQuery handles GET /api/v1/generate?length=12&numbers=true.
func (h *GeneratorHandler) HandleGenerateQuery(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respond(w, req)
}

func (h *GeneratorHandler) respond(w http.ResponseWriter, req model.GenerateRequest) {
	resp, err := h.service.Generate(req)
	switch {
	case err == nil:
		h.logger.Debug("password generated", "length", resp.Length, "classes", resp.Classes)
		writeJSON(w, http.StatusOK, resp)
	case service.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func requestFromQuery(r *http.Request) (model.GenerateRequest, error) {
	q := r.URL.Query()

	var req model.GenerateRequest
	if v := q.Get("length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errBadQuery
		}
		req.Length = n
	}

	flags := map[string]**bool{
		"lowercase": &req.Lowercase,
		"uppercase": &req.Uppercase,
		"numbers":   &req.Numbers,
		"symbols":   &req.Symbols,
	}
	for name, dst := range flags {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, errBadQuery
		}
		*dst = &b
	}

	return req, nil
}

// HandleHealth handles GET /health requests.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}
