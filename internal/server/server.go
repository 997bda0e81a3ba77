// Package server exposes FLAMES over HTTP with fasthttp: an HTML form, a JSON
// API and a health check.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"time"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/internal/ports"
)

//go:embed templates/index.html
var templateFS embed.FS

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"

	// Shown to users for anything other than an input error.
	internalErrorMessage = "An unexpected error occurred"
	internalPageMessage  = "An unexpected error occurred. Please try again."
)

// Calculator is what the server needs from the FLAMES engine.
type Calculator interface {
	ports.ResultCalculator
	Distribution() domain.Distribution
	Sequence() domain.Sequence
}

// Response is the JSON form of a result.
type Response struct {
	Result           string              `json:"result"`
	ResultType       string              `json:"result_type"`
	Count            int                 `json:"count"`
	Statistics       domain.Distribution `json:"statistics"`
	EliminationOrder []domain.Category   `json:"elimination_order,omitempty"`
}

// StatisticsResponse is the body of GET /api/statistics.
type StatisticsResponse struct {
	Sequence   string              `json:"sequence"`
	ProbeMin   int                 `json:"probe_min"`
	ProbeMax   int                 `json:"probe_max"`
	Statistics domain.Distribution `json:"statistics"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the request handlers.
type Server struct {
	calc           Calculator
	logger         ports.Logger
	page           *template.Template
	requestTimeout time.Duration
}

// New creates a server. requestTimeout bounds each computation.
func New(calc Calculator, logger ports.Logger, requestTimeout time.Duration) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{
		calc:           calc,
		logger:         logger,
		page:           page,
		requestTimeout: requestTimeout,
	}, nil
}

// NewResponse converts a result into its JSON form.
func NewResponse(result domain.Result) Response {
	return Response{
		Result:           result.Meaning,
		ResultType:       string(result.Type),
		Count:            result.Count,
		Statistics:       result.Statistics,
		EliminationOrder: result.EliminationOrder,
	}
}

// Handler is the fasthttp request handler.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Handler panic", "panic", r, "path", string(ctx.Path()))
			s.recoverResponse(ctx)
		}

		s.logger.Info("Request processed",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"ip", ctx.RemoteIP().String(),
			"duration", time.Since(startTime),
		)
	}()

	ctx.Response.Header.Set("Server", "FlamesServer")

	switch string(ctx.Path()) {
	case "/":
		s.handleIndex(ctx)
	case "/calculate":
		s.handleCalculatePage(ctx)
	case "/api/calculate":
		s.handleCalculateAPI(ctx)
	case "/api/statistics":
		s.handleStatistics(ctx)
	case "/health":
		s.handleHealthCheck(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}
}

// recoverResponse replaces whatever was written before a panic. The form
// route gets its page back with the submitted names, everything else JSON.
func (s *Server) recoverResponse(ctx *fasthttp.RequestCtx) {
	ctx.ResetBody()
	if string(ctx.Path()) == "/calculate" {
		rawA, rawB, _ := readNames(ctx)
		ctx.SetStatusCode(fasthttp.StatusOK)
		s.renderPage(ctx, pageData{Name1: rawA, Name2: rawB, Error: internalPageMessage})
		return
	}
	ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	s.writeJSONError(ctx, internalErrorMessage)
}

// compute runs the calculator with the per-request timeout.
func (s *Server) compute(nameA, nameB string) (domain.Result, error) {
	c, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()
	return s.calc.Compute(c, nameA, nameB)
}

func (s *Server) requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
	s.writeJSONError(ctx, "Method not allowed")
	return false
}

// writeJSONResponse writes a JSON response to the context
func (s *Server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, internalErrorMessage)
		return
	}

	ctx.SetContentType(contentTypeJSON)
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *Server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		response = []byte(`{"error":"Internal server error"}`)
	}

	ctx.SetContentType(contentTypeJSON)
	ctx.SetBody(response)
}

// renderPage executes the HTML template into a pooled buffer.
func (s *Server) renderPage(ctx *fasthttp.RequestCtx, data pageData) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := s.page.Execute(buf, data); err != nil {
		s.logger.Error("Error rendering page", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString(internalPageMessage)
		return
	}

	ctx.SetContentType(contentTypeHTML)
	ctx.SetBody(buf.B)
}
