package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_flames/internal/core/domain"
	"github.com/baditaflorin/go_flames/internal/core/elimination"
	"github.com/baditaflorin/go_flames/internal/validate"
)

// nameRequest is the JSON body accepted by /api/calculate.
type nameRequest struct {
	Name1 string `json:"name1"`
	Name2 string `json:"name2"`
}

// pageData feeds the HTML template.
type pageData struct {
	Name1  string
	Name2  string
	Error  string
	Result *Response
}

var errMalformedBody = errors.New("request body could not be parsed")

// handleHealthCheck responds to health check requests
func (s *Server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleIndex(ctx *fasthttp.RequestCtx) {
	if !s.requireMethod(ctx, fasthttp.MethodGet) {
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.renderPage(ctx, pageData{})
}

// handleCalculatePage renders the form again with either a result or an
// error. The submitted names are echoed back in both cases.
func (s *Server) handleCalculatePage(ctx *fasthttp.RequestCtx) {
	if !s.requireMethod(ctx, fasthttp.MethodPost) {
		return
	}

	rawA, rawB, result, err := s.calculate(ctx)
	ctx.SetStatusCode(fasthttp.StatusOK)
	if err != nil {
		msg := internalPageMessage
		if _, input := classifyError(err); input {
			msg = userMessage(err)
		}
		s.renderPage(ctx, pageData{Name1: rawA, Name2: rawB, Error: msg})
		return
	}

	response := NewResponse(result)
	s.renderPage(ctx, pageData{Name1: strings.TrimSpace(rawA), Name2: strings.TrimSpace(rawB), Result: &response})
}

func (s *Server) handleCalculateAPI(ctx *fasthttp.RequestCtx) {
	if !s.requireMethod(ctx, fasthttp.MethodPost) {
		return
	}

	_, _, result, err := s.calculate(ctx)
	if err != nil {
		status, input := classifyError(err)
		msg := internalErrorMessage
		if input {
			msg = userMessage(err)
		}
		ctx.SetStatusCode(status)
		s.writeJSONError(ctx, msg)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, NewResponse(result))
}

// calculate reads, validates and classifies the submitted names. The raw
// names are returned even on error so pages can echo them back.
func (s *Server) calculate(ctx *fasthttp.RequestCtx) (string, string, domain.Result, error) {
	rawA, rawB, err := readNames(ctx)
	if err != nil {
		return "", "", domain.Result{}, err
	}

	nameA, nameB, err := validate.Names(rawA, rawB)
	if err != nil {
		return rawA, rawB, domain.Result{}, err
	}

	result, err := s.compute(nameA, nameB)
	if err != nil {
		s.logger.Error("Computation failed", "error", err)
		return rawA, rawB, domain.Result{}, err
	}
	return rawA, rawB, result, nil
}

// classifyError maps an error to its HTTP status and reports whether its
// message may be shown to the user.
func classifyError(err error) (int, bool) {
	if validate.IsInputError(err) || errors.Is(err, errMalformedBody) {
		return fasthttp.StatusBadRequest, true
	}
	return fasthttp.StatusInternalServerError, false
}

func (s *Server) handleStatistics(ctx *fasthttp.RequestCtx) {
	if !s.requireMethod(ctx, fasthttp.MethodGet) {
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, StatisticsResponse{
		Sequence:   s.calc.Sequence().String(),
		ProbeMin:   elimination.ProbeMin,
		ProbeMax:   elimination.ProbeMax,
		Statistics: s.calc.Distribution(),
	})
}

// readNames extracts name1 and name2 from a JSON, multipart or URL-encoded
// body. Missing fields come back empty and are rejected by validation.
func readNames(ctx *fasthttp.RequestCtx) (string, string, error) {
	contentType := ctx.Request.Header.ContentType()

	switch {
	case bytes.HasPrefix(contentType, []byte(contentTypeJSON)):
		var req nameRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			return "", "", errMalformedBody
		}
		return req.Name1, req.Name2, nil

	case bytes.HasPrefix(contentType, []byte("multipart/form-data")):
		form, err := ctx.MultipartForm()
		if err != nil {
			return "", "", errMalformedBody
		}
		return firstValue(form.Value["name1"]), firstValue(form.Value["name2"]), nil

	default:
		args := ctx.PostArgs()
		return string(args.Peek("name1")), string(args.Peek("name2")), nil
	}
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// userMessage returns the text shown to the user for an input error, with
// the first letter capitalized.
func userMessage(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
