package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// chartRequest is the body of POST /v1/charts/{kind}. Top-level keys
// override the matching keys of Config.
type chartRequest struct {
	Dataset dataset.Dataset `json:"dataset"`
	XKey    string          `json:"x_key"`
	YKey    string          `json:"y_key"`
	Format  string          `json:"format"`
	Config  config.File     `json:"config"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := s.decodeChartRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := req.options(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger.With("request_id", RequestIDFrom(ctx))

	result, err := s.runner.Execute(ctx, req.Dataset, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "MISS"
	if result.CacheInfo.RenderHit {
		cacheStatus = "HIT"
	}
	h := w.Header()
	h.Set("Content-Type", contentTypes[req.Format])
	h.Set("X-Chart-ID", result.ID.String())
	h.Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[req.Format])
}

func (s *Server) decodeChartRequest(w http.ResponseWriter, r *http.Request) (*chartRequest, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var req chartRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.maxBody)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	for i, rec := range req.Dataset {
		if rec == nil {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "null record").At(i, "")
		}
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	return &req, nil
}

// options merges the request into pipeline options. Settings that touch
// the server's filesystem or infrastructure are refused.
func (req *chartRequest) options(kind string) (pipeline.Options, error) {
	if err := errors.ValidateKind(kind); err != nil {
		return pipeline.Options{}, err
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		return pipeline.Options{}, err
	}
	if req.Config.Output.Font != "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidConfig, "output.font cannot be set over HTTP")
	}
	if req.Config.Cache != (cache.Config{}) {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidConfig, "cache cannot be configured over HTTP")
	}

	cfg := req.Config
	cfg.Chart.Kind = kind
	if req.XKey != "" {
		cfg.Chart.XKey = req.XKey
	}
	if req.YKey != "" {
		cfg.Chart.YKey = req.YKey
	}
	cfg.Output.Formats = []string{req.Format}
	return cfg.PipelineOptions()
}

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Record  int         `json:"record,omitempty"`
	Field   string      `json:"field,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCodeOr(err, errors.ErrCodeInternal)
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, chi.RouteContext(r.Context()).RoutePattern(), err)

	message := describe(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFrom(r.Context()), "error", err)
		message = "internal error"
	}
	detail := errorDetail{Code: code, Message: message}
	var e *errors.Error
	if stderrors.As(err, &e) {
		detail.Record, detail.Field = e.Record, e.Field
	}
	writeJSON(w, status, errorBody{Error: detail, RequestID: RequestIDFrom(r.Context())})
}

// statusFor maps the code of err to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	}
	if errors.IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// describe joins the messages of err and its coded causes, without the
// code prefixes.
func describe(err error) string {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	msg := errors.UserMessage(e)
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + describe(e.Cause)
}
