// Package handler exposes the session and survey use cases as API Gateway
// proxy routes.
package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"wellness-assistant/internal/domain"
	"wellness-assistant/internal/survey"
	"wellness-assistant/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

type SessionUseCase interface {
	Start(ctx context.Context) (usecase.SessionOutput, error)
	Get(ctx context.Context, sessionID string) (usecase.SessionOutput, error)
	Act(ctx context.Context, in usecase.ActInput) (usecase.SessionOutput, error)
}

type Handler struct {
	sessions      SessionUseCase
	allowedOrigin string
	logger        *slog.Logger
}

type Option func(*Handler)

// WithAllowedOrigin sets the Access-Control-Allow-Origin value.
func WithAllowedOrigin(origin string) Option {
	return func(h *Handler) {
		if origin = strings.TrimSpace(origin); origin != "" {
			h.allowedOrigin = origin
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHandler(s SessionUseCase, opts ...Option) (*Handler, error) {
	if s == nil {
		return nil, errors.New("handler: session use case must not be nil")
	}
	h := &Handler{sessions: s, allowedOrigin: "*", logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

type optionRequest struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type surveyAnswerRequest struct {
	Language string `json:"language"`
	AnswerID string `json:"answerId"`
}

type sessionResponse struct {
	SessionID   string           `json:"sessionId"`
	State       string           `json:"state"`
	Closed      bool             `json:"closed"`
	AcceptsText bool             `json:"acceptsText"`
	Messages    []domain.Message `json:"messages"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// Handle routes one API Gateway proxy request. Errors are always rendered
// into the response; the returned error is reserved for the Lambda runtime.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req.Headers)
	log := h.logger.With("correlation_id", corrID, "method", req.HTTPMethod, "path", req.Path)

	resp := h.route(ctx, log, req)
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	resp.Headers["Content-Type"] = "application/json"
	resp.Headers["Access-Control-Allow-Origin"] = h.allowedOrigin
	resp.Headers["Access-Control-Allow-Headers"] = "Content-Type, " + correlationHeader
	resp.Headers["Access-Control-Allow-Methods"] = "GET, POST, OPTIONS"
	resp.Headers[correlationHeader] = corrID

	log.Info("request handled", "status", resp.StatusCode)
	return resp, nil
}

func (h *Handler) route(ctx context.Context, log *slog.Logger, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	if req.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}
	}

	segments := pathSegments(req.Path)
	switch {
	case len(segments) == 1 && segments[0] == "sessions":
		if req.HTTPMethod != http.MethodPost {
			return methodNotAllowed(http.MethodPost)
		}
		out, err := h.sessions.Start(ctx)
		return h.sessionResult(log, http.StatusCreated, out, err)

	case len(segments) == 2 && segments[0] == "sessions":
		if req.HTTPMethod != http.MethodGet {
			return methodNotAllowed(http.MethodGet)
		}
		out, err := h.sessions.Get(ctx, segments[1])
		return h.sessionResult(log, http.StatusOK, out, err)

	case len(segments) == 3 && segments[0] == "sessions" && segments[2] == "options":
		if req.HTTPMethod != http.MethodPost {
			return methodNotAllowed(http.MethodPost)
		}
		var body optionRequest
		if err := decodeBody(req, &body); err != nil {
			return invalidBody(log, err)
		}
		out, err := h.sessions.Act(ctx, usecase.ActInput{
			SessionID: segments[1],
			Kind:      usecase.ActionOption,
			Value:     body.Value,
			Label:     body.Label,
		})
		return h.sessionResult(log, http.StatusOK, out, err)

	case len(segments) == 3 && segments[0] == "sessions" && segments[2] == "messages":
		if req.HTTPMethod != http.MethodPost {
			return methodNotAllowed(http.MethodPost)
		}
		var body messageRequest
		if err := decodeBody(req, &body); err != nil {
			return invalidBody(log, err)
		}
		out, err := h.sessions.Act(ctx, usecase.ActInput{
			SessionID: segments[1],
			Kind:      usecase.ActionText,
			Text:      body.Text,
		})
		return h.sessionResult(log, http.StatusOK, out, err)

	case len(segments) == 1 && segments[0] == "survey":
		if req.HTTPMethod != http.MethodGet {
			return methodNotAllowed(http.MethodGet)
		}
		prompt, err := survey.Question(req.QueryStringParameters["lang"])
		if err != nil {
			return surveyError(log, err)
		}
		return jsonResponse(http.StatusOK, prompt)

	case len(segments) == 2 && segments[0] == "survey" && segments[1] == "answers":
		if req.HTTPMethod != http.MethodPost {
			return methodNotAllowed(http.MethodPost)
		}
		var body surveyAnswerRequest
		if err := decodeBody(req, &body); err != nil {
			return invalidBody(log, err)
		}
		result, err := survey.Assess(body.Language, body.AnswerID)
		if err != nil {
			return surveyError(log, err)
		}
		return jsonResponse(http.StatusOK, result)
	}

	return jsonResponse(http.StatusNotFound, errorResponse{Error: string(usecase.ErrorNotFound), Reason: "route_not_found"})
}

func (h *Handler) sessionResult(log *slog.Logger, status int, out usecase.SessionOutput, err error) events.APIGatewayProxyResponse {
	if err != nil {
		return errorResult(log, err)
	}
	messages := out.Messages
	if messages == nil {
		messages = []domain.Message{}
	}
	return jsonResponse(status, sessionResponse{
		SessionID:   out.SessionID,
		State:       string(out.State),
		Closed:      out.Closed,
		AcceptsText: out.AcceptsText,
		Messages:    messages,
	})
}

func errorResult(log *slog.Logger, err error) events.APIGatewayProxyResponse {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		log.Error("unexpected error", "err", err)
		return jsonResponse(http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal)})
	}
	status := statusFor(ue.Code)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "code", ue.Code, "reason", ue.Reason, "err", ue.Err)
	} else {
		log.Warn("request rejected", "code", ue.Code, "reason", ue.Reason)
	}
	return jsonResponse(status, errorResponse{Error: string(ue.Code), Reason: ue.Reason})
}

func statusFor(code usecase.ErrorCode) int {
	switch code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest
	case usecase.ErrorNotFound:
		return http.StatusNotFound
	case usecase.ErrorConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func surveyError(log *slog.Logger, err error) events.APIGatewayProxyResponse {
	reason := "unknown_answer"
	if errors.Is(err, survey.ErrUnknownLanguage) {
		reason = "unknown_language"
	}
	log.Warn("survey request rejected", "reason", reason, "err", err)
	return jsonResponse(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput), Reason: reason})
}

func invalidBody(log *slog.Logger, err error) events.APIGatewayProxyResponse {
	log.Warn("invalid request body", "err", err)
	return jsonResponse(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput), Reason: "invalid_body"})
}

func methodNotAllowed(allow string) events.APIGatewayProxyResponse {
	resp := jsonResponse(http.StatusMethodNotAllowed, errorResponse{Error: "METHOD_NOT_ALLOWED"})
	resp.Headers = map[string]string{"Allow": allow + ", OPTIONS"}
	return resp
}

func jsonResponse(status int, v any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"error":"INTERNAL_ERROR"}`,
		}
	}
	return events.APIGatewayProxyResponse{StatusCode: status, Body: string(body)}
}

func decodeBody(req events.APIGatewayProxyRequest, v any) error {
	raw := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return fmt.Errorf("handler: decode base64 body: %w", err)
		}
		raw = decoded
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("handler: decode body: %w", err)
	}
	return nil
}

func pathSegments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return uuid.NewString()
}
