// Package assistant implements topic affirmation, answer rephrasing and need
// classification on top of a chat-completion LLM.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"wellness-assistant/internal/domain"
)

type ParamGetter interface {
	GetParameters(ctx context.Context, names []string) (map[string]string, error)
}

type LLMClient interface {
	Chat(ctx context.Context, req domain.ChatRequest) (string, error)
	Moderate(ctx context.Context, input string) (bool, error)
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

// Service satisfies the conversation Phraser and Classifier contracts. Model
// names are read from SSM once per process.
type Service struct {
	params      ParamGetter
	llm         LLMClient
	paramPrefix string

	cacheMu             sync.RWMutex
	cacheLoaded         bool
	phrasingModel       string
	classificationModel string
}

func NewService(p ParamGetter, llm LLMClient, paramPrefix string) (*Service, error) {
	if p == nil {
		return nil, errors.New("assistant: param getter must not be nil")
	}
	if llm == nil {
		return nil, errors.New("assistant: llm client must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("assistant: parameter prefix must not be empty")
	}
	return &Service{params: p, llm: llm, paramPrefix: paramPrefix}, nil
}

// AffirmTopic returns a short encouraging reply to a topic choice.
func (s *Service) AffirmTopic(ctx context.Context, label string) (string, error) {
	if err := s.ensureConfig(ctx); err != nil {
		return "", domain.NewError(domain.ErrorServiceUnavailable, "config_load_error", err)
	}
	raw, err := s.llm.Chat(ctx, domain.ChatRequest{Model: s.phrasingModel, Messages: affirmMessages(label)})
	return phrasingResult(raw, err)
}

// Rephrase turns an answer into a reflective follow-up question. Text the
// moderation check flags is never forwarded to the model.
func (s *Service) Rephrase(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.NewError(domain.ErrorServiceUnavailable, "empty_input", nil)
	}
	if err := s.ensureConfig(ctx); err != nil {
		return "", domain.NewError(domain.ErrorServiceUnavailable, "config_load_error", err)
	}

	flagged, err := s.llm.Moderate(ctx, text)
	if err != nil {
		return "", upstreamError(domain.ErrorServiceUnavailable, "moderation", err)
	}
	if flagged {
		return "", domain.NewError(domain.ErrorServiceUnavailable, "moderation_flagged", nil)
	}

	raw, err := s.llm.Chat(ctx, domain.ChatRequest{Model: s.phrasingModel, Messages: rephraseMessages(text)})
	return phrasingResult(raw, err)
}

// Classify maps the question/answer transcript to a closed-set pair. Any
// failure, including an out-of-set reply, is a ClassificationError.
func (s *Service) Classify(ctx context.Context, topic domain.Topic, questions, answers []string) (domain.Classification, error) {
	if len(questions) == 0 {
		return domain.Classification{}, domain.NewError(domain.ErrorClassification, "empty_transcript", nil)
	}
	if err := s.ensureConfig(ctx); err != nil {
		return domain.Classification{}, domain.NewError(domain.ErrorClassification, "config_load_error", err)
	}

	raw, err := s.llm.Chat(ctx, domain.ChatRequest{
		Model:    s.classificationModel,
		Messages: classificationMessages(topic, questions, answers),
		Schema:   classificationSchema(),
	})
	if err != nil {
		return domain.Classification{}, upstreamError(domain.ErrorClassification, "llm", err)
	}
	cls, err := parseClassification(raw)
	if err != nil {
		return domain.Classification{}, domain.NewError(domain.ErrorClassification, "malformed_response", err)
	}
	return cls, nil
}

func phrasingResult(raw string, err error) (string, error) {
	if err != nil {
		return "", upstreamError(domain.ErrorServiceUnavailable, "llm", err)
	}
	out := strings.TrimSpace(raw)
	if out == "" {
		return "", domain.NewError(domain.ErrorServiceUnavailable, "empty_reply", nil)
	}
	return out, nil
}

// upstreamError tags rate limiting separately so it stands out in logs.
func upstreamError(kind domain.ErrorKind, stage string, err error) error {
	if status, ok := upstreamStatusCode(err); ok && status == 429 {
		return domain.NewError(kind, stage+"_rate_limited", err)
	}
	return domain.NewError(kind, stage+"_error", err)
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}

func (s *Service) ensureConfig(ctx context.Context) error {
	s.cacheMu.RLock()
	if s.cacheLoaded {
		s.cacheMu.RUnlock()
		return nil
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheLoaded {
		return nil
	}

	phrasing, classification, err := s.loadModels(ctx)
	if err != nil {
		return err
	}
	s.phrasingModel = phrasing
	s.classificationModel = classification
	s.cacheLoaded = true
	return nil
}

func (s *Service) loadModels(ctx context.Context) (phrasing, classification string, err error) {
	phrasingName := s.paramPrefix + "/config/phrasing_model"
	classificationName := s.paramPrefix + "/config/classification_model"

	values, err := s.params.GetParameters(ctx, []string{phrasingName, classificationName})
	if err != nil {
		return "", "", fmt.Errorf("assistant: load models: %w", err)
	}
	phrasing = strings.TrimSpace(values[phrasingName])
	classification = strings.TrimSpace(values[classificationName])
	if phrasing == "" || classification == "" {
		return "", "", errors.New("assistant: load models: model name is empty")
	}
	return phrasing, classification, nil
}
