package assistant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"wellness-assistant/internal/domain"
)

const noAnswer = "(No answer provided)"

type classificationResponse struct {
	Category string `json:"category"`
	Subtype  string `json:"subtype"`
}

func affirmMessages(label string) []domain.ChatMessage {
	return []domain.ChatMessage{{
		Role: "user",
		Content: fmt.Sprintf("Affirm the user's topic selection of '%s' with a brief, encouraging, and enthusiastic statement. Do not use markdown.",
			normalizePromptInput(label)),
	}}
}

func rephraseMessages(text string) []domain.ChatMessage {
	return []domain.ChatMessage{{
		Role: "user",
		Content: fmt.Sprintf("Rephrase the following user statement for clarity, but frame it as a short, reflective, follow-up question. Do not use markdown. Original statement: %q",
			normalizePromptInput(text)),
	}}
}

func classificationMessages(topic domain.Topic, questions, answers []string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: "system", Content: buildClassificationPolicy(topic)},
		{Role: "user", Content: buildTranscriptPrompt(topic, questions, answers)},
	}
}

func buildClassificationPolicy(topic domain.Topic) string {
	return strings.Join([]string{
		"Role:",
		"You are an expert wellness assistant.",
		"",
		"Task:",
		fmt.Sprintf("Analyze a customer's responses to a series of questions about their %s habits.", strings.ToLower(string(topic))),
		"Determine their primary NEED CATEGORY and SUBTYPE.",
		"",
		"Need Categories:",
		"- HIGH: Pronounced issues, chronic problems, strong distress, inconsistency.",
		"- MODERATE: Mostly stable with identifiable but manageable issues, periodic disruptions.",
		"- LOW: Stable patterns, good routine adherence, minor issues, strong self-regulation.",
		"",
		"Subtypes:",
		"- BIOLOGY: Circadian rhythms, fatigue, energy cycles, physiological factors.",
		"- ENVIRONMENT: Light, noise, physical setup, access, external stimuli.",
		"- CONSISTENCY: Irregular timing, on/off cycles, lack of routine, predictability.",
		"- EMOTIONAL: Racing thoughts, frustration, stress, worry, mood-driven behaviors.",
		"- COGNITIVE: Beliefs, rigid standards, perfectionism, mindset, over-evaluation.",
		"",
		"Output Contract:",
		"Analyze the full conversation. Identify the strongest signals and return JSON only with keys category and subtype.",
	}, "\n")
}

// buildTranscriptPrompt pairs each question with its answer by position.
func buildTranscriptPrompt(topic domain.Topic, questions, answers []string) string {
	pairs := make([]string, 0, len(questions))
	for i, q := range questions {
		a := noAnswer
		if i < len(answers) && strings.TrimSpace(answers[i]) != "" {
			a = normalizePromptInput(answers[i])
		}
		pairs = append(pairs, fmt.Sprintf("Q%d: %s\nA%d: %s", i+1, q, i+1, a))
	}
	return fmt.Sprintf("Here is the conversation about %s:\n---\n%s\n---\nBased on this conversation, determine the customer's NEED CATEGORY and SUBTYPE.",
		strings.ToLower(string(topic)), strings.Join(pairs, "\n\n"))
}

func classificationSchema() *domain.ResponseSchema {
	categories := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories = append(categories, string(c))
	}
	subtypes := make([]string, 0, len(domain.Subtypes()))
	for _, s := range domain.Subtypes() {
		subtypes = append(subtypes, string(s))
	}
	return &domain.ResponseSchema{
		Name: "need_classification",
		Fields: []domain.SchemaField{
			{Name: "category", Description: "The overall need category for the customer.", Enum: categories},
			{Name: "subtype", Description: "The primary subtype of the customer's challenge.", Enum: subtypes},
		},
	}
}

func normalizePromptInput(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

// stripCodeFence removes a surrounding ``` or ```json fence some models add
// despite being asked for bare JSON.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func parseClassification(raw string) (domain.Classification, error) {
	var out classificationResponse
	dec := json.NewDecoder(bytes.NewBufferString(stripCodeFence(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return domain.Classification{}, fmt.Errorf("assistant: decode classification: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return domain.Classification{}, errors.New("assistant: decode classification: multiple JSON values")
		}
		return domain.Classification{}, fmt.Errorf("assistant: decode classification trailing data: %w", err)
	}
	cls := domain.Classification{
		Category: domain.Category(strings.ToUpper(strings.TrimSpace(out.Category))),
		Subtype:  domain.Subtype(strings.ToUpper(strings.TrimSpace(out.Subtype))),
	}
	if !cls.Valid() {
		return domain.Classification{}, fmt.Errorf("assistant: classification %q/%q outside closed sets", out.Category, out.Subtype)
	}
	return cls, nil
}
