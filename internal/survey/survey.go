// Package survey is the single-question risk self-assessment: one localized
// question whose answer maps to a fixed risk level and results page.
package survey

import (
	"errors"
	"fmt"
	"strings"
)

type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	Chinese Language = "zh"
)

func Languages() []Language {
	return []Language{English, Spanish, Chinese}
}

type RiskLevel string

const (
	RiskLower    RiskLevel = "Lower"
	RiskModerate RiskLevel = "Moderate"
	RiskHigher   RiskLevel = "Higher"
)

var (
	ErrUnknownLanguage = errors.New("survey: unknown language")
	ErrUnknownAnswer   = errors.New("survey: unknown answer")
)

// answerRisk is the fixed answer id to risk mapping shared by every language.
var answerRisk = []struct {
	id   string
	risk RiskLevel
}{
	{"a", RiskLower},
	{"b", RiskModerate},
	{"c", RiskHigher},
}

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Prompt is the question screen in one language.
type Prompt struct {
	Language Language `json:"language"`
	Progress string   `json:"progress"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Result is the results screen for one answer.
type Result struct {
	Language     Language  `json:"language"`
	AnswerID     string    `json:"answerId"`
	Risk         RiskLevel `json:"risk"`
	RiskLabel    string    `json:"riskLabel"`
	Explanation  string    `json:"explanation"`
	WhatNext     string    `json:"whatNext"`
	WhatNextBody string    `json:"whatNextBody"`
	Locations    []string  `json:"locations"`
}

// ParseLanguage accepts a language code case-insensitively. An empty code
// selects English.
func ParseLanguage(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return English, nil
	}
	lang := Language(code)
	if _, ok := translations[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return lang, nil
}

// Question returns the localized question screen.
func Question(code string) (Prompt, error) {
	lang, err := ParseLanguage(code)
	if err != nil {
		return Prompt{}, err
	}
	t := translations[lang]
	return Prompt{
		Language: lang,
		Progress: t.progress,
		Question: t.question,
		Options: []Option{
			{ID: "a", Text: t.answers.a},
			{ID: "b", Text: t.answers.b},
			{ID: "c", Text: t.answers.c},
		},
	}, nil
}

// Assess maps an answer id to its localized result.
func Assess(code, answerID string) (Result, error) {
	lang, err := ParseLanguage(code)
	if err != nil {
		return Result{}, err
	}
	risk, ok := riskFor(strings.ToLower(strings.TrimSpace(answerID)))
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAnswer, answerID)
	}
	t := translations[lang]
	return Result{
		Language:     lang,
		AnswerID:     strings.ToLower(strings.TrimSpace(answerID)),
		Risk:         risk,
		RiskLabel:    t.riskLabels[risk],
		Explanation:  t.explanations[risk],
		WhatNext:     t.whatNext,
		WhatNextBody: t.whatNextBody,
		Locations:    append([]string(nil), t.locations...),
	}, nil
}

func riskFor(id string) (RiskLevel, bool) {
	for _, a := range answerRisk {
		if a.id == id {
			return a.risk, true
		}
	}
	return "", false
}
