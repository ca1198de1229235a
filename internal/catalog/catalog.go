// Package catalog holds the static per-topic question lists and the canned
// recommendation table.
package catalog

import (
	"fmt"
	"maps"

	"wellness-assistant/internal/domain"
)

// Dialogue is the fixed script for one topic. Questions are asked, and sent
// for classification, in slice order.
type Dialogue struct {
	Questions []string
	Responses map[domain.Category]map[domain.Subtype]string
}

// Recommendation looks up the canned text for c. A missing cell is reported
// with ok=false and is not an error.
func (d Dialogue) Recommendation(c domain.Classification) (string, bool) {
	bySubtype, ok := d.Responses[c.Category]
	if !ok {
		return "", false
	}
	text, ok := bySubtype[c.Subtype]
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

var topicLabels = map[domain.Topic]string{
	domain.TopicSleep:    "Sleep Habits",
	domain.TopicExercise: "Exercise and Energy Levels",
	domain.TopicFood:     "Food and Diet",
	domain.TopicHabit:    "Habit Formation",
}

// Label returns the human-readable label for t, or the raw value if unknown.
func Label(t domain.Topic) string {
	if l, ok := topicLabels[t]; ok {
		return l
	}
	return string(t)
}

// TopicOptions returns the selectable options offered at topic selection.
func TopicOptions() []domain.Option {
	topics := domain.Topics()
	out := make([]domain.Option, 0, len(topics))
	for _, t := range topics {
		out = append(out, domain.Option{Label: Label(t), Value: string(t)})
	}
	return out
}

// Catalog resolves a topic to its Dialogue.
type Catalog struct {
	dialogues map[domain.Topic]Dialogue
}

// New builds a Catalog over the given dialogues. It is mostly useful in tests;
// production code uses Default.
func New(dialogues map[domain.Topic]Dialogue) *Catalog {
	return &Catalog{dialogues: dialogues}
}

// Default returns the catalog with the built-in dialogues for every topic.
func Default() *Catalog {
	return New(defaultDialogues)
}

// Get returns a copy of the Dialogue registered for topic. A missing topic is
// a programming error and is reported as a configuration error.
func (c *Catalog) Get(topic domain.Topic) (Dialogue, error) {
	d, ok := c.dialogues[topic]
	if !ok || len(d.Questions) == 0 {
		return Dialogue{}, domain.NewError(domain.ErrorConfiguration, "dialogue_missing", fmt.Errorf("catalog: no dialogue registered for topic %q", topic))
	}
	return Dialogue{
		Questions: append([]string(nil), d.Questions...),
		Responses: cloneResponses(d.Responses),
	}, nil
}

func cloneResponses(in map[domain.Category]map[domain.Subtype]string) map[domain.Category]map[domain.Subtype]string {
	out := make(map[domain.Category]map[domain.Subtype]string, len(in))
	for cat, bySubtype := range in {
		out[cat] = maps.Clone(bySubtype)
	}
	return out
}
