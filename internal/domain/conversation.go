package domain

import "strings"

// Topic selects one of the fixed conversation tracks.
type Topic string

const (
	TopicSleep    Topic = "SLEEP"
	TopicExercise Topic = "EXERCISE"
	TopicFood     Topic = "FOOD"
	TopicHabit    Topic = "HABIT"
)

// Topics returns the closed topic set in presentation order.
func Topics() []Topic {
	return []Topic{TopicSleep, TopicExercise, TopicFood, TopicHabit}
}

// ParseTopic maps a machine value back to a Topic.
func ParseTopic(s string) (Topic, bool) {
	t := Topic(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Topics() {
		if t == known {
			return t, true
		}
	}
	return "", false
}

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Option is a selectable reply attached to an assistant message.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Message is one transcript entry. Messages are never modified after append.
type Message struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Sender  Sender   `json:"sender"`
	Options []Option `json:"options,omitempty"`
}

type ConversationState string

const (
	StateWelcome         ConversationState = "WELCOME"
	StateTopicSelection  ConversationState = "TOPIC_SELECTION"
	StateAskingQuestions ConversationState = "ASKING_QUESTIONS"
	StateAnalyzing       ConversationState = "ANALYZING"
	StateShowingResults  ConversationState = "SHOWING_RESULTS"
	StateEnded           ConversationState = "ENDED"
)

// ParseConversationState validates a persisted state value.
func ParseConversationState(s string) (ConversationState, bool) {
	switch st := ConversationState(s); st {
	case StateWelcome, StateTopicSelection, StateAskingQuestions, StateAnalyzing, StateShowingResults, StateEnded:
		return st, true
	}
	return "", false
}

// SessionState is the working memory of one conversation. It is replaced
// wholesale on topic selection.
type SessionState struct {
	Topic         Topic
	QuestionIndex int
	Answers       []string
	Closed        bool
}

// Clone returns a copy that shares no slices with s.
func (s SessionState) Clone() SessionState {
	out := s
	if s.Answers != nil {
		out.Answers = append([]string(nil), s.Answers...)
	}
	return out
}

// Session is the persisted snapshot of a conversation controller.
type Session struct {
	ID         string
	State      ConversationState
	Memory     SessionState
	Transcript []Message
	Version    int
}
