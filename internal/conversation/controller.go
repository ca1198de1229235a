// Package conversation drives the wellness chat: topic selection, the fixed
// question sequence, classification and the final recommendation.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"wellness-assistant/internal/catalog"
	"wellness-assistant/internal/domain"
)

const (
	OptionBegin      = "begin"
	OptionLearnMore  = "learn_more"
	OptionEndSession = "end_session"

	DefaultServiceTimeout = 8 * time.Second
)

const (
	welcomeText       = "Welcome! I'm Ziata, your Lifestyle and Wellness Assistant. My goal is to help you improve your life with tiny, sustainable changes."
	readyText         = "Are you ready to talk to Ziata?"
	learnMoreText     = "Ziata asks you a short series of questions about one area of your lifestyle, then suggests one small, sustainable change based on your answers. It only takes a few minutes."
	topicPromptText   = "Which topic would you like to discuss with Ziata? Please click below to select from the menu of available topics."
	analyzingText     = "Thank you for sharing. Let me analyze your responses to provide a personalized recommendation..."
	fallbackAdvice    = "I've analyzed your responses. It seems focusing on consistency could be very helpful for you."
	closingText       = "Thank you for chatting with Ziata. Remember, small changes lead to remarkable results. Have a great day!"
	sessionEndedText  = "This session has ended. Thank you for your time! Please return to survey."
	affirmFallback    = "Understood."
	rephraseFallback  = "Thank you for sharing that."
	topicSelectPrefix = "Topic Selection: "
)

// Phraser produces short assistant replies. Both calls are best effort.
type Phraser interface {
	AffirmTopic(ctx context.Context, label string) (string, error)
	Rephrase(ctx context.Context, text string) (string, error)
}

// Classifier maps a finished transcript to a (category, subtype) pair.
type Classifier interface {
	Classify(ctx context.Context, topic domain.Topic, questions, answers []string) (domain.Classification, error)
}

// DialogueSource resolves a topic to its script.
type DialogueSource interface {
	Get(topic domain.Topic) (catalog.Dialogue, error)
}

// Controller owns one session. Transitions are serialized: input that arrives
// while a transition is running is dropped.
type Controller struct {
	id             string
	phraser        Phraser
	classifier     Classifier
	dialogues      DialogueSource
	pacer          *Pacer
	logger         *slog.Logger
	serviceTimeout time.Duration

	turn sync.Mutex
	busy atomic.Bool

	mu      sync.RWMutex
	state   domain.ConversationState
	memory  domain.SessionState
	version int

	transcript *Transcript
}

type Option func(*Controller)

// WithPacer replaces the default typing-latency pacer.
func WithPacer(p *Pacer) Option {
	return func(c *Controller) {
		if p != nil {
			c.pacer = p
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithServiceTimeout bounds every phrasing and classification call.
func WithServiceTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.serviceTimeout = d
		}
	}
}

// New creates a controller in the Welcome state with the two greeting
// messages already in its transcript.
func New(sessionID string, p Phraser, cl Classifier, d DialogueSource, opts ...Option) (*Controller, error) {
	c, err := newController(sessionID, p, cl, d, opts...)
	if err != nil {
		return nil, err
	}
	c.state = domain.StateWelcome
	c.transcript = NewTranscript(
		domain.Message{ID: 1, Text: welcomeText, Sender: domain.SenderAssistant},
		domain.Message{ID: 2, Text: readyText, Sender: domain.SenderAssistant, Options: welcomeOptions()},
	)
	return c, nil
}

// Restore rebuilds a controller from a persisted snapshot.
func Restore(s domain.Session, p Phraser, cl Classifier, d DialogueSource, opts ...Option) (*Controller, error) {
	c, err := newController(s.ID, p, cl, d, opts...)
	if err != nil {
		return nil, err
	}
	state, ok := domain.ParseConversationState(string(s.State))
	if !ok {
		return nil, fmt.Errorf("conversation: restore: unknown state %q", s.State)
	}
	if err := checkLockstep(s.Memory); err != nil {
		return nil, err
	}
	if state == domain.StateAskingQuestions {
		if _, err := d.Get(s.Memory.Topic); err != nil {
			return nil, err
		}
	}
	c.state = state
	c.memory = s.Memory.Clone()
	c.version = s.Version
	c.transcript = NewTranscript(s.Transcript...)
	return c, nil
}

func newController(sessionID string, p Phraser, cl Classifier, d DialogueSource, opts ...Option) (*Controller, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("conversation: session id must not be empty")
	}
	if p == nil {
		return nil, errors.New("conversation: phraser must not be nil")
	}
	if cl == nil {
		return nil, errors.New("conversation: classifier must not be nil")
	}
	if d == nil {
		return nil, errors.New("conversation: dialogue source must not be nil")
	}
	c := &Controller{
		id:             sessionID,
		phraser:        p,
		classifier:     cl,
		dialogues:      d,
		pacer:          NewPacer(DefaultMinLatency),
		logger:         slog.Default(),
		serviceTimeout: DefaultServiceTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) State() domain.ConversationState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Memory returns a copy of the session working memory.
func (c *Controller) Memory() domain.SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memory.Clone()
}

func (c *Controller) Messages() []domain.Message {
	return c.transcript.Messages()
}

func (c *Controller) Transcript() *Transcript {
	return c.transcript
}

// Busy reports whether a transition is in flight (the typing indicator).
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// AcceptsText reports whether a free-text answer would currently be taken.
func (c *Controller) AcceptsText() bool {
	return !c.Busy() && c.State() == domain.StateAskingQuestions
}

// Snapshot captures the controller for persistence.
func (c *Controller) Snapshot() domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.Session{
		ID:         c.id,
		State:      c.state,
		Memory:     c.memory.Clone(),
		Transcript: c.transcript.Messages(),
		Version:    c.version,
	}
}

// HandleOption dispatches a clicked option by current state and value.
// Clicks that do not apply to the current state are ignored.
func (c *Controller) HandleOption(ctx context.Context, value, label string) error {
	if !c.acquire("option") {
		return nil
	}
	defer c.release()

	value = strings.TrimSpace(value)
	switch state := c.State(); {
	case state == domain.StateWelcome && value == OptionBegin:
		c.begin(ctx)
	case state == domain.StateWelcome && value == OptionLearnMore:
		c.learnMore(ctx)
	case state == domain.StateTopicSelection:
		topic, ok := domain.ParseTopic(value)
		if !ok {
			c.logger.Debug("conversation: unknown topic option ignored", "session_id", c.id, "value", value)
			return nil
		}
		if label = strings.TrimSpace(label); label != "" && label != catalog.Label(topic) {
			c.logger.Warn("conversation: client topic label ignored", "session_id", c.id, "topic", topic, "label_len", len(label))
		}
		return c.selectTopic(ctx, topic)
	case state == domain.StateEnded && value == OptionEndSession:
		c.endSession(ctx)
	default:
		c.logger.Debug("conversation: stale option ignored", "session_id", c.id, "state", state, "value", value)
	}
	return nil
}

// Begin moves from Welcome to topic selection.
func (c *Controller) Begin(ctx context.Context) {
	if !c.acquire("begin") {
		return
	}
	defer c.release()
	c.begin(ctx)
}

// LearnMore explains the assistant and stays in Welcome.
func (c *Controller) LearnMore(ctx context.Context) {
	if !c.acquire("learn_more") {
		return
	}
	defer c.release()
	c.learnMore(ctx)
}

// SelectTopic starts the question sequence for topic. It is accepted during
// topic selection and mid-questions; working memory is always replaced rather
// than extended. The echo and the affirmation use the catalog label.
func (c *Controller) SelectTopic(ctx context.Context, topic domain.Topic) error {
	if !c.acquire("select_topic") {
		return nil
	}
	defer c.release()
	return c.selectTopic(ctx, topic)
}

// SubmitText records a free-text answer. Blank text, or text outside the
// question phase, is ignored.
func (c *Controller) SubmitText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if !c.acquire("submit_text") {
		return nil
	}
	defer c.release()
	return c.submitText(ctx, text)
}

// EndSession closes a finished session.
func (c *Controller) EndSession(ctx context.Context) {
	if !c.acquire("end_session") {
		return
	}
	defer c.release()
	c.endSession(ctx)
}

func (c *Controller) begin(ctx context.Context) {
	if c.State() != domain.StateWelcome {
		return
	}
	c.transcript.Append(domain.SenderUser, "Begin", nil)
	c.setState(domain.StateTopicSelection)
	c.say(ctx, topicPromptText, catalog.TopicOptions())
}

func (c *Controller) learnMore(ctx context.Context) {
	if c.State() != domain.StateWelcome {
		return
	}
	c.transcript.Append(domain.SenderUser, "Learn More", nil)
	c.say(ctx, learnMoreText, []domain.Option{{Label: "Begin", Value: OptionBegin}})
}

func (c *Controller) selectTopic(ctx context.Context, topic domain.Topic) error {
	switch state := c.State(); state {
	case domain.StateTopicSelection, domain.StateAskingQuestions:
	default:
		c.logger.Debug("conversation: topic selection ignored", "session_id", c.id, "state", state)
		return nil
	}
	dialogue, err := c.dialogues.Get(topic)
	if err != nil {
		return err
	}
	if len(dialogue.Questions) == 0 {
		return domain.NewError(domain.ErrorConfiguration, "dialogue_empty",
			fmt.Errorf("conversation: topic %q has no questions", topic))
	}
	label := catalog.Label(topic)
	if prev := c.Memory(); prev.Topic != "" || len(prev.Answers) > 0 {
		c.logger.Info("conversation: resetting working memory", "session_id", c.id, "previous_topic", prev.Topic, "discarded_answers", len(prev.Answers))
	}
	c.setMemory(domain.SessionState{Topic: topic, Answers: []string{}})

	c.transcript.Append(domain.SenderUser, topicSelectPrefix+label, nil)
	start := c.pacer.Start()
	c.deliver(ctx, start, c.affirm(ctx, label), nil)

	c.setState(domain.StateAskingQuestions)
	c.say(ctx, dialogue.Questions[0], nil)
	return nil
}

func (c *Controller) submitText(ctx context.Context, text string) error {
	if state := c.State(); state != domain.StateAskingQuestions {
		c.logger.Debug("conversation: free text ignored", "session_id", c.id, "state", state)
		return nil
	}
	memory := c.Memory()
	dialogue, err := c.dialogues.Get(memory.Topic)
	if err != nil {
		return err
	}
	if memory.QuestionIndex >= len(dialogue.Questions) {
		return domain.NewError(domain.ErrorConfiguration, "question_index_out_of_range",
			fmt.Errorf("conversation: index %d with %d questions", memory.QuestionIndex, len(dialogue.Questions)))
	}

	c.transcript.Append(domain.SenderUser, text, nil)
	memory.Answers = append(memory.Answers, text)
	c.setMemory(memory)

	start := c.pacer.Start()
	c.deliver(ctx, start, c.rephrase(ctx, text), nil)

	memory.QuestionIndex++
	c.setMemory(memory)
	if err := checkLockstep(memory); err != nil {
		return err
	}

	if memory.QuestionIndex < len(dialogue.Questions) {
		c.say(ctx, dialogue.Questions[memory.QuestionIndex], nil)
		return nil
	}

	c.say(ctx, analyzingText, nil)
	c.setState(domain.StateAnalyzing)
	c.analyze(ctx, memory.Topic, dialogue, memory.Answers)
	return nil
}

func (c *Controller) analyze(ctx context.Context, topic domain.Topic, dialogue catalog.Dialogue, answers []string) {
	start := c.pacer.Start()
	cls := c.classify(ctx, topic, dialogue.Questions, answers)
	text, ok := dialogue.Recommendation(cls)
	if !ok {
		c.logger.Warn("conversation: no recommendation for classification", "session_id", c.id, "topic", topic, "category", cls.Category, "subtype", cls.Subtype)
		text = fallbackAdvice
	}
	c.deliver(ctx, start, text, nil)
	c.setState(domain.StateShowingResults)

	c.say(ctx, closingText, []domain.Option{{Label: "End Session", Value: OptionEndSession}})
	c.setState(domain.StateEnded)
}

func (c *Controller) endSession(ctx context.Context) {
	if c.State() != domain.StateEnded {
		return
	}
	memory := c.Memory()
	if memory.Closed {
		return
	}
	c.transcript.Append(domain.SenderUser, "End Session", nil)
	c.say(ctx, sessionEndedText, nil)
	memory.Closed = true
	c.setMemory(memory)
}

func (c *Controller) affirm(ctx context.Context, label string) string {
	text, err := callService(ctx, c.serviceTimeout, func(ctx context.Context) (string, error) {
		return c.phraser.AffirmTopic(ctx, label)
	})
	return c.phraseOrFallback("affirm", text, err, affirmFallback)
}

func (c *Controller) rephrase(ctx context.Context, answer string) string {
	text, err := callService(ctx, c.serviceTimeout, func(ctx context.Context) (string, error) {
		return c.phraser.Rephrase(ctx, answer)
	})
	return c.phraseOrFallback("rephrase", text, err, rephraseFallback)
}

func (c *Controller) phraseOrFallback(kind, text string, err error, fallback string) string {
	text = strings.TrimSpace(text)
	if err == nil && text != "" {
		return text
	}
	if err == nil {
		err = domain.NewError(domain.ErrorServiceUnavailable, "empty_reply", nil)
	}
	c.logger.Warn("conversation: phrasing service unavailable, using fallback", "session_id", c.id, "kind", kind, "err", err)
	return fallback
}

func (c *Controller) classify(ctx context.Context, topic domain.Topic, questions, answers []string) domain.Classification {
	cls, err := callService(ctx, c.serviceTimeout, func(ctx context.Context) (domain.Classification, error) {
		return c.classifier.Classify(ctx, topic, questions, answers)
	})
	if err == nil && !cls.Valid() {
		err = domain.NewError(domain.ErrorClassification, "out_of_range",
			fmt.Errorf("conversation: classification %q/%q outside closed sets", cls.Category, cls.Subtype))
	}
	if err != nil {
		c.logger.Warn("conversation: classification failed, using default", "session_id", c.id, "topic", topic, "err", err)
		return domain.DefaultClassification
	}
	return cls
}

// say delivers fixed text through the same latency floor as service replies.
func (c *Controller) say(ctx context.Context, text string, options []domain.Option) {
	c.deliver(ctx, c.pacer.Start(), text, options)
}

// deliver is the single path by which assistant messages reach the transcript.
func (c *Controller) deliver(ctx context.Context, start time.Time, text string, options []domain.Option) {
	c.pacer.Wait(ctx, start)
	c.transcript.Append(domain.SenderAssistant, text, options)
}

func (c *Controller) acquire(action string) bool {
	if !c.turn.TryLock() {
		c.logger.Debug("conversation: input ignored while busy", "session_id", c.id, "action", action)
		return false
	}
	c.busy.Store(true)
	return true
}

func (c *Controller) release() {
	c.busy.Store(false)
	c.turn.Unlock()
}

func (c *Controller) setState(s domain.ConversationState) {
	c.mu.Lock()
	prev := c.state
	c.state = s
	c.mu.Unlock()
	c.logger.Debug("conversation: state transition", "session_id", c.id, "from", prev, "to", s)
}

func (c *Controller) setMemory(m domain.SessionState) {
	c.mu.Lock()
	c.memory = m.Clone()
	c.mu.Unlock()
}

func checkLockstep(m domain.SessionState) error {
	if len(m.Answers) != m.QuestionIndex {
		return domain.NewError(domain.ErrorConfiguration, "answers_out_of_step",
			fmt.Errorf("conversation: %d answers at question index %d", len(m.Answers), m.QuestionIndex))
	}
	return nil
}

func welcomeOptions() []domain.Option {
	return []domain.Option{
		{Label: "Begin", Value: OptionBegin},
		{Label: "Learn More", Value: OptionLearnMore},
	}
}

// callService runs fn with a bounded deadline. A late result is discarded so
// the caller never waits past the timeout, even if fn ignores its context.
func callService[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(callCtx)
		done <- result{val: v, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-callCtx.Done():
		var zero T
		return zero, domain.NewError(domain.ErrorServiceUnavailable, "timeout", callCtx.Err())
	}
}
