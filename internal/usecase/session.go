package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"wellness-assistant/internal/conversation"
	"wellness-assistant/internal/domain"
)

const defaultMaxAnswerLen = 1000

type SessionStore interface {
	GetSession(ctx context.Context, sessionID string) (domain.Session, error)
	SaveSession(ctx context.Context, session domain.Session, appended []domain.Message) error
}

type ActionKind string

const (
	ActionOption ActionKind = "option"
	ActionText   ActionKind = "text"
)

type ActInput struct {
	SessionID string
	Kind      ActionKind
	Value     string
	Label     string
	Text      string
}

type SessionOutput struct {
	SessionID   string
	State       domain.ConversationState
	Closed      bool
	AcceptsText bool
	Messages    []domain.Message
}

// SessionService runs one controller transition per request: load, restore,
// dispatch, persist whatever the transition appended.
type SessionService struct {
	store        SessionStore
	phraser      conversation.Phraser
	classifier   conversation.Classifier
	dialogues    conversation.DialogueSource
	maxAnswerLen int
	controlOpts  []conversation.Option
}

func NewSessionService(
	store SessionStore,
	p conversation.Phraser,
	cl conversation.Classifier,
	d conversation.DialogueSource,
	maxAnswerLen int,
	opts ...conversation.Option,
) (*SessionService, error) {
	if store == nil {
		return nil, errors.New("usecase: session store must not be nil")
	}
	if p == nil {
		return nil, errors.New("usecase: phraser must not be nil")
	}
	if cl == nil {
		return nil, errors.New("usecase: classifier must not be nil")
	}
	if d == nil {
		return nil, errors.New("usecase: dialogue source must not be nil")
	}
	if maxAnswerLen <= 0 {
		maxAnswerLen = defaultMaxAnswerLen
	}
	return &SessionService{
		store:        store,
		phraser:      p,
		classifier:   cl,
		dialogues:    d,
		maxAnswerLen: maxAnswerLen,
		controlOpts:  opts,
	}, nil
}

// Start creates and persists a new session in the Welcome state.
func (s *SessionService) Start(ctx context.Context) (SessionOutput, error) {
	c, err := conversation.New(newUUID(), s.phraser, s.classifier, s.dialogues, s.controlOpts...)
	if err != nil {
		return SessionOutput{}, newError(ErrorInternal, "controller_init_error", err)
	}
	snap := c.Snapshot()
	if err := s.store.SaveSession(ctx, snap, snap.Transcript); err != nil {
		return SessionOutput{}, newError(ErrorInternal, "dynamodb_write_error", err)
	}
	return outputFromController(c), nil
}

// Get returns the current view of a session.
func (s *SessionService) Get(ctx context.Context, sessionID string) (SessionOutput, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return SessionOutput{}, newError(ErrorInvalidInput, "missing_session_id", nil)
	}
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return SessionOutput{}, err
	}
	return outputFromSession(session), nil
}

// Act applies one user action. Input the controller ignores leaves storage
// untouched.
func (s *SessionService) Act(ctx context.Context, in ActInput) (SessionOutput, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return SessionOutput{}, newError(ErrorInvalidInput, "missing_session_id", nil)
	}
	switch in.Kind {
	case ActionOption:
		if strings.TrimSpace(in.Value) == "" {
			return SessionOutput{}, newError(ErrorInvalidInput, "empty_option", nil)
		}
	case ActionText:
		if utf8.RuneCountInString(strings.TrimSpace(in.Text)) > s.maxAnswerLen {
			return SessionOutput{}, newError(ErrorInvalidInput, "answer_too_long", nil)
		}
	default:
		return SessionOutput{}, newError(ErrorInvalidInput, "unknown_action", nil)
	}

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return SessionOutput{}, err
	}
	c, err := conversation.Restore(session, s.phraser, s.classifier, s.dialogues, s.controlOpts...)
	if err != nil {
		return SessionOutput{}, newError(ErrorInternal, "session_restore_error", err)
	}

	before := c.Transcript().Len()
	if in.Kind == ActionOption {
		err = c.HandleOption(ctx, in.Value, in.Label)
	} else {
		err = c.SubmitText(ctx, in.Text)
	}
	if err != nil {
		return SessionOutput{}, newError(ErrorInternal, "configuration_error", err)
	}

	appended := c.Transcript().Since(before)
	if len(appended) == 0 {
		return outputFromController(c), nil
	}
	if err := s.store.SaveSession(ctx, c.Snapshot(), appended); err != nil {
		if errors.Is(err, domain.ErrSessionConflict) {
			return SessionOutput{}, newError(ErrorConflict, "session_conflict", err)
		}
		return SessionOutput{}, newError(ErrorInternal, "dynamodb_write_error", err)
	}
	return outputFromController(c), nil
}

func (s *SessionService) load(ctx context.Context, sessionID string) (domain.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, newError(ErrorNotFound, "session_not_found", err)
		}
		return domain.Session{}, newError(ErrorInternal, "dynamodb_read_error", err)
	}
	return session, nil
}

func outputFromController(c *conversation.Controller) SessionOutput {
	snap := c.Snapshot()
	return SessionOutput{
		SessionID:   snap.ID,
		State:       snap.State,
		Closed:      snap.Memory.Closed,
		AcceptsText: c.AcceptsText(),
		Messages:    snap.Transcript,
	}
}

func outputFromSession(s domain.Session) SessionOutput {
	return SessionOutput{
		SessionID:   s.ID,
		State:       s.State,
		Closed:      s.Memory.Closed,
		AcceptsText: s.State == domain.StateAskingQuestions,
		Messages:    s.Transcript,
	}
}

var newUUID = func() string {
	return uuid.NewString()
}
