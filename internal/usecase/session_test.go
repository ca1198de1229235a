package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"wellness-assistant/internal/catalog"
	"wellness-assistant/internal/conversation"
	"wellness-assistant/internal/domain"
)

type memStore struct {
	sessions map[string]domain.Session
	getErr   error
	saveErr  error
	saves    int
	appended [][]domain.Message
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]domain.Session{}}
}

func (m *memStore) GetSession(_ context.Context, id string) (domain.Session, error) {
	if m.getErr != nil {
		return domain.Session{}, m.getErr
	}
	s, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	s.Transcript = append([]domain.Message(nil), s.Transcript...)
	return s, nil
}

func (m *memStore) SaveSession(_ context.Context, s domain.Session, appended []domain.Message) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if stored, ok := m.sessions[s.ID]; ok && stored.Version != s.Version {
		return domain.ErrSessionConflict
	}
	m.saves++
	m.appended = append(m.appended, appended)
	s.Version++
	m.sessions[s.ID] = s
	return nil
}

type stubPhraser struct{}

func (stubPhraser) AffirmTopic(_ context.Context, label string) (string, error) {
	return "Great, let's talk about " + label + ".", nil
}

func (stubPhraser) Rephrase(_ context.Context, text string) (string, error) {
	return "You said " + text + "?", nil
}

type stubClassifier struct {
	cls domain.Classification
	err error
}

func (s stubClassifier) Classify(context.Context, domain.Topic, []string, []string) (domain.Classification, error) {
	return s.cls, s.err
}

func newTestService(t *testing.T, store SessionStore, maxAnswerLen int) *SessionService {
	t.Helper()
	prev := newUUID
	newUUID = func() string { return "session-123" }
	t.Cleanup(func() { newUUID = prev })

	svc, err := NewSessionService(store, stubPhraser{},
		stubClassifier{cls: domain.Classification{Category: domain.CategoryHigh, Subtype: domain.SubtypeEmotional}},
		catalog.Default(), maxAnswerLen,
		conversation.WithPacer(conversation.NewPacer(0)),
		conversation.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	return svc
}

func requireCode(t *testing.T, err error, code ErrorCode, reason string) {
	t.Helper()
	var ue *Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, code, ue.Code)
	require.Equal(t, reason, ue.Reason)
}

func TestNewSessionService_Validation(t *testing.T) {
	d := catalog.Default()
	cl := stubClassifier{}
	_, err := NewSessionService(nil, stubPhraser{}, cl, d, 0)
	require.Error(t, err)
	_, err = NewSessionService(newMemStore(), nil, cl, d, 0)
	require.Error(t, err)
	_, err = NewSessionService(newMemStore(), stubPhraser{}, nil, d, 0)
	require.Error(t, err)
	_, err = NewSessionService(newMemStore(), stubPhraser{}, cl, nil, 0)
	require.Error(t, err)

	svc, err := NewSessionService(newMemStore(), stubPhraser{}, cl, d, 0)
	require.NoError(t, err)
	require.Equal(t, defaultMaxAnswerLen, svc.maxAnswerLen)
}

func TestStart_PersistsWelcomeSession(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, 0)

	out, err := svc.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, "session-123", out.SessionID)
	require.Equal(t, domain.StateWelcome, out.State)
	require.False(t, out.AcceptsText)
	require.Len(t, out.Messages, 2)

	require.Equal(t, 1, store.saves)
	require.Len(t, store.appended[0], 2)
	require.Equal(t, 1, store.sessions["session-123"].Version)
}

func TestStart_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("dynamo down")
	_, err := newTestService(t, store, 0).Start(context.Background())
	requireCode(t, err, ErrorInternal, "dynamodb_write_error")
}

func TestGet_Errors(t *testing.T) {
	svc := newTestService(t, newMemStore(), 0)
	_, err := svc.Get(context.Background(), "missing")
	requireCode(t, err, ErrorNotFound, "session_not_found")
	_, err = svc.Get(context.Background(), " ")
	requireCode(t, err, ErrorInvalidInput, "missing_session_id")

	store := newMemStore()
	store.getErr = errors.New("throttled")
	_, err = newTestService(t, store, 0).Get(context.Background(), "x")
	requireCode(t, err, ErrorInternal, "dynamodb_read_error")
}

func TestAct_FullConversationAcrossRequests(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, 0)
	ctx := context.Background()

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	out, err := svc.Act(ctx, ActInput{SessionID: "session-123", Kind: ActionOption, Value: conversation.OptionBegin, Label: "Begin"})
	require.NoError(t, err)
	require.Equal(t, domain.StateTopicSelection, out.State)

	out, err = svc.Act(ctx, ActInput{SessionID: "session-123", Kind: ActionOption, Value: "EXERCISE", Label: "Exercise and Energy Levels"})
	require.NoError(t, err)
	require.Equal(t, domain.StateAskingQuestions, out.State)
	require.True(t, out.AcceptsText)

	d, err := catalog.Default().Get(domain.TopicExercise)
	require.NoError(t, err)
	for i := range d.Questions {
		out, err = svc.Act(ctx, ActInput{SessionID: "session-123", Kind: ActionText, Text: "answer"})
		require.NoError(t, err, "answer %d", i)
	}
	require.Equal(t, domain.StateEnded, out.State)
	require.False(t, out.AcceptsText)

	want, ok := d.Recommendation(domain.Classification{Category: domain.CategoryHigh, Subtype: domain.SubtypeEmotional})
	require.True(t, ok)
	require.Equal(t, want, out.Messages[len(out.Messages)-2].Text)

	out, err = svc.Act(ctx, ActInput{SessionID: "session-123", Kind: ActionOption, Value: conversation.OptionEndSession, Label: "End Session"})
	require.NoError(t, err)
	require.True(t, out.Closed)

	got, err := svc.Get(ctx, "session-123")
	require.NoError(t, err)
	require.Equal(t, out.Messages, got.Messages)
	require.True(t, got.Closed)
	for i := 1; i < len(got.Messages); i++ {
		require.Equal(t, got.Messages[i-1].ID+1, got.Messages[i].ID)
	}
}

func TestAct_TopicEchoUsesCatalogLabel(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, 0)
	ctx := context.Background()
	_, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Act(ctx, ActInput{SessionID: "session-123", Kind: ActionOption, Value: conversation.OptionBegin})
	require.NoError(t, err)

	out, err := svc.Act(ctx, ActInput{SessionID: "session-123", Kind: ActionOption, Value: "SLEEP", Label: "Food and Diet " + strings.Repeat("x", 4096)})
	require.NoError(t, err)

	appended := store.appended[len(store.appended)-1]
	require.Equal(t, "Topic Selection: Sleep Habits", appended[0].Text)
	require.Equal(t, "Great, let's talk about Sleep Habits.", appended[1].Text)
	require.Equal(t, domain.TopicSleep, store.sessions["session-123"].Memory.Topic)
	require.Equal(t, domain.StateAskingQuestions, out.State)
}

func TestAct_IgnoredInputDoesNotWrite(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, 0)
	_, err := svc.Start(context.Background())
	require.NoError(t, err)

	out, err := svc.Act(context.Background(), ActInput{SessionID: "session-123", Kind: ActionText, Text: "too early"})
	require.NoError(t, err)
	require.Len(t, out.Messages, 2)

	_, err = svc.Act(context.Background(), ActInput{SessionID: "session-123", Kind: ActionOption, Value: "SLEEP"})
	require.NoError(t, err)
	require.Equal(t, 1, store.saves)
}

func TestAct_Validation(t *testing.T) {
	svc := newTestService(t, newMemStore(), 10)
	ctx := context.Background()

	_, err := svc.Act(ctx, ActInput{Kind: ActionText, Text: "x"})
	requireCode(t, err, ErrorInvalidInput, "missing_session_id")
	_, err = svc.Act(ctx, ActInput{SessionID: "s", Kind: "swipe"})
	requireCode(t, err, ErrorInvalidInput, "unknown_action")
	_, err = svc.Act(ctx, ActInput{SessionID: "s", Kind: ActionOption, Value: " "})
	requireCode(t, err, ErrorInvalidInput, "empty_option")
	_, err = svc.Act(ctx, ActInput{SessionID: "s", Kind: ActionText, Text: strings.Repeat("z", 11)})
	requireCode(t, err, ErrorInvalidInput, "answer_too_long")
	_, err = svc.Act(ctx, ActInput{SessionID: "s", Kind: ActionText, Text: "ok"})
	requireCode(t, err, ErrorNotFound, "session_not_found")
}

func TestAct_ConcurrentWriteIsConflict(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, 0)
	_, err := svc.Start(context.Background())
	require.NoError(t, err)

	// another invocation saved in between
	bumped := store.sessions["session-123"]
	loaded := bumped
	bumped.Version++
	store.sessions["session-123"] = bumped
	svc.store = &staleReadStore{memStore: store, stale: loaded}

	_, err = svc.Act(context.Background(), ActInput{SessionID: "session-123", Kind: ActionOption, Value: conversation.OptionBegin})
	requireCode(t, err, ErrorConflict, "session_conflict")
}

type staleReadStore struct {
	*memStore
	stale domain.Session
}

func (s *staleReadStore) GetSession(context.Context, string) (domain.Session, error) {
	return s.stale, nil
}

func TestAct_StoreWriteFailure(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store, 0)
	_, err := svc.Start(context.Background())
	require.NoError(t, err)

	store.saveErr = errors.New("dynamo down")
	_, err = svc.Act(context.Background(), ActInput{SessionID: "session-123", Kind: ActionOption, Value: conversation.OptionBegin})
	requireCode(t, err, ErrorInternal, "dynamodb_write_error")
}

func TestAct_CorruptSnapshot(t *testing.T) {
	store := newMemStore()
	store.sessions["bad"] = domain.Session{ID: "bad", State: "NAPPING"}
	_, err := newTestService(t, store, 0).Act(context.Background(), ActInput{SessionID: "bad", Kind: ActionOption, Value: "begin"})
	requireCode(t, err, ErrorInternal, "session_restore_error")
}

func TestError_Format(t *testing.T) {
	require.Equal(t, "usecase: NOT_FOUND (session_not_found)", newError(ErrorNotFound, "session_not_found", nil).Error())
	err := newError(ErrorInternal, "x", errors.New("boom"))
	require.Equal(t, "usecase: INTERNAL_ERROR (x): boom", err.Error())
	require.EqualError(t, errors.Unwrap(err), "boom")
}
