package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"wellness-assistant/internal/domain"
)

type fakeDynamo struct {
	getOut     *dynamodb.GetItemOutput
	getErr     error
	queryPages []*dynamodb.QueryOutput
	queryErr   error
	txErr      error

	lastGetInput *dynamodb.GetItemInput
	queryInputs  []dynamodb.QueryInput
	lastTxInput  *dynamodb.TransactWriteItemsInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGetInput = in
	return f.getOut, f.getErr
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, *in)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	page := len(f.queryInputs) - 1
	if page >= len(f.queryPages) {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.queryPages[page], nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.lastTxInput = in
	return &dynamodb.TransactWriteItemsOutput{}, f.txErr
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func mustNewClient(t *testing.T, db *fakeDynamo) *Client {
	t.Helper()
	c, err := New(db, "sessions")
	require.NoError(t, err)
	c.now = func() time.Time { return fixedNow }
	return c
}

func makeMetaItem(state string, index int, answers []string, version int) map[string]types.AttributeValue {
	list := make([]types.AttributeValue, 0, len(answers))
	for _, a := range answers {
		list = append(list, &types.AttributeValueMemberS{Value: a})
	}
	return map[string]types.AttributeValue{
		"PK":            &types.AttributeValueMemberS{Value: sessionPK("abc")},
		"SK":            &types.AttributeValueMemberS{Value: skMeta},
		"state":         &types.AttributeValueMemberS{Value: state},
		"topic":         &types.AttributeValueMemberS{Value: "SLEEP"},
		"questionIndex": &types.AttributeValueMemberN{Value: strconv.Itoa(index)},
		"answers":       &types.AttributeValueMemberL{Value: list},
		"closed":        &types.AttributeValueMemberBOOL{Value: false},
		"version":       &types.AttributeValueMemberN{Value: strconv.Itoa(version)},
	}
}

func makeMsgItem(id int, text, sender string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":     &types.AttributeValueMemberS{Value: sessionPK("abc")},
		"SK":     &types.AttributeValueMemberS{Value: msgSK(id)},
		"id":     &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
		"text":   &types.AttributeValueMemberS{Value: text},
		"sender": &types.AttributeValueMemberS{Value: sender},
	}
}

func TestGetSession_HappyPathWithPagination(t *testing.T) {
	withOptions := makeMsgItem(2, "Are you ready?", "assistant")
	withOptions["options"] = &types.AttributeValueMemberL{Value: []types.AttributeValue{
		&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"label": &types.AttributeValueMemberS{Value: "Begin"},
			"value": &types.AttributeValueMemberS{Value: "begin"},
		}},
	}}
	db := &fakeDynamo{
		getOut: &dynamodb.GetItemOutput{Item: makeMetaItem("ASKING_QUESTIONS", 1, []string{"badly"}, 4)},
		queryPages: []*dynamodb.QueryOutput{
			{
				Items:            []map[string]types.AttributeValue{makeMsgItem(1, "Welcome!", "assistant"), withOptions},
				LastEvaluatedKey: map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: "x"}},
			},
			{Items: []map[string]types.AttributeValue{makeMsgItem(3, "Begin", "user")}},
		},
	}
	c := mustNewClient(t, db)

	s, err := c.GetSession(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", s.ID)
	require.Equal(t, domain.StateAskingQuestions, s.State)
	require.Equal(t, domain.TopicSleep, s.Memory.Topic)
	require.Equal(t, 1, s.Memory.QuestionIndex)
	require.Equal(t, []string{"badly"}, s.Memory.Answers)
	require.Equal(t, 4, s.Version)

	require.Len(t, s.Transcript, 3)
	require.Equal(t, []domain.Option{{Label: "Begin", Value: "begin"}}, s.Transcript[1].Options)
	require.Equal(t, domain.SenderUser, s.Transcript[2].Sender)

	require.Len(t, db.queryInputs, 2)
	require.Nil(t, db.queryInputs[0].ExclusiveStartKey)
	require.NotNil(t, db.queryInputs[1].ExclusiveStartKey)
	require.True(t, *db.queryInputs[0].ScanIndexForward)
	require.Equal(t, "PK = :pk AND begins_with(SK, :prefix)", *db.queryInputs[0].KeyConditionExpression)
	require.True(t, *db.lastGetInput.ConsistentRead)
}

func TestGetSession_NotFound(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{getOut: &dynamodb.GetItemOutput{}})
	_, err := c.GetSession(context.Background(), "abc")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGetSession_Errors(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{getErr: errors.New("boom")})
	_, err := c.GetSession(context.Background(), "abc")
	require.ErrorContains(t, err, "GetSession get item")

	c = mustNewClient(t, &fakeDynamo{
		getOut:   &dynamodb.GetItemOutput{Item: makeMetaItem("WELCOME", 0, nil, 1)},
		queryErr: errors.New("ResourceNotFoundException"),
	})
	_, err = c.GetSession(context.Background(), "abc")
	require.ErrorContains(t, err, "GetSession query")

	bad := makeMetaItem("WELCOME", 0, nil, 1)
	bad["version"] = &types.AttributeValueMemberS{Value: "one"}
	c = mustNewClient(t, &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: bad}})
	_, err = c.GetSession(context.Background(), "abc")
	require.ErrorContains(t, err, "decode meta")

	broken := map[string]types.AttributeValue{"id": &types.AttributeValueMemberN{Value: "1"}}
	c = mustNewClient(t, &fakeDynamo{
		getOut:     &dynamodb.GetItemOutput{Item: makeMetaItem("WELCOME", 0, nil, 1)},
		queryPages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{broken}}},
	})
	_, err = c.GetSession(context.Background(), "abc")
	require.ErrorContains(t, err, "text")

	_, err = c.GetSession(context.Background(), " ")
	require.ErrorContains(t, err, "required")
}

func TestSaveSession_NewSession(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)
	session := domain.Session{ID: "abc", State: domain.StateWelcome}
	appended := []domain.Message{
		{ID: 1, Text: "Welcome!", Sender: domain.SenderAssistant},
		{ID: 2, Text: "Ready?", Sender: domain.SenderAssistant, Options: []domain.Option{{Label: "Begin", Value: "begin"}}},
	}

	require.NoError(t, c.SaveSession(context.Background(), session, appended))
	items := db.lastTxInput.TransactItems
	require.Len(t, items, 3)

	meta := items[0].Put
	require.Equal(t, "attribute_not_exists(PK)", *meta.ConditionExpression)
	require.Equal(t, "1", meta.Item["version"].(*types.AttributeValueMemberN).Value)
	require.Equal(t, "WELCOME", meta.Item["state"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, strconv.FormatInt(fixedNow.Add(ttlDuration).Unix(), 10), meta.Item["ttl"].(*types.AttributeValueMemberN).Value)

	msg := items[2].Put
	require.Equal(t, "MSG#00000002", msg.Item["SK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "attribute_not_exists(PK) AND attribute_not_exists(SK)", *msg.ConditionExpression)
	require.Contains(t, msg.Item, "options")
	require.NotContains(t, items[1].Put.Item, "options")
}

func TestSaveSession_ExistingSessionUsesVersionCondition(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)
	session := domain.Session{
		ID:      "abc",
		State:   domain.StateAskingQuestions,
		Memory:  domain.SessionState{Topic: domain.TopicHabit, QuestionIndex: 2, Answers: []string{"a", "b"}},
		Version: 6,
	}

	require.NoError(t, c.SaveSession(context.Background(), session, nil))
	meta := db.lastTxInput.TransactItems[0].Put
	require.Equal(t, "#version = :expected", *meta.ConditionExpression)
	require.Equal(t, "version", meta.ExpressionAttributeNames["#version"])
	require.Equal(t, "6", meta.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value)
	require.Equal(t, "7", meta.Item["version"].(*types.AttributeValueMemberN).Value)
	require.Len(t, meta.Item["answers"].(*types.AttributeValueMemberL).Value, 2)
}

func TestSaveSession_ConditionFailureIsConflict(t *testing.T) {
	db := &fakeDynamo{txErr: &types.TransactionCanceledException{
		Message: aws.String("Transaction cancelled"),
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		},
	}}
	c := mustNewClient(t, db)
	err := c.SaveSession(context.Background(), domain.Session{ID: "abc", Version: 2}, nil)
	require.ErrorIs(t, err, domain.ErrSessionConflict)
}

func TestSaveSession_OtherErrors(t *testing.T) {
	db := &fakeDynamo{txErr: &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: aws.String("ThrottlingError")}},
	}}
	c := mustNewClient(t, db)
	err := c.SaveSession(context.Background(), domain.Session{ID: "abc"}, nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrSessionConflict)
	require.Contains(t, err.Error(), "SaveSession")

	err = c.SaveSession(context.Background(), domain.Session{}, nil)
	require.ErrorContains(t, err, "required")

	err = c.SaveSession(context.Background(), domain.Session{ID: "abc"}, make([]domain.Message, maxTransactItems))
	require.ErrorContains(t, err, "exceed")
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)
	session := domain.Session{
		ID:      "abc",
		State:   domain.StateEnded,
		Memory:  domain.SessionState{Topic: domain.TopicSleep, QuestionIndex: 1, Answers: []string{"fine"}, Closed: true},
		Version: 3,
	}
	appended := []domain.Message{{ID: 9, Text: "Bye", Sender: domain.SenderAssistant, Options: []domain.Option{{Label: "End Session", Value: "end_session"}}}}
	require.NoError(t, c.SaveSession(context.Background(), session, appended))

	metaAttrs := db.lastTxInput.TransactItems[0].Put.Item
	msgAttrs := db.lastTxInput.TransactItems[1].Put.Item
	db.getOut = &dynamodb.GetItemOutput{Item: metaAttrs}
	db.queryPages = []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{msgAttrs}}}

	loaded, err := c.GetSession(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, session.Memory, loaded.Memory)
	require.Equal(t, domain.StateEnded, loaded.State)
	require.Equal(t, 4, loaded.Version)
	require.Equal(t, appended, loaded.Transcript)
}

func TestMsgSK_SortsLexically(t *testing.T) {
	require.Equal(t, "MSG#00000007", msgSK(7))
	require.Less(t, msgSK(9), msgSK(10))
}

func TestSessionPK(t *testing.T) {
	require.Equal(t, "SESSION#my-session", sessionPK("my-session"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "sessions")
	require.ErrorContains(t, err, "must not be nil")
	_, err = New(&fakeDynamo{}, " ")
	require.ErrorContains(t, err, "must not be empty")
}
