package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"wellness-assistant/internal/domain"
)

const (
	skPrefixMsg = "MSG#"
	skMeta      = "META#"
	ttlDuration = 30 * 24 * time.Hour // 30-day TTL

	// maxTransactItems is the DynamoDB TransactWriteItems limit; one slot is
	// taken by the meta item.
	maxTransactItems = 100
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Client stores conversation sessions in a single DynamoDB table: one META#
// item per session plus one write-once MSG# item per transcript message.
type Client struct {
	api       dynamodbAPI
	tableName string
	now       func() time.Time
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName, now: time.Now}, nil
}

func sessionPK(sessionID string) string {
	return "SESSION#" + sessionID
}

// msgSK zero-pads the message id so lexical order matches transcript order.
func msgSK(id int) string {
	return fmt.Sprintf("%s%08d", skPrefixMsg, id)
}

func (c *Client) ttlValue() int64 {
	return c.now().Add(ttlDuration).Unix()
}

// GetSession loads the meta item and the full transcript for a session.
func (c *Client) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Session{}, errors.New("repository: GetSession: session id is required")
	}
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
			"SK": &types.AttributeValueMemberS{Value: skMeta},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("repository: GetSession get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	session, err := itemToSession(out.Item)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repository: GetSession decode meta: %w", err)
	}
	session.ID = sessionID

	msgs, err := c.queryMessages(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	session.Transcript = msgs
	return session, nil
}

func (c *Client) queryMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
			":prefix": &types.AttributeValueMemberS{Value: skPrefixMsg},
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	}

	var msgs []domain.Message
	for {
		out, err := c.api.Query(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("repository: GetSession query: %w", err)
		}
		for _, item := range out.Items {
			msg, err := itemToMessage(item)
			if err != nil {
				return nil, fmt.Errorf("repository: GetSession unmarshal: %w", err)
			}
			msgs = append(msgs, msg)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return msgs, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// SaveSession writes the meta item and the newly appended messages in one
// transaction. session.Version is the version the caller loaded (0 for a new
// session); the stored version becomes session.Version+1. A concurrent write
// fails with domain.ErrSessionConflict.
func (c *Client) SaveSession(ctx context.Context, session domain.Session, appended []domain.Message) error {
	if strings.TrimSpace(session.ID) == "" {
		return errors.New("repository: SaveSession: session id is required")
	}
	if len(appended)+1 > maxTransactItems {
		return fmt.Errorf("repository: SaveSession: %d messages exceed one transaction", len(appended))
	}

	ttl := c.ttlValue()
	items := make([]types.TransactWriteItem, 0, len(appended)+1)
	items = append(items, types.TransactWriteItem{Put: c.metaPut(session, ttl)})
	for _, m := range appended {
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName:           aws.String(c.tableName),
			Item:                messageItem(session.ID, m, ttl),
			ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
		}})
	}

	_, err := c.api.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if isConditionFailure(err) {
			return fmt.Errorf("repository: SaveSession: %w: %w", domain.ErrSessionConflict, err)
		}
		return fmt.Errorf("repository: SaveSession: %w", err)
	}
	return nil
}

func (c *Client) metaPut(session domain.Session, ttl int64) *types.Put {
	put := &types.Put{
		TableName: aws.String(c.tableName),
		Item:      metaItem(session, session.Version+1, c.now().UTC().Format(time.RFC3339), ttl),
	}
	if session.Version == 0 {
		put.ConditionExpression = aws.String("attribute_not_exists(PK)")
		return put
	}
	put.ConditionExpression = aws.String("#version = :expected")
	put.ExpressionAttributeNames = map[string]string{"#version": "version"}
	put.ExpressionAttributeValues = map[string]types.AttributeValue{
		":expected": &types.AttributeValueMemberN{Value: strconv.Itoa(session.Version)},
	}
	return put
}

func isConditionFailure(err error) bool {
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for _, r := range canceled.CancellationReasons {
			if aws.ToString(r.Code) == "ConditionalCheckFailed" {
				return true
			}
		}
		return false
	}
	var failed *types.ConditionalCheckFailedException
	return errors.As(err, &failed)
}

func metaItem(s domain.Session, version int, lastActivity string, ttl int64) map[string]types.AttributeValue {
	answers := make([]types.AttributeValue, 0, len(s.Memory.Answers))
	for _, a := range s.Memory.Answers {
		answers = append(answers, &types.AttributeValueMemberS{Value: a})
	}
	return map[string]types.AttributeValue{
		"PK":            &types.AttributeValueMemberS{Value: sessionPK(s.ID)},
		"SK":            &types.AttributeValueMemberS{Value: skMeta},
		"sessionId":     &types.AttributeValueMemberS{Value: s.ID},
		"state":         &types.AttributeValueMemberS{Value: string(s.State)},
		"topic":         &types.AttributeValueMemberS{Value: string(s.Memory.Topic)},
		"questionIndex": &types.AttributeValueMemberN{Value: strconv.Itoa(s.Memory.QuestionIndex)},
		"answers":       &types.AttributeValueMemberL{Value: answers},
		"closed":        &types.AttributeValueMemberBOOL{Value: s.Memory.Closed},
		"version":       &types.AttributeValueMemberN{Value: strconv.Itoa(version)},
		"lastActivity":  &types.AttributeValueMemberS{Value: lastActivity},
		"ttl":           &types.AttributeValueMemberN{Value: strconv.FormatInt(ttl, 10)},
	}
}

func messageItem(sessionID string, m domain.Message, ttl int64) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"PK":     &types.AttributeValueMemberS{Value: sessionPK(sessionID)},
		"SK":     &types.AttributeValueMemberS{Value: msgSK(m.ID)},
		"id":     &types.AttributeValueMemberN{Value: strconv.Itoa(m.ID)},
		"text":   &types.AttributeValueMemberS{Value: m.Text},
		"sender": &types.AttributeValueMemberS{Value: string(m.Sender)},
		"ttl":    &types.AttributeValueMemberN{Value: strconv.FormatInt(ttl, 10)},
	}
	if len(m.Options) > 0 {
		opts := make([]types.AttributeValue, 0, len(m.Options))
		for _, o := range m.Options {
			opts = append(opts, &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"label": &types.AttributeValueMemberS{Value: o.Label},
				"value": &types.AttributeValueMemberS{Value: o.Value},
			}})
		}
		item["options"] = &types.AttributeValueMemberL{Value: opts}
	}
	return item
}

func itemToSession(item map[string]types.AttributeValue) (domain.Session, error) {
	state, err := strAttr(item, "state")
	if err != nil {
		return domain.Session{}, err
	}
	topic, _ := strAttr(item, "topic") // empty before topic selection
	index, err := intAttr(item, "questionIndex")
	if err != nil {
		return domain.Session{}, err
	}
	version, err := intAttr(item, "version")
	if err != nil {
		return domain.Session{}, err
	}
	answers, err := strListAttr(item, "answers")
	if err != nil {
		return domain.Session{}, err
	}
	closed := false
	if b, ok := item["closed"].(*types.AttributeValueMemberBOOL); ok {
		closed = b.Value
	}
	return domain.Session{
		State: domain.ConversationState(state),
		Memory: domain.SessionState{
			Topic:         domain.Topic(topic),
			QuestionIndex: index,
			Answers:       answers,
			Closed:        closed,
		},
		Version: version,
	}, nil
}

// itemToMessage converts a DynamoDB attribute map to a Message.
func itemToMessage(item map[string]types.AttributeValue) (domain.Message, error) {
	id, err := intAttr(item, "id")
	if err != nil {
		return domain.Message{}, err
	}
	text, err := strAttr(item, "text")
	if err != nil {
		return domain.Message{}, err
	}
	sender, err := strAttr(item, "sender")
	if err != nil {
		return domain.Message{}, err
	}
	msg := domain.Message{ID: id, Text: text, Sender: domain.Sender(sender)}

	raw, ok := item["options"]
	if !ok {
		return msg, nil
	}
	list, ok := raw.(*types.AttributeValueMemberL)
	if !ok {
		return domain.Message{}, errors.New("repository: attribute \"options\" is not a list")
	}
	for _, v := range list.Value {
		m, ok := v.(*types.AttributeValueMemberM)
		if !ok {
			return domain.Message{}, errors.New("repository: option is not a map")
		}
		label, err := strAttr(m.Value, "label")
		if err != nil {
			return domain.Message{}, err
		}
		value, err := strAttr(m.Value, "value")
		if err != nil {
			return domain.Message{}, err
		}
		msg.Options = append(msg.Options, domain.Option{Label: label, Value: value})
	}
	return msg, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int, error) {
	v, ok := item[key]
	if !ok {
		return 0, fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("repository: attribute %q is not a number", key)
	}
	parsed, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}

func strListAttr(item map[string]types.AttributeValue, key string) ([]string, error) {
	v, ok := item[key]
	if !ok {
		return nil, nil
	}
	l, ok := v.(*types.AttributeValueMemberL)
	if !ok {
		return nil, fmt.Errorf("repository: attribute %q is not a list", key)
	}
	out := make([]string, 0, len(l.Value))
	for _, e := range l.Value {
		s, ok := e.(*types.AttributeValueMemberS)
		if !ok {
			return nil, fmt.Errorf("repository: attribute %q holds a non-string", key)
		}
		out = append(out, s.Value)
	}
	return out, nil
}
