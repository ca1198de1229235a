package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	getOut *ssm.GetParameterOutput
	getErr error

	store      map[string]string
	batchErr   error
	batchCalls [][]string
}

func (f *fakeAPI) GetParameter(_ context.Context, _ *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return f.getOut, f.getErr
}

func (f *fakeAPI) GetParameters(_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	f.batchCalls = append(f.batchCalls, append([]string(nil), in.Names...))
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	out := &ssm.GetParametersOutput{}
	for _, n := range in.Names {
		v, ok := f.store[n]
		if !ok {
			out.InvalidParameters = append(out.InvalidParameters, n)
			continue
		}
		out.Parameters = append(out.Parameters, types.Parameter{Name: strPtr(n), Value: strPtr(v)})
	}
	return out, nil
}

type fakeGetter struct {
	val string
	err error
}

func (f *fakeGetter) GetParameter(_ context.Context, _ string) (string, error) {
	return f.val, f.err
}

func strPtr(s string) *string { return &s }

func TestGetParameter_HappyPath(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: strPtr("p"), Value: strPtr(`{"k":"v"}`),
	}}}
	client, err := New(api)
	require.NoError(t, err)
	v, err := client.GetParameter(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, `{"k":"v"}`, v)
}

func TestGetParameter_MissingValue(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p"), Value: nil}}}
	client, err := New(api)
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing value")
}

func TestGetParameter_ApiError(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("boom")}
	client, err := New(api)
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "p")
	require.ErrorContains(t, err, "boom")
}

func TestGetParameter_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).GetParameter(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestGetParameter_EmptyName(t *testing.T) {
	client, err := New(&fakeAPI{})
	require.NoError(t, err)
	_, err = client.GetParameter(context.Background(), "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}

func TestGetParameters_HappyPath(t *testing.T) {
	api := &fakeAPI{store: map[string]string{
		"/wellness/config/phrasing_model":       "gpt-4o-mini",
		"/wellness/config/classification_model": "gpt-4o",
	}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.GetParameters(context.Background(), []string{
		"/wellness/config/phrasing_model",
		" /wellness/config/classification_model ",
	})
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", got["/wellness/config/phrasing_model"])
	require.Equal(t, "gpt-4o", got["/wellness/config/classification_model"])
	require.Len(t, api.batchCalls, 1)
}

func TestGetParameters_Batches(t *testing.T) {
	store := map[string]string{}
	var names []string
	for i := 0; i < 23; i++ {
		n := "/p/" + string(rune('a'+i))
		store[n] = "v"
		names = append(names, n)
	}
	api := &fakeAPI{store: store}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.GetParameters(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, got, 23)
	require.Len(t, api.batchCalls, 3)
	require.Len(t, api.batchCalls[0], 10)
	require.Len(t, api.batchCalls[2], 3)
}

func TestGetParameters_InvalidNames(t *testing.T) {
	api := &fakeAPI{store: map[string]string{"/a": "1"}}
	client, err := New(api)
	require.NoError(t, err)
	_, err = client.GetParameters(context.Background(), []string{"/a", "/missing"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "/missing")
}

func TestGetParameters_ApiError(t *testing.T) {
	client, err := New(&fakeAPI{batchErr: errors.New("throttled")})
	require.NoError(t, err)
	_, err = client.GetParameters(context.Background(), []string{"/a"})
	require.ErrorContains(t, err, "throttled")
}

func TestGetParameters_EmptyName(t *testing.T) {
	client, err := New(&fakeAPI{})
	require.NoError(t, err)
	_, err = client.GetParameters(context.Background(), []string{"/a", ""})
	require.ErrorContains(t, err, "required")
}

func TestToken_JSONToken(t *testing.T) {
	key, err := Token(context.Background(), &fakeGetter{val: `{"token":"sk-from-json"}`}, "/wellness/open-ai-token")
	require.NoError(t, err)
	require.Equal(t, "sk-from-json", key)
}

func TestToken_MissingTokenField(t *testing.T) {
	_, err := Token(context.Background(), &fakeGetter{val: `{"other":"value"}`}, "/wellness/open-ai-token")
	require.ErrorContains(t, err, "is empty")
}

func TestToken_MalformedJSON(t *testing.T) {
	_, err := Token(context.Background(), &fakeGetter{val: `{"broken`}, "/wellness/open-ai-token")
	require.ErrorContains(t, err, "unmarshal")
}

func TestToken_GetterError(t *testing.T) {
	_, err := Token(context.Background(), &fakeGetter{err: errors.New("ssm unavailable")}, "/wellness/open-ai-token")
	require.ErrorContains(t, err, "ssm unavailable")
}

func TestToken_NilGetterAndEmptyName(t *testing.T) {
	_, err := Token(context.Background(), nil, "/x")
	require.ErrorContains(t, err, "nil")
	_, err = Token(context.Background(), &fakeGetter{val: `{"token":"t"}`}, " ")
	require.ErrorContains(t, err, "empty")
}
