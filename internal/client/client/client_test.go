package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/timemachine/internal/client/models"
)

type fakeTransport struct {
	calls int

	lastEndpoint string
	lastToken    string
	lastParams   map[string]any

	resp *Response
	err  error
}

func (f *fakeTransport) Send(_ context.Context, endpoint, token string, params map[string]any) (*Response, error) {
	f.calls++
	f.lastEndpoint, f.lastToken, f.lastParams = endpoint, token, params
	if f.err != nil {
		return nil, f.err
	}
	if f.resp == nil {
		return &Response{}, nil
	}
	return f.resp, nil
}

func TestAPIClient_Login(t *testing.T) {
	ft := &fakeTransport{resp: &Response{Token: "T"}}
	c := NewAPIClient(ft)

	tok, err := c.Login(context.Background(), "alice", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "T", tok)
	assert.Equal(t, EndpointLogin, ft.lastEndpoint)
	assert.Empty(t, ft.lastToken)
	assert.Equal(t, map[string]any{"username": "alice", "password": "pw"}, ft.lastParams)
}

func TestAPIClient_Login_WithoutToken(t *testing.T) {
	ft := &fakeTransport{resp: &Response{Code: 0}}
	c := NewAPIClient(ft)

	tok, err := c.Login(context.Background(), "alice", []byte("pw"))
	require.ErrorIs(t, err, ErrNoToken)
	assert.Empty(t, tok)
	assert.False(t, IsBusinessError(err))
}

func TestAPIClient_List_SendsDayString(t *testing.T) {
	ft := &fakeTransport{}
	c := NewAPIClient(ft)

	day := time.Date(2024, 1, 31, 15, 4, 0, 0, time.Local)
	got, err := c.List(context.Background(), "tok", day)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, EndpointList, ft.lastEndpoint)
	assert.Equal(t, "tok", ft.lastToken)
	assert.Equal(t, "Wed Jan 31 2024", ft.lastParams["date"])
}

func TestAPIClient_Search(t *testing.T) {
	want := []models.Slice{{ID: models.ID("1"), Content: "milk"}}
	ft := &fakeTransport{resp: &Response{Slices: want}}
	c := NewAPIClient(ft)

	got, err := c.Search(context.Background(), "tok", "mi")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, EndpointSearch, ft.lastEndpoint)
	assert.Equal(t, "mi", ft.lastParams["search"])
}

func TestAPIClient_AddUpdateRemove_Params(t *testing.T) {
	at := time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC)
	id := models.ID("42")

	ft := &fakeTransport{}
	c := NewAPIClient(ft)

	require.NoError(t, c.Add(context.Background(), "tok", "hello", at))
	assert.Equal(t, EndpointAdd, ft.lastEndpoint)
	assert.Equal(t, map[string]any{"content": "hello", "date": "2024-02-01T08:30:00.000Z"}, ft.lastParams)

	require.NoError(t, c.Update(context.Background(), "tok", id, "bye", at))
	assert.Equal(t, EndpointUpdate, ft.lastEndpoint)
	assert.Equal(t, id, ft.lastParams["id"])
	assert.Equal(t, "bye", ft.lastParams["content"])
	assert.Equal(t, "2024-02-01T08:30:00.000Z", ft.lastParams["date"])

	require.NoError(t, c.Remove(context.Background(), "tok", id))
	assert.Equal(t, EndpointRemove, ft.lastEndpoint)
	assert.Equal(t, map[string]any{"id": id}, ft.lastParams)
}

func TestAPIClient_EmptyToken_NeverSends(t *testing.T) {
	ft := &fakeTransport{}
	c := NewAPIClient(ft)
	ctx := context.Background()

	_, err := c.List(ctx, "", time.Now())
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = c.Search(ctx, "", "x")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, c.Add(ctx, "", "x", time.Now()), ErrUnauthorized)
	assert.ErrorIs(t, c.Update(ctx, "", models.ID("1"), "x", time.Now()), ErrUnauthorized)
	assert.ErrorIs(t, c.Remove(ctx, "", models.ID("1")), ErrUnauthorized)

	assert.Zero(t, ft.calls)
}

func TestAPIClient_PropagatesErrors(t *testing.T) {
	boom := &BusinessError{Endpoint: EndpointList, Code: 2}
	ft := &fakeTransport{err: boom}
	c := NewAPIClient(ft)

	got, err := c.List(context.Background(), "tok", time.Now())
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, boom))

	ft.err = &TransportError{Endpoint: EndpointLogin, Err: errors.New("dial")}
	_, err = c.Login(context.Background(), "u", []byte("p"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
