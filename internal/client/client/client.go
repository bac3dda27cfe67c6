package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/timemachine/internal/client/models"
)

// Client is the typed journal API. Every method except Login needs a
// session token; an empty token is rejected with ErrUnauthorized before
// anything is sent.
type Client interface {
	Login(ctx context.Context, username string, password []byte) (string, error)
	List(ctx context.Context, token string, day time.Time) ([]models.Slice, error)
	Search(ctx context.Context, token, text string) ([]models.Slice, error)
	Add(ctx context.Context, token, content string, at time.Time) error
	Update(ctx context.Context, token string, id models.SliceID, content string, at time.Time) error
	Remove(ctx context.Context, token string, id models.SliceID) error
}

type APIClient struct {
	transport Transport
}

func NewAPIClient(t Transport) *APIClient {
	return &APIClient{transport: t}
}

func (c *APIClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	resp, err := c.transport.Send(ctx, EndpointLogin, "", map[string]any{
		"username": username,
		"password": string(password),
	})
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

// List returns the slices of the calendar day containing day.
func (c *APIClient) List(ctx context.Context, token string, day time.Time) ([]models.Slice, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	resp, err := c.transport.Send(ctx, EndpointList, token, map[string]any{
		"date": models.DayString(day),
	})
	if err != nil {
		return nil, err
	}
	return nonNil(resp.Slices), nil
}

func (c *APIClient) Search(ctx context.Context, token, text string) ([]models.Slice, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	resp, err := c.transport.Send(ctx, EndpointSearch, token, map[string]any{
		"search": text,
	})
	if err != nil {
		return nil, err
	}
	return nonNil(resp.Slices), nil
}

func (c *APIClient) Add(ctx context.Context, token, content string, at time.Time) error {
	if token == "" {
		return ErrUnauthorized
	}
	_, err := c.transport.Send(ctx, EndpointAdd, token, map[string]any{
		"content": content,
		"date":    models.ISOString(at),
	})
	return err
}

func (c *APIClient) Update(ctx context.Context, token string, id models.SliceID, content string, at time.Time) error {
	if token == "" {
		return ErrUnauthorized
	}
	_, err := c.transport.Send(ctx, EndpointUpdate, token, map[string]any{
		"id":      id,
		"content": content,
		"date":    models.ISOString(at),
	})
	return err
}

func (c *APIClient) Remove(ctx context.Context, token string, id models.SliceID) error {
	if token == "" {
		return ErrUnauthorized
	}
	_, err := c.transport.Send(ctx, EndpointRemove, token, map[string]any{
		"id": id,
	})
	return err
}

func nonNil(s []models.Slice) []models.Slice {
	if s == nil {
		return []models.Slice{}
	}
	return s
}
