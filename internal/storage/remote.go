package storage

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "github.com/ljmonteiro/companheiro/internal/errors"
)

// RemoteStore talks to a shared key/value service over HTTP. The service
// exposes GET/PUT/DELETE /kv/{key} and GET /kv?prefix= returning a key list.
// It is selected once at startup; there is no fallback probing afterwards.
type RemoteStore struct {
	client *resty.Client
}

type remoteValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type remoteKeyList struct {
	Keys []string `json:"keys"`
}

// NewRemoteStore creates a remote store client for the given base URL.
func NewRemoteStore(baseURL string, timeout time.Duration) *RemoteStore {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &RemoteStore{client: client}
}

// Get retrieves the value for a key.
func (s *RemoteStore) Get(ctx context.Context, key string) (string, error) {
	var out remoteValue
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		ForceContentType("application/json").
		Get("/kv/" + key)
	if err != nil {
		return "", apperrors.Wrapf(err, "remote store get %q", key)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", ErrKeyNotFound
	}
	if resp.IsError() {
		return "", apperrors.Wrapf(apperrors.ErrStoreUnavailable,
			"remote store get %q: HTTP %d", key, resp.StatusCode())
	}
	return out.Value, nil
}

// Set stores a value under a key.
func (s *RemoteStore) Set(ctx context.Context, key, value string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(remoteValue{Key: key, Value: value}).
		Put("/kv/" + key)
	if err != nil {
		return apperrors.Wrapf(err, "remote store set %q", key)
	}
	if resp.IsError() {
		return apperrors.Wrapf(apperrors.ErrStoreUnavailable,
			"remote store set %q: HTTP %d", key, resp.StatusCode())
	}
	return nil
}

// Delete removes a key. A 404 from the service is treated as success.
func (s *RemoteStore) Delete(ctx context.Context, key string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Delete("/kv/" + key)
	if err != nil {
		return apperrors.Wrapf(err, "remote store delete %q", key)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		return apperrors.Wrapf(apperrors.ErrStoreUnavailable,
			"remote store delete %q: HTTP %d", key, resp.StatusCode())
	}
	return nil
}

// List returns all keys with the given prefix.
func (s *RemoteStore) List(ctx context.Context, prefix string) ([]string, error) {
	var out remoteKeyList
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("prefix", prefix).
		SetResult(&out).
		ForceContentType("application/json").
		Get("/kv")
	if err != nil {
		return nil, apperrors.Wrapf(err, "remote store list %q", prefix)
	}
	if resp.IsError() {
		return nil, apperrors.Wrapf(apperrors.ErrStoreUnavailable,
			"remote store list %q: HTTP %d", prefix, resp.StatusCode())
	}
	return out.Keys, nil
}

// Close is a no-op for the remote store.
func (s *RemoteStore) Close() error {
	return nil
}
