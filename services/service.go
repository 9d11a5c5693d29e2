package services

import (
	"context"

	"rama-crm/apiclient"
)

// API is the part of the remote API client the domain services use.
type API interface {
	Get(ctx context.Context, path string) (*apiclient.Response, error)
	Post(ctx context.Context, path string, body any) (*apiclient.Response, error)
	Put(ctx context.Context, path string, body any) (*apiclient.Response, error)
	Patch(ctx context.Context, path string, body any) (*apiclient.Response, error)
	Delete(ctx context.Context, path string) (*apiclient.Response, error)
}

func decodeList[T any](resp *apiclient.Response) ([]T, error) {
	items := []T{}
	if err := resp.Decode(&items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeOne[T any](resp *apiclient.Response) (*T, error) {
	var item T
	if err := resp.Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}
