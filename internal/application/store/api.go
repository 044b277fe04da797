package store

import (
	"context"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// CommunityAPI is the backend surface used by CommunityStore
type CommunityAPI interface {
	ListCommunity(ctx context.Context, f cases.CommunityFilter) (cases.CommunityPage, error)
	GetCommunity(ctx context.Context, id string) (cases.Community, error)
	GetSupport(ctx context.Context, casesID string) (cases.Support, error)
	PostSupport(ctx context.Context, casesID string, count int) (cases.Support, error)
	DeleteSupport(ctx context.Context, casesID string) (cases.Support, error)
}

// CategoryAPI is the backend surface used by CategoryStore
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]cases.Category, error)
}

// CaseAPI is the backend surface used by CaseStore
type CaseAPI interface {
	GetCase(ctx context.Context, id string) (cases.Case, error)
	ListMyCases(ctx context.Context) ([]cases.Case, error)
	CreateCase(ctx context.Context, p cases.CasePayload) (cases.Case, error)
	UpdateCase(ctx context.Context, id string, req cases.UpdateRequest) (cases.Case, error)
	DeleteCase(ctx context.Context, id string) error
}

// API is the whole backend surface; *apiclient.Client implements it
type API interface {
	CommunityAPI
	CategoryAPI
	CaseAPI
}
