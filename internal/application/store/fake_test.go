package store

import (
	"context"
	"sync"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// fakeAPI is a scriptable backend. Unset hooks return zero values.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	listCommunity  func(ctx context.Context, f cases.CommunityFilter) (cases.CommunityPage, error)
	getCommunity   func(ctx context.Context, id string) (cases.Community, error)
	getSupport     func(ctx context.Context, id string) (cases.Support, error)
	postSupport    func(ctx context.Context, id string, count int) (cases.Support, error)
	deleteSupport  func(ctx context.Context, id string) (cases.Support, error)
	listCategories func(ctx context.Context) ([]cases.Category, error)
	getCase        func(ctx context.Context, id string) (cases.Case, error)
	listMine       func(ctx context.Context) ([]cases.Case, error)
	createCase     func(ctx context.Context, p cases.CasePayload) (cases.Case, error)
	updateCase     func(ctx context.Context, id string, req cases.UpdateRequest) (cases.Case, error)
	deleteCase     func(ctx context.Context, id string) error
}

func (f *fakeAPI) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ListCommunity(ctx context.Context, filter cases.CommunityFilter) (cases.CommunityPage, error) {
	f.record("ListCommunity")
	if f.listCommunity == nil {
		return cases.CommunityPage{}, nil
	}
	return f.listCommunity(ctx, filter)
}

func (f *fakeAPI) GetCommunity(ctx context.Context, id string) (cases.Community, error) {
	f.record("GetCommunity")
	if f.getCommunity == nil {
		return cases.Community{}, nil
	}
	return f.getCommunity(ctx, id)
}

func (f *fakeAPI) GetSupport(ctx context.Context, id string) (cases.Support, error) {
	f.record("GetSupport")
	if f.getSupport == nil {
		return cases.Support{}, nil
	}
	return f.getSupport(ctx, id)
}

func (f *fakeAPI) PostSupport(ctx context.Context, id string, count int) (cases.Support, error) {
	f.record("PostSupport")
	if f.postSupport == nil {
		return cases.Support{CasesID: id, Count: count, Supported: true}, nil
	}
	return f.postSupport(ctx, id, count)
}

func (f *fakeAPI) DeleteSupport(ctx context.Context, id string) (cases.Support, error) {
	f.record("DeleteSupport")
	if f.deleteSupport == nil {
		return cases.Support{CasesID: id}, nil
	}
	return f.deleteSupport(ctx, id)
}

func (f *fakeAPI) ListCategories(ctx context.Context) ([]cases.Category, error) {
	f.record("ListCategories")
	if f.listCategories == nil {
		return nil, nil
	}
	return f.listCategories(ctx)
}

func (f *fakeAPI) GetCase(ctx context.Context, id string) (cases.Case, error) {
	f.record("GetCase")
	if f.getCase == nil {
		return cases.Case{ID: id}, nil
	}
	return f.getCase(ctx, id)
}

func (f *fakeAPI) ListMyCases(ctx context.Context) ([]cases.Case, error) {
	f.record("ListMyCases")
	if f.listMine == nil {
		return nil, nil
	}
	return f.listMine(ctx)
}

func (f *fakeAPI) CreateCase(ctx context.Context, p cases.CasePayload) (cases.Case, error) {
	f.record("CreateCase")
	if f.createCase == nil {
		return cases.FromPayload("new", p), nil
	}
	return f.createCase(ctx, p)
}

func (f *fakeAPI) UpdateCase(ctx context.Context, id string, req cases.UpdateRequest) (cases.Case, error) {
	f.record("UpdateCase")
	if f.updateCase == nil {
		return cases.FromPayload(id, req.Payload), nil
	}
	return f.updateCase(ctx, id, req)
}

func (f *fakeAPI) DeleteCase(ctx context.Context, id string) error {
	f.record("DeleteCase")
	if f.deleteCase == nil {
		return nil
	}
	return f.deleteCase(ctx, id)
}

var _ API = (*fakeAPI)(nil)
