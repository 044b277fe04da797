package store

import (
	"context"
	"slices"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// CaseState is the case snapshot
type CaseState struct {
	Current *cases.Case  // last case fetched or written
	Mine    []cases.Case // the caller's cases
}

// CaseStore holds the case being viewed or edited and the caller's cases
type CaseStore struct {
	api       CaseAPI
	container *Container[CaseState]
}

// NewCaseStore creates an empty case store
func NewCaseStore(api CaseAPI, opts ...Option) *CaseStore {
	return &CaseStore{
		api:       api,
		container: NewContainer(CaseName, CaseState{}, opts...),
	}
}

// Container exposes the underlying container
func (s *CaseStore) Container() *Container[CaseState] {
	return s.container
}

// Snapshot returns the current state
func (s *CaseStore) Snapshot() State[CaseState] {
	return s.container.Snapshot()
}

func setCurrent(prev CaseState, c cases.Case) CaseState {
	prev.Current = &c
	return prev
}

// FetchOne loads a case
func (s *CaseStore) FetchOne(ctx context.Context, id string) (cases.Case, error) {
	return Dispatch(ctx, s.container,
		func(ctx context.Context) (cases.Case, error) { return s.api.GetCase(ctx, id) },
		setCurrent,
	)
}

// Create posts a case as given
func (s *CaseStore) Create(ctx context.Context, p cases.CasePayload) (cases.Case, error) {
	return Dispatch(ctx, s.container,
		func(ctx context.Context) (cases.Case, error) { return s.api.CreateCase(ctx, p) },
		setCurrent,
	)
}

// CreateDraft posts a case with its status forced to Draft
func (s *CaseStore) CreateDraft(ctx context.Context, p cases.CasePayload) (cases.Case, error) {
	p.IsApproved = cases.StatusDraft
	return s.Create(ctx, p)
}

// Update edits a case
func (s *CaseStore) Update(ctx context.Context, id string, req cases.UpdateRequest) (cases.Case, error) {
	return Dispatch(ctx, s.container,
		func(ctx context.Context) (cases.Case, error) { return s.api.UpdateCase(ctx, id, req) },
		func(prev CaseState, c cases.Case) CaseState {
			prev = setCurrent(prev, c)
			for i := range prev.Mine {
				if prev.Mine[i].ID == id {
					prev.Mine = slices.Clone(prev.Mine)
					prev.Mine[i] = c
					break
				}
			}
			return prev
		},
	)
}

// ListMine loads the caller's cases
func (s *CaseStore) ListMine(ctx context.Context) ([]cases.Case, error) {
	return Dispatch(ctx, s.container,
		func(ctx context.Context) ([]cases.Case, error) { return s.api.ListMyCases(ctx) },
		func(prev CaseState, list []cases.Case) CaseState {
			prev.Mine = list
			return prev
		},
	)
}

// Delete removes a case
func (s *CaseStore) Delete(ctx context.Context, id string) error {
	_, err := Dispatch(ctx, s.container,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, s.api.DeleteCase(ctx, id) },
		func(prev CaseState, _ struct{}) CaseState {
			prev.Mine = slices.DeleteFunc(slices.Clone(prev.Mine), func(c cases.Case) bool { return c.ID == id })
			if prev.Current != nil && prev.Current.ID == id {
				prev.Current = nil
			}
			return prev
		},
	)
	return err
}
