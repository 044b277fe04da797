package store

import "github.com/nadiahindrianti/shesafe/internal/domain/cases"

// Registry groups the named containers created at process start
type Registry struct {
	Community  *CommunityStore
	Categories *CategoryStore
	Cases      *CaseStore
}

// NewRegistry creates every container against api
func NewRegistry(api API, opts ...Option) *Registry {
	return &Registry{
		Community:  NewCommunityStore(api, opts...),
		Categories: NewCategoryStore(api, opts...),
		Cases:      NewCaseStore(api, opts...),
	}
}

// ResetAll returns every container to its initial state
func (r *Registry) ResetAll() {
	r.Community.Reset()
	r.Community.support.Reset(map[string]cases.Support{})
	r.Categories.container.Reset(cases.NewCategoryIndex(nil))
	r.Cases.container.Reset(CaseState{})
}
