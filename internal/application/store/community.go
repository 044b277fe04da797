package store

import (
	"context"
	"maps"

	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
)

// Container names
const (
	CommunityName = "community"
	SupportName   = "community/support"
	CategoryName  = "categories"
	CaseName      = "cases"
)

// CommunityState is the community feed snapshot
type CommunityState struct {
	Items      []cases.Community
	Pagination cases.Pagination
	Detail     *cases.Community // last record fetched by Detail
}

func initialCommunity() CommunityState {
	return CommunityState{Items: []cases.Community{}, Pagination: cases.InitialPagination()}
}

// CommunityStore holds the community feed and per-case support counts
type CommunityStore struct {
	api     CommunityAPI
	feed    *Container[CommunityState]
	support *Container[map[string]cases.Support]
}

// NewCommunityStore creates the community containers.
// Support counts are merged per case, so they always apply in arrival order.
func NewCommunityStore(api CommunityAPI, opts ...Option) *CommunityStore {
	supportOpts := append(append([]Option{}, opts...), WithResolutionPolicy(LastResolvedWins))
	return &CommunityStore{
		api:     api,
		feed:    NewContainer(CommunityName, initialCommunity(), opts...),
		support: NewContainer(SupportName, map[string]cases.Support{}, supportOpts...),
	}
}

// Container exposes the feed container for subscriptions
func (s *CommunityStore) Container() *Container[CommunityState] {
	return s.feed
}

// Snapshot returns the feed state
func (s *CommunityStore) Snapshot() State[CommunityState] {
	return s.feed.Snapshot()
}

// Fetch loads one page of the feed. The list and pagination are replaced
// on success; a response without pagination yields InitialPagination.
func (s *CommunityStore) Fetch(ctx context.Context, f cases.CommunityFilter) (cases.CommunityPage, error) {
	return Dispatch(ctx, s.feed,
		func(ctx context.Context) (cases.CommunityPage, error) {
			return s.api.ListCommunity(ctx, f)
		},
		func(prev CommunityState, page cases.CommunityPage) CommunityState {
			prev.Items = page.Items
			if prev.Items == nil {
				prev.Items = []cases.Community{}
			}
			prev.Pagination = page.Pagination
			return prev
		},
	)
}

// Detail loads a single community record into the Detail field
func (s *CommunityStore) Detail(ctx context.Context, id string) (cases.Community, error) {
	return Dispatch(ctx, s.feed,
		func(ctx context.Context) (cases.Community, error) {
			return s.api.GetCommunity(ctx, id)
		},
		func(prev CommunityState, c cases.Community) CommunityState {
			prev.Detail = &c
			return prev
		},
	)
}

// Reset empties the feed and sets pagination to ResetPagination
func (s *CommunityStore) Reset() {
	s.feed.Reset(CommunityState{Items: []cases.Community{}, Pagination: cases.ResetPagination()})
}

// Support returns the last known support state of a case
func (s *CommunityStore) Support(casesID string) (cases.Support, bool) {
	v, ok := s.support.Snapshot().Data[casesID]
	return v, ok
}

// SupportContainer exposes the support container for subscriptions
func (s *CommunityStore) SupportContainer() *Container[map[string]cases.Support] {
	return s.support
}

// FetchSupport loads the support count of a case
func (s *CommunityStore) FetchSupport(ctx context.Context, casesID string) (cases.Support, error) {
	return s.supportOp(ctx, casesID, func(ctx context.Context) (cases.Support, error) {
		return s.api.GetSupport(ctx, casesID)
	})
}

// PostSupport records support for a case
func (s *CommunityStore) PostSupport(ctx context.Context, casesID string, count int) (cases.Support, error) {
	return s.supportOp(ctx, casesID, func(ctx context.Context) (cases.Support, error) {
		return s.api.PostSupport(ctx, casesID, count)
	})
}

// DeleteSupport withdraws support for a case
func (s *CommunityStore) DeleteSupport(ctx context.Context, casesID string) (cases.Support, error) {
	return s.supportOp(ctx, casesID, func(ctx context.Context) (cases.Support, error) {
		return s.api.DeleteSupport(ctx, casesID)
	})
}

func (s *CommunityStore) supportOp(ctx context.Context, casesID string, op func(context.Context) (cases.Support, error)) (cases.Support, error) {
	return Dispatch(ctx, s.support, op,
		func(prev map[string]cases.Support, v cases.Support) map[string]cases.Support {
			next := maps.Clone(prev)
			if next == nil {
				next = map[string]cases.Support{}
			}
			if v.CasesID == "" {
				v.CasesID = casesID
			}
			next[casesID] = v
			return next
		},
	)
}
