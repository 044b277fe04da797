package cases

import "strconv"

// DefaultPerPage is the community page size used by the feed
const DefaultPerPage = 6

// Pagination is the backend's paging metadata for the community feed
type Pagination struct {
	TotalData   int `json:"total_data" yaml:"total_data"`
	PerPage     int `json:"per_page" yaml:"per_page"`
	CurrentPage int `json:"current_page" yaml:"current_page"`
	TotalPages  int `json:"total_pages" yaml:"total_pages"`
}

// InitialPagination is the state before any fetch, and the fallback when a
// successful response carries no pagination.
func InitialPagination() Pagination {
	return Pagination{TotalData: 0, PerPage: DefaultPerPage, CurrentPage: 1, TotalPages: 1}
}

// ResetPagination is the state after the community feed is reset
func ResetPagination() Pagination {
	return Pagination{TotalData: 0, PerPage: DefaultPerPage, CurrentPage: 1, TotalPages: 0}
}

// HasNext returns true if a later page exists
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Community is a case published to the community feed
type Community struct {
	Case    `yaml:",inline"`
	Support int `json:"support,omitempty" yaml:"support,omitempty"`
}

// CommunityPage is one page of the community feed
type CommunityPage struct {
	Items      []Community `json:"community" yaml:"community"`
	Pagination Pagination  `json:"pagination" yaml:"pagination"`
}

// CommunityFilter selects a page of the community feed.
// Zero values are left out of the query.
type CommunityFilter struct {
	Category string
	Page     int
	PerPage  int
}

// Query returns the filter as query parameters
func (f CommunityFilter) Query() map[string]string {
	q := make(map[string]string, 3)
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Page > 0 {
		q["page"] = strconv.Itoa(f.Page)
	}
	if f.PerPage > 0 {
		q["perPage"] = strconv.Itoa(f.PerPage)
	}
	return q
}

// Support is the community engagement count attached to a case
type Support struct {
	CasesID   string `json:"casesId,omitempty" yaml:"casesId,omitempty"`
	Count     int    `json:"count" yaml:"count"`
	Supported bool   `json:"isSupported,omitempty" yaml:"isSupported,omitempty"`
}
