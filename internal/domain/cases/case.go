// Package cases holds the case, category and community records exchanged
// with the shesafe backend.
package cases

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ApprovalStatus is the workflow status of a case.
// Values other than the constants below are kept verbatim.
type ApprovalStatus string

const (
	StatusDraft     ApprovalStatus = "Draft"
	StatusSubmitted ApprovalStatus = "Submitted"
	StatusApproved  ApprovalStatus = "Approved"
	StatusRejected  ApprovalStatus = "Rejected"
)

// IsDraft returns true if the case was saved without entering review
func (s ApprovalStatus) IsDraft() bool {
	return s == StatusDraft
}

// CategoryRef references a category. Reads return an embedded
// {_id, name} object, writes send the bare id.
type CategoryRef struct {
	ID   string
	Name string
}

// UnmarshalJSON accepts a bare id string, null or an embedded category object
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = CategoryRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decoding category id: %w", err)
		}
		*r = CategoryRef{ID: id}
		return nil
	}
	var c Category
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("decoding category: %w", err)
	}
	*r = CategoryRef{ID: c.ID, Name: c.Name}
	return nil
}

// MarshalJSON writes the bare category id
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Case is a user-submitted incident record
type Case struct {
	ID          string         `json:"_id,omitempty" yaml:"id,omitempty"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Message     string         `json:"message,omitempty" yaml:"message,omitempty"`
	Category    CategoryRef    `json:"category" yaml:"category"`
	IsApproved  ApprovalStatus `json:"isApproved" yaml:"isApproved"`
	CreatedAt   *time.Time     `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// CasePayload is the body of a create or update request
type CasePayload struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Message     string         `json:"message"`
	IsApproved  ApprovalStatus `json:"isApproved"`
}

// FromPayload builds the record a successful write is expected to produce.
// Used when the backend acknowledges a write without echoing the record.
func FromPayload(id string, p CasePayload) Case {
	return Case{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Message:     p.Message,
		Category:    CategoryRef{ID: p.Category},
		IsApproved:  p.IsApproved,
	}
}

// UpdateShape selects the request body layout of an edit
type UpdateShape int

const (
	// FlatUpdate sends the merged payload at the top level (draft save)
	FlatUpdate UpdateShape = iota
	// NestedUpdate wraps the payload in a "dataCase" object (final submit)
	NestedUpdate
)

func (s UpdateShape) String() string {
	switch s {
	case FlatUpdate:
		return "flat"
	case NestedUpdate:
		return "nested"
	default:
		return fmt.Sprintf("UpdateShape(%d)", int(s))
	}
}

// UpdateRequest is an edit of an existing case.
// The two shapes are what the backend currently accepts; they are kept
// distinct until the backend settles on one.
type UpdateRequest struct {
	Shape   UpdateShape
	Payload CasePayload
}

// DraftUpdate builds a flat update whose status is forced to Draft
func DraftUpdate(p CasePayload) UpdateRequest {
	p.IsApproved = StatusDraft
	return UpdateRequest{Shape: FlatUpdate, Payload: p}
}

// FinalUpdate builds a nested update carrying the payload as computed
func FinalUpdate(p CasePayload) UpdateRequest {
	return UpdateRequest{Shape: NestedUpdate, Payload: p}
}

// nestedBody is the wire form of a NestedUpdate
type nestedBody struct {
	DataCase CasePayload `json:"dataCase"`
}

// Body returns the value to encode as the request body
func (r UpdateRequest) Body() any {
	if r.Shape == NestedUpdate {
		return nestedBody{DataCase: r.Payload}
	}
	return r.Payload
}
