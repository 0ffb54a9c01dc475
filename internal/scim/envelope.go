package scim

import (
	"time"

	"github.com/crucial707/scim-provision/internal/models"
)

// SCIM 2.0 schema URNs used in response envelopes.
const (
	UserURN         = "urn:ietf:params:scim:schemas:core:2.0:User"
	ListResponseURN = "urn:ietf:params:scim:api:messages:2.0:ListResponse"
)

// ResourceMeta is the meta block of a User envelope. This is SCIM resource
// metadata, unrelated to the stored Employee.Meta attribute bag.
type ResourceMeta struct {
	ResourceType string    `json:"resourceType"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
}

// UserResource is the single-resource envelope returned for an Employee.
// The stored meta attribute bag is deliberately not serialized outbound;
// only id, userName and timestamps are exposed.
type UserResource struct {
	Schemas  []string     `json:"schemas"`
	ID       int          `json:"id"`
	Meta     ResourceMeta `json:"meta"`
	UserName string       `json:"userName"`
}

// ListResponse is the envelope for filtered queries.
type ListResponse struct {
	Schemas      []string       `json:"schemas"`
	TotalResults int            `json:"totalResults"`
	Resources    []UserResource `json:"Resources"`
}

// PatchOp is the SCIM PatchOp document (RFC 7644 §3.5.2), restricted to the
// subset this endpoint applies.
type PatchOp struct {
	Operations []PatchOperation `json:"Operations"`
}

// PatchOperation is a single entry of a PatchOp document. Value is kept
// untyped: username replacements carry a string, meta replacements carry an
// arbitrary JSON value that is re-serialized for storage.
type PatchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// NewUserResource shapes an Employee into its SCIM envelope.
func NewUserResource(e *models.Employee) UserResource {
	return UserResource{
		Schemas: []string{UserURN},
		ID:      e.ID,
		Meta: ResourceMeta{
			ResourceType: "User",
			Created:      e.CreatedAt,
			LastModified: e.UpdatedAt,
		},
		UserName: e.Username,
	}
}

// NewListResponse shapes a filter result set. An empty match set yields
// totalResults 0 and an empty (not null) Resources array.
func NewListResponse(employees []models.Employee) ListResponse {
	resources := make([]UserResource, 0, len(employees))
	for i := range employees {
		resources = append(resources, NewUserResource(&employees[i]))
	}
	return ListResponse{
		Schemas:      []string{ListResponseURN},
		TotalResults: len(resources),
		Resources:    resources,
	}
}
