package issues

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Issue is a read-only mirror of a provider issue. Only ID and Title are
// required; everything else is optional and may be absent from any response.
type Issue struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	Status          *string `json:"status,omitempty"`
	CreatedAt       *string `json:"created_at,omitempty"`
	CreatedBy       *string `json:"created_by,omitempty"`
	AssignedTo      *string `json:"assigned_to,omitempty"`
	DueDate         *string `json:"due_date,omitempty"`
	DisplayID       *int    `json:"display_id,omitempty"`
	ContainerID     *string `json:"container_id,omitempty"`
	IssueTypeID     *string `json:"issue_type_id,omitempty"`
	IssueSubtypeID  *string `json:"issue_subtype_id,omitempty"`
	OwnerID         *string `json:"owner_id,omitempty"`
	CommentCount    *int    `json:"comment_count,omitempty"`
	AttachmentCount *int    `json:"attachment_count,omitempty"`
	UpdatedAt       *string `json:"updated_at,omitempty"`
	UpdatedBy       *string `json:"updated_by,omitempty"`
}

var (
	ErrNotAnObject  = errors.New("issue is not a JSON object")
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field")
)

// field binds a Go field to its snake_case name and the provider's camelCase alias.
type field struct {
	name  string
	alias string
	dest  any
}

func (i *Issue) fields() []field {
	return []field{
		{"id", "id", &i.ID},
		{"title", "title", &i.Title},
		{"description", "description", &i.Description},
		{"status", "status", &i.Status},
		{"created_at", "createdAt", &i.CreatedAt},
		{"created_by", "createdBy", &i.CreatedBy},
		{"assigned_to", "assignedTo", &i.AssignedTo},
		{"due_date", "dueDate", &i.DueDate},
		{"display_id", "displayId", &i.DisplayID},
		{"container_id", "containerId", &i.ContainerID},
		{"issue_type_id", "issueTypeId", &i.IssueTypeID},
		{"issue_subtype_id", "issueSubtypeId", &i.IssueSubtypeID},
		{"owner_id", "ownerId", &i.OwnerID},
		{"comment_count", "commentCount", &i.CommentCount},
		{"attachment_count", "attachmentCount", &i.AttachmentCount},
		{"updated_at", "updatedAt", &i.UpdatedAt},
		{"updated_by", "updatedBy", &i.UpdatedBy},
	}
}

// UnmarshalJSON accepts either the provider alias (createdAt) or the field
// name (created_at) for every field. The alias wins when both are present.
// Unknown keys are ignored.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return ErrNotAnObject
	}

	var out Issue
	for _, f := range out.fields() {
		value, ok := raw[f.alias]
		if !ok {
			value, ok = raw[f.name]
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, f.dest); err != nil {
			return fmt.Errorf("%w %s: %v", ErrInvalidField, f.name, err)
		}
	}

	for _, required := range []string{"id", "title"} {
		if v, ok := raw[required]; !ok || string(v) == "null" {
			return fmt.Errorf("%w: %s", ErrMissingField, required)
		}
	}

	*i = out
	return nil
}
