package models

type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeModified  ChangeType = "modified"
	ChangeRemoved   ChangeType = "removed"
	ChangeReordered ChangeType = "reordered"
)

type ChangeCategory string

const (
	CategoryMetadata       ChangeCategory = "metadata"
	CategoryStep           ChangeCategory = "step"
	CategoryResponsibility ChangeCategory = "responsibility"
)

// ChangeItem is one structural difference between two snapshots. It is
// derived at read time and never persisted.
type ChangeItem struct {
	Type     ChangeType     `json:"type"`
	Category ChangeCategory `json:"category"`
	Field    string         `json:"field"`
	Label    string         `json:"label"`
	Before   string         `json:"before,omitempty"`
	After    string         `json:"after,omitempty"`
}
