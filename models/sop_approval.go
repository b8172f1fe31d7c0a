package models

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// SOPApproval is one approval request for an SOP. At most one request per SOP
// may be pending at a time.
type SOPApproval struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	SOPID       uint           `json:"sop_id" gorm:"column:sop_id;not null;index"`
	RequestedBy uint           `json:"requested_by" gorm:"not null"`
	RequestedAt time.Time      `json:"requested_at" gorm:"autoCreateTime"`
	Status      ApprovalStatus `json:"status" gorm:"default:'pending'"`
	ReviewedBy  *uint          `json:"reviewed_by"`
	ReviewedAt  *time.Time     `json:"reviewed_at"`
	Comments    string         `json:"comments"`

	SOP       *SOP  `json:"sop,omitempty" gorm:"foreignKey:SOPID"`
	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequestedBy"`
	Reviewer  *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewedBy"`
}

func (SOPApproval) TableName() string {
	return "sop_approvals"
}

// ApprovalSummary is the list-pending row joined with SOP identity and the
// precomputed change information for the review screen.
type ApprovalSummary struct {
	ID            uint         `json:"id"`
	SOPID         uint         `json:"sop_id"`
	SOPNumber     string       `json:"sop_number"`
	ProcessName   string       `json:"process_name"`
	Department    string       `json:"department"`
	Version       int          `json:"version"`
	RequestedBy   UserRef      `json:"requested_by"`
	RequestedAt   time.Time    `json:"requested_at"`
	ChangeCount   int          `json:"change_count"`
	ChangeSummary string       `json:"change_summary"`
	Changes       []ChangeItem `json:"changes,omitempty"`
}

type UserRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ApprovalChanges is the raw diff payload for one approval request.
type ApprovalChanges struct {
	ApprovalID      uint         `json:"approval_id"`
	SOPID           uint         `json:"sop_id"`
	Version         int          `json:"version"`
	PreviousVersion int          `json:"previous_version"`
	Changes         []ChangeItem `json:"changes"`
}
