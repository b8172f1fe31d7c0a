package models

import "time"

// WorkflowStep is one row of the admin-editable workflow board. It drives the
// board presentation and the per-status can-edit policy; the status state
// machine itself enforces the fixed transition table in services.
type WorkflowStep struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	StepOrder        int       `json:"step_order" gorm:"not null"`
	StatusKey        string    `json:"status_key" gorm:"uniqueIndex;not null"`
	DisplayLabel     string    `json:"display_label" gorm:"not null"`
	Color            string    `json:"color" gorm:"default:'gray'"`
	IsInitial        bool      `json:"is_initial" gorm:"default:false"`
	IsFinal          bool      `json:"is_final" gorm:"default:false"`
	RequiresApproval bool      `json:"requires_approval" gorm:"default:false"`
	CanEdit          bool      `json:"can_edit" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
}

func (WorkflowStep) TableName() string {
	return "workflow_steps"
}

type WorkflowTransition struct {
	ID                  uint   `json:"id" gorm:"primarykey"`
	FromStatus          string `json:"from_status" gorm:"not null"`
	ToStatus            string `json:"to_status" gorm:"not null"`
	RequiresAdmin       bool   `json:"requires_admin" gorm:"default:false"`
	AutoCreatesApproval bool   `json:"auto_creates_approval" gorm:"default:false"`
}

func (WorkflowTransition) TableName() string {
	return "workflow_transitions"
}
