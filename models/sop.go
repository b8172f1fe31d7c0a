package models

import (
	"time"
)

type SOPStatus string

const (
	StatusDraft           SOPStatus = "draft"
	StatusReview          SOPStatus = "review"
	StatusPendingApproval SOPStatus = "pending_approval"
	StatusActive          SOPStatus = "active"
)

func (s SOPStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPendingApproval, StatusActive:
		return true
	}
	return false
}

type SOP struct {
	ID                        uint      `json:"id" gorm:"primarykey"`
	SOPNumber                 string    `json:"sop_number" gorm:"column:sop_number;uniqueIndex;not null"`
	Department                string    `json:"department"`
	ProcessName               string    `json:"process_name"`
	Status                    SOPStatus `json:"status" gorm:"default:'draft'"`
	Version                   int       `json:"version" gorm:"default:1"`
	Purpose                   string    `json:"purpose"`
	ScopeAppliesTo            string    `json:"scope_applies_to"`
	ScopeNotAppliesTo         string    `json:"scope_not_applies_to"`
	Tools                     string    `json:"tools"`
	Materials                 string    `json:"materials"`
	TimeTotal                 string    `json:"time_total"`
	TimeSearching             string    `json:"time_searching"`
	TimeChanging              string    `json:"time_changing"`
	TimeChangeover            string    `json:"time_changeover"`
	QualityDuring             string    `json:"quality_during"`
	QualityFinal              string    `json:"quality_final"`
	QualityCompletionCriteria string    `json:"quality_completion_criteria"`
	DocumentationRequired     string    `json:"documentation_required"`
	DocumentationSignoff      string    `json:"documentation_signoff"`
	SafetyConcerns            string    `json:"safety_concerns"`
	Troubleshooting           string    `json:"troubleshooting"`
	RelatedDocuments          string    `json:"related_documents"`
	ApprovedBy                *uint     `json:"approved_by"`
	ReviewDueDate             *time.Time `json:"review_due_date"`
	AssignedTo                *uint     `json:"assigned_to"`
	CreatedBy                 *uint     `json:"created_by"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`

	Creator  *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Approver *User `json:"approver,omitempty" gorm:"foreignKey:ApprovedBy"`
	Assignee *User `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`

	Steps            []SOPStep           `json:"steps,omitempty" gorm:"foreignKey:SOPID"`
	Responsibilities []SOPResponsibility `json:"responsibilities,omitempty" gorm:"foreignKey:SOPID"`
}

func (SOP) TableName() string {
	return "sops"
}

// SOPWithCounts is a board/list row: the SOP plus how many supporting
// records reference it.
type SOPWithCounts struct {
	SOP
	QuestionnaireCount int `json:"questionnaire_count"`
	ShadowingCount     int `json:"shadowing_count"`
}

// SOPDetail is the single-document view with every related collection.
type SOPDetail struct {
	SOP
	TroubleshootingItems []SOPTroubleshootingItem `json:"troubleshooting_items"`
	Revisions            []SOPRevision            `json:"revisions"`
	Questionnaires       []Questionnaire          `json:"questionnaires"`
	Shadowings           []ShadowingObservation   `json:"shadowings"`
}

// OwnedOrAssigned reports whether the given user created the SOP or is
// currently assigned to it.
func (s *SOP) OwnedOrAssigned(userID uint) bool {
	if s.CreatedBy != nil && *s.CreatedBy == userID {
		return true
	}
	return s.AssignedTo != nil && *s.AssignedTo == userID
}
