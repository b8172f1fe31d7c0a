package models

type RegisterRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=100"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type CreateUserRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Name     string   `json:"name" binding:"required,min=1,max=100"`
	Password string   `json:"password" binding:"required,min=8"`
	Role     UserRole `json:"role,omitempty"`
}

type UpdateUserRequest struct {
	Email  *string   `json:"email"`
	Name   *string   `json:"name"`
	Role   *UserRole `json:"role"`
	Active *bool     `json:"active"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateSOPRequest carries the full editable metadata of an SOP. Status is
// intentionally absent; status moves through PatchStatus or the approval
// workflow.
type UpdateSOPRequest struct {
	Department                string `json:"department"`
	ProcessName               string `json:"process_name"`
	Purpose                   string `json:"purpose"`
	ScopeAppliesTo            string `json:"scope_applies_to"`
	ScopeNotAppliesTo         string `json:"scope_not_applies_to"`
	Tools                     string `json:"tools"`
	Materials                 string `json:"materials"`
	TimeTotal                 string `json:"time_total"`
	TimeSearching             string `json:"time_searching"`
	TimeChanging              string `json:"time_changing"`
	TimeChangeover            string `json:"time_changeover"`
	QualityDuring             string `json:"quality_during"`
	QualityFinal              string `json:"quality_final"`
	QualityCompletionCriteria string `json:"quality_completion_criteria"`
	DocumentationRequired     string `json:"documentation_required"`
	DocumentationSignoff      string `json:"documentation_signoff"`
	SafetyConcerns            string `json:"safety_concerns"`
	Troubleshooting           string `json:"troubleshooting"`
	RelatedDocuments          string `json:"related_documents"`
}

type PatchStatusRequest struct {
	Status SOPStatus `json:"status" binding:"required"`
}

type AssignSOPRequest struct {
	UserID *uint `json:"user_id"`
}

type UpdateStepRequest struct {
	ActionName     string `json:"action_name"`
	WhoRole        string `json:"who_role"`
	Action         string `json:"action"`
	ToolsUsed      string `json:"tools_used"`
	TimeForStep    string `json:"time_for_step"`
	Standard       string `json:"standard"`
	CommonMistakes string `json:"common_mistakes"`
}

type UpdateResponsibilityRequest struct {
	RoleName                  string `json:"role_name"`
	ResponsibilityDescription string `json:"responsibility_description"`
}

type CreateTroubleshootingRequest struct {
	Problem       string `json:"problem"`
	PossibleCause string `json:"possible_cause"`
	Solution      string `json:"solution"`
}

type CreateRevisionRequest struct {
	RevisionDate string `json:"revision_date"`
	Description  string `json:"description"`
	RevisedBy    string `json:"revised_by"`
}

type CreateVersionRequest struct {
	ChangeSummary string `json:"change_summary"`
}

type ResolveApprovalRequest struct {
	Comments string `json:"comments"`
}

type CreateWorkflowStepRequest struct {
	StatusKey        string `json:"status_key" binding:"required"`
	DisplayLabel     string `json:"display_label" binding:"required"`
	Color            string `json:"color"`
	RequiresApproval bool   `json:"requires_approval"`
	CanEdit          *bool  `json:"can_edit"`
}

type UpdateWorkflowStepRequest struct {
	DisplayLabel     *string `json:"display_label"`
	Color            *string `json:"color"`
	RequiresApproval *bool   `json:"requires_approval"`
	CanEdit          *bool   `json:"can_edit"`
}

type ReorderWorkflowStepsRequest struct {
	Order []WorkflowStepOrder `json:"order" binding:"required"`
}

type WorkflowStepOrder struct {
	ID        uint `json:"id"`
	StepOrder int  `json:"step_order"`
}

type ReplaceTransitionsRequest struct {
	Transitions []WorkflowTransition `json:"transitions" binding:"required"`
}

type CreateQuestionnaireRequest struct {
	SOPID *uint `json:"sop_id"`
}

type CreateShadowingRequest struct {
	SOPID *uint `json:"sop_id"`
}
