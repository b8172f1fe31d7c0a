package models

type SOPStep struct {
	ID             uint   `json:"id" gorm:"primarykey"`
	SOPID          uint   `json:"sop_id" gorm:"column:sop_id;not null;index"`
	StepNumber     int    `json:"step_number" gorm:"not null"`
	ActionName     string `json:"action_name"`
	WhoRole        string `json:"who_role"`
	Action         string `json:"action"`
	ToolsUsed      string `json:"tools_used"`
	TimeForStep    string `json:"time_for_step"`
	Standard       string `json:"standard"`
	CommonMistakes string `json:"common_mistakes"`
	SortOrder      int    `json:"sort_order" gorm:"not null"`
}

func (SOPStep) TableName() string {
	return "sop_steps"
}

// DisplayName is the short text shown for a step in change listings.
func (s *SOPStep) DisplayName() string {
	if s.ActionName != "" {
		return s.ActionName
	}
	return s.Action
}
