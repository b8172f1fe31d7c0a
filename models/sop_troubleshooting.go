package models

type SOPTroubleshootingItem struct {
	ID            uint   `json:"id" gorm:"primarykey"`
	SOPID         uint   `json:"sop_id" gorm:"column:sop_id;not null;index"`
	Problem       string `json:"problem"`
	PossibleCause string `json:"possible_cause"`
	Solution      string `json:"solution"`
}

func (SOPTroubleshootingItem) TableName() string {
	return "sop_troubleshooting"
}

type SOPRevision struct {
	ID           uint   `json:"id" gorm:"primarykey"`
	SOPID        uint   `json:"sop_id" gorm:"column:sop_id;not null;index"`
	RevisionDate string `json:"revision_date"`
	Description  string `json:"description"`
	RevisedBy    string `json:"revised_by"`
}

func (SOPRevision) TableName() string {
	return "sop_revisions"
}
