package models

type SOPResponsibility struct {
	ID                        uint   `json:"id" gorm:"primarykey"`
	SOPID                     uint   `json:"sop_id" gorm:"column:sop_id;not null;index"`
	RoleName                  string `json:"role_name"`
	ResponsibilityDescription string `json:"responsibility_description"`
}

func (SOPResponsibility) TableName() string {
	return "sop_responsibilities"
}
