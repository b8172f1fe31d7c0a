package models

const SettingReviewPeriodDays = "review_period_days"

const DefaultReviewPeriodDays = 90

type Setting struct {
	Key   string `json:"key" gorm:"primarykey"`
	Value string `json:"value" gorm:"not null"`
}

func (Setting) TableName() string {
	return "settings"
}
