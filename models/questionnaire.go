package models

import "time"

// Questionnaire is a structured interview supporting an SOP draft. Question
// columns mirror the standard 27-question interview form.
type Questionnaire struct {
	ID            uint       `json:"id" gorm:"primarykey"`
	SOPID         *uint      `json:"sop_id" gorm:"column:sop_id;index"`
	EmployeeName  string     `json:"employee_name"`
	Department    string     `json:"department"`
	Position      string     `json:"position"`
	Interviewer   string     `json:"interviewer"`
	InterviewDate string     `json:"interview_date"`

	Q1PrimaryResponsibilities string `json:"q1_primary_responsibilities" gorm:"column:q1_primary_responsibilities"`
	Q2StartTime               string `json:"q2_start_time" gorm:"column:q2_start_time"`
	Q3MustCompleteDaily       string `json:"q3_must_complete_daily" gorm:"column:q3_must_complete_daily"`
	Q4LowerPriority           string `json:"q4_lower_priority" gorm:"column:q4_lower_priority"`
	Q5CommonProcess           string `json:"q5_common_process" gorm:"column:q5_common_process"`
	Q6ToolsEquipment          string `json:"q6_tools_equipment" gorm:"column:q6_tools_equipment"`
	Q7Materials               string `json:"q7_materials" gorm:"column:q7_materials"`
	Q8ProcessComplete         string `json:"q8_process_complete" gorm:"column:q8_process_complete"`
	Q9DoneCorrectly           string `json:"q9_done_correctly" gorm:"column:q9_done_correctly"`
	Q10CommonMistakes         string `json:"q10_common_mistakes" gorm:"column:q10_common_mistakes"`
	Q11PreventMistakes        string `json:"q11_prevent_mistakes" gorm:"column:q11_prevent_mistakes"`
	Q12QualityChecks          string `json:"q12_quality_checks" gorm:"column:q12_quality_checks"`
	Q13RegularProblems        string `json:"q13_regular_problems" gorm:"column:q13_regular_problems"`
	Q14SolveProblems          string `json:"q14_solve_problems" gorm:"column:q14_solve_problems"`
	Q15EscalateVsSolve        string `json:"q15_escalate_vs_solve" gorm:"column:q15_escalate_vs_solve"`
	Q16ChallengingProblem     string `json:"q16_challenging_problem" gorm:"column:q16_challenging_problem"`
	Q17InteractWith           string `json:"q17_interact_with" gorm:"column:q17_interact_with"`
	Q18InfoFromOthers         string `json:"q18_info_from_others" gorm:"column:q18_info_from_others"`
	Q19InfoToOthers           string `json:"q19_info_to_others" gorm:"column:q19_info_to_others"`
	Q20HandoffWork            string `json:"q20_handoff_work" gorm:"column:q20_handoff_work"`
	Q21NotWrittenDown         string `json:"q21_not_written_down" gorm:"column:q21_not_written_down"`
	Q22NewPersonStruggle      string `json:"q22_new_person_struggle" gorm:"column:q22_new_person_struggle"`
	Q23LongestToLearn         string `json:"q23_longest_to_learn" gorm:"column:q23_longest_to_learn"`
	Q24TrainingAdvice         string `json:"q24_training_advice" gorm:"column:q24_training_advice"`
	Q25ChangeOneThing         string `json:"q25_change_one_thing" gorm:"column:q25_change_one_thing"`
	Q26BetterTools            string `json:"q26_better_tools" gorm:"column:q26_better_tools"`
	Q27TimeWasters            string `json:"q27_time_wasters" gorm:"column:q27_time_wasters"`

	Notes     string    `json:"notes"`
	CreatedBy *uint     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SOP *SOP `json:"sop,omitempty" gorm:"foreignKey:SOPID"`
}

func (Questionnaire) TableName() string {
	return "questionnaires"
}
