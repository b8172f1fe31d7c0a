package models

import "time"

// ShadowingObservation records a field observation session supporting an SOP.
type ShadowingObservation struct {
	ID               uint   `json:"id" gorm:"primarykey"`
	SOPID            *uint  `json:"sop_id" gorm:"column:sop_id;index"`
	EmployeeObserved string `json:"employee_observed"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	Observer         string `json:"observer"`
	ObservationDate  string `json:"observation_date"`
	TimeFrom         string `json:"time_from"`
	TimeTo           string `json:"time_to"`
	ProcessToObserve string `json:"process_to_observe"`
	ExpectedSteps    string `json:"expected_steps"`
	SafetyConcerns   string `json:"safety_concerns"`
	ProcessSteps     string `json:"process_steps"`

	TimeTotal         string `json:"time_total"`
	TimeSearchingTools string `json:"time_searching_tools"`
	TimeChangingTools  string `json:"time_changing_tools"`
	TimeChangeover     string `json:"time_changeover"`

	WaitingFor   string `json:"waiting_for"`
	SearchingFor string `json:"searching_for"`
	ReworkDueTo  string `json:"rework_due_to"`
	Bottlenecks  string `json:"bottlenecks"`

	DecisionPoint1Situation string `json:"decision_point_1_situation" gorm:"column:decision_point_1_situation"`
	DecisionPoint1Options   string `json:"decision_point_1_options" gorm:"column:decision_point_1_options"`
	DecisionPoint1Decision  string `json:"decision_point_1_decision" gorm:"column:decision_point_1_decision"`
	DecisionPoint1Reasoning string `json:"decision_point_1_reasoning" gorm:"column:decision_point_1_reasoning"`
	DecisionPoint2Situation string `json:"decision_point_2_situation" gorm:"column:decision_point_2_situation"`
	DecisionPoint2Options   string `json:"decision_point_2_options" gorm:"column:decision_point_2_options"`
	DecisionPoint2Decision  string `json:"decision_point_2_decision" gorm:"column:decision_point_2_decision"`
	DecisionPoint2Reasoning string `json:"decision_point_2_reasoning" gorm:"column:decision_point_2_reasoning"`

	VerifyWorkComplete  string `json:"verify_work_complete"`
	NinetyVsHundred     string `json:"ninety_vs_hundred"`
	WorkHandedOff       string `json:"work_handed_off"`
	StatusCommunicated  string `json:"status_communicated"`
	DocumentationUsed   string `json:"documentation_used"`

	SetupTime         string `json:"setup_time"`
	SetupIssues       string `json:"setup_issues"`
	SetupOptimization string `json:"setup_optimization"`

	ProblemWhatWentWrong     string `json:"problem_what_went_wrong"`
	ProblemHowDiagnosed      string `json:"problem_how_diagnosed"`
	ProblemSolutionAttempted string `json:"problem_solution_attempted"`
	ProblemOutcome           string `json:"problem_outcome"`
	ProblemTimeToResolve     string `json:"problem_time_to_resolve"`

	KeyObservations        string `json:"key_observations"`
	UndocumentedKnowledge  string `json:"undocumented_knowledge"`
	SOPRecommendations     string `json:"sop_recommendations" gorm:"column:sop_recommendations"`
	EfficiencyImprovements string `json:"efficiency_improvements"`

	CreatedBy *uint     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SOP *SOP `json:"sop,omitempty" gorm:"foreignKey:SOPID"`
}

func (ShadowingObservation) TableName() string {
	return "shadowing_observations"
}
