package model

// UserStatus 目前只有学生一种身份
type UserStatus string

const (
	StatusStudent UserStatus = "Student"
)

// Background 学历背景，影响推荐提示词
type Background string

const (
	BackgroundCS    Background = "CS"
	BackgroundNonCS Background = "Non-CS"
)

// SurveyData 引导问卷，会话内提交后不再修改
type SurveyData struct {
	EducationLevel       string   `json:"educationLevel"`
	CollegeTier          string   `json:"collegeTier"`
	FieldInterests       []string `json:"fieldInterests"` // 最多3项
	CodingComfort        string   `json:"codingComfort"`
	MathComfort          string   `json:"mathComfort"`
	CareerGoalPriorities []string `json:"careerGoalPriorities"`
	PlacementTimeline    string   `json:"placementTimeline"`
	ToolsUsed            string   `json:"toolsUsed"`
	ProjectExperience    string   `json:"projectExperience"`
	LearningStyle        string   `json:"learningStyle"`
}

// UserProfile 引导流程建立的画像，注销时清除
type UserProfile struct {
	Name         string      `json:"name"`
	Status       UserStatus  `json:"status"`
	Organization string      `json:"organization"`
	HoursPerWeek int         `json:"hoursPerWeek"` // 1-168
	Background   Background  `json:"background"`
	SurveyData   *SurveyData `json:"surveyData,omitempty"`
}

// CareerRecommendation AI推荐的职业方向
type CareerRecommendation struct {
	Name          string `json:"name"`
	Justification string `json:"justification"`
}
