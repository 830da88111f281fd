package model

// ResourceType 学习资源类型
type ResourceType string

const (
	ResourceYouTube       ResourceType = "youtube"
	ResourceArticle       ResourceType = "article"
	ResourceCourse        ResourceType = "course"
	ResourceDocumentation ResourceType = "documentation"
)

// Resource 带类型的学习链接
type Resource struct {
	Type  ResourceType `json:"type"`
	Title string       `json:"title"`
	URL   string       `json:"url"`
}

// MiniProject 每周一个的小项目
type MiniProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RoadmapWeek 路线图的最小单元：目标+工时+项目+资源
type RoadmapWeek struct {
	WeekNumber     int         `json:"week_number"`
	LearningGoals  []string    `json:"learning_goals"`
	EstimatedHours int         `json:"estimated_hours"`
	MiniProject    MiniProject `json:"mini_project"`
	Resources      []Resource  `json:"resources"`
}

// RealityPanelData 方向的静态描述性指标，不随用户变化
type RealityPanelData struct {
	CodingIntensity   string   `json:"codingIntensity"`
	MathDependency    string   `json:"mathDependency"`
	TimeToFirstJob    string   `json:"timeToFirstJob"`
	FresherSaturation string   `json:"fresherSaturation"`
	LearningCurve     string   `json:"learningCurve"`
	FailureReasons    []string `json:"failureReasons"`
}

// PrebuiltRoadmap 预置路线图，catalog 包嵌入的静态数据
type PrebuiltRoadmap struct {
	ID           string           `json:"id"`
	Role         string           `json:"role"`
	Description  string           `json:"description"`
	Weeks        []RoadmapWeek    `json:"weeks"`
	RealityPanel RealityPanelData `json:"realityPanel"`
}

// PersonalizedRoadmap 用户选定方向后生成的个性化路线图
type PersonalizedRoadmap struct {
	ID           string            `json:"id,omitempty"`
	Role         string            `json:"role"`
	Weeks        []RoadmapWeek     `json:"weeks"`
	TotalWeeks   int               `json:"totalWeeks"`
	TotalHours   int               `json:"totalHours"`
	RealityPanel *RealityPanelData `json:"realityPanel,omitempty"`
}
