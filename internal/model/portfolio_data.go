package model

// PortfolioProject 作品集中的单个项目
type PortfolioProject struct {
	Title    string   `json:"title"`
	Subtasks []string `json:"subtasks"`
	Outcome  string   `json:"outcome"`
}

// PortfolioData 作品集生成结果，按用户持久化
type PortfolioData struct {
	Projects       []PortfolioProject `json:"projects"`
	ReadmeMarkdown string             `json:"readmeMarkdown"`
	AboutMe        string             `json:"aboutMe"`
	Skills         []string           `json:"skills"`
}
