package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/pkg/logger"
)

var whitespaceExpr = regexp.MustCompile(`\s+`)

// portfolioTemplate 自包含HTML文档，内联样式，不引用外部资源
var portfolioTemplate = template.Must(template.New("portfolio").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Name}} - {{.Role}} Portfolio</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 1000px; margin: 0 auto; padding: 20px; }
    header { background: linear-gradient(135deg, #0066cc 0%, #0052a3 100%); color: white; padding: 60px 20px; text-align: center; margin-bottom: 40px; border-radius: 8px; }
    header h1 { font-size: 2.5em; margin-bottom: 10px; }
    header p { font-size: 1.1em; opacity: 0.9; }
    h2 { color: #0066cc; font-size: 1.8em; margin-top: 40px; margin-bottom: 20px; padding-bottom: 10px; border-bottom: 3px solid #0066cc; }
    h3 { color: #333; margin-top: 15px; margin-bottom: 10px; }
    .about { background: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 30px; }
    .skills { display: flex; flex-wrap: wrap; gap: 10px; margin-top: 15px; }
    .skill { background: #0066cc; color: white; padding: 8px 16px; border-radius: 20px; font-size: 0.9em; }
    .projects { margin-bottom: 30px; }
    .project { background: #f8f9fa; padding: 20px; margin-bottom: 20px; border-radius: 8px; border-left: 4px solid #0066cc; }
    .subtasks { list-style: disc; margin-left: 20px; margin-top: 10px; }
    .subtasks li { margin-bottom: 5px; }
    .outcome { margin-top: 10px; color: #666; }
    footer { text-align: center; margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; color: #999; }
  </style>
</head>
<body>
  <div class="container">
    <header>
      <h1>{{.Name}}</h1>
      <p>{{.Role}} &bull; {{.Organization}}</p>
    </header>

    <section class="about">
      <h2>About Me</h2>
      <p>{{.Portfolio.AboutMe}}</p>
      <div class="skills">
        <strong style="width: 100%; margin-bottom: 10px;">Skills:</strong>
        {{range .Portfolio.Skills}}<span class="skill">{{.}}</span>{{end}}
      </div>
    </section>

    <section class="projects">
      <h2>Featured Projects</h2>
      {{range .Portfolio.Projects}}
      <div class="project">
        <h3>{{.Title}}</h3>
        <ul class="subtasks">
          {{range .Subtasks}}<li>{{.}}</li>{{end}}
        </ul>
        <p class="outcome"><strong>Outcome:</strong> {{.Outcome}}</p>
      </div>
      {{end}}
    </section>

    <footer>
      <p>Portfolio generated on {{.GeneratedAt}}</p>
    </footer>
  </div>
</body>
</html>`))

type portfolioPage struct {
	Name         string
	Role         string
	Organization string
	Portfolio    *model.PortfolioData
	GeneratedAt  string
}

// PortfolioService 从个人资料和路线图拼装作品集数据，
// 渲染为可独立打开的HTML并交给存储层。
type PortfolioService struct {
	storage *StorageService
}

func NewPortfolioService(storage *StorageService) *PortfolioService {
	return &PortfolioService{storage: storage}
}

// Build 根据路线图每周的小项目和学习目标生成作品集数据
func (s *PortfolioService) Build(profile *model.UserProfile, roadmap *model.PersonalizedRoadmap) *model.PortfolioData {
	data := &model.PortfolioData{
		Projects: make([]model.PortfolioProject, 0, len(roadmap.Weeks)),
		Skills:   make([]string, 0),
	}

	seen := map[string]bool{}
	for _, week := range roadmap.Weeks {
		if week.MiniProject.Title != "" {
			data.Projects = append(data.Projects, model.PortfolioProject{
				Title:    week.MiniProject.Title,
				Subtasks: append([]string{}, week.LearningGoals...),
				Outcome:  week.MiniProject.Description,
			})
		}
		for _, goal := range week.LearningGoals {
			skill := strings.TrimSpace(goal)
			if skill == "" || seen[skill] {
				continue
			}
			seen[skill] = true
			data.Skills = append(data.Skills, skill)
		}
	}

	data.AboutMe = fmt.Sprintf(
		"%s is an aspiring %s currently studying at %s, dedicating %d hours per week to a structured %d-week learning plan.",
		profile.Name, roadmap.Role, profile.Organization, profile.HoursPerWeek, len(roadmap.Weeks))
	data.ReadmeMarkdown = buildReadme(profile, roadmap, data)
	return data
}

func buildReadme(profile *model.UserProfile, roadmap *model.PersonalizedRoadmap, data *model.PortfolioData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", profile.Name)
	fmt.Fprintf(&b, "Aspiring **%s** building projects week by week.\n\n", roadmap.Role)
	b.WriteString("## Projects\n\n")
	for _, p := range data.Projects {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", p.Title, p.Outcome)
	}
	b.WriteString("## Skills\n\n")
	for _, skill := range data.Skills {
		fmt.Fprintf(&b, "- %s\n", skill)
	}
	return b.String()
}

// Filename 下载文件名，姓名中的空白折叠为下划线
func Filename(name string) string {
	return whitespaceExpr.ReplaceAllString(name, "_") + "_portfolio.html"
}

// RenderHTML 渲染自包含的作品集页面
func (s *PortfolioService) RenderHTML(profile *model.UserProfile, roadmap *model.PersonalizedRoadmap, data *model.PortfolioData) (string, error) {
	var buf bytes.Buffer
	err := portfolioTemplate.Execute(&buf, portfolioPage{
		Name:         profile.Name,
		Role:         roadmap.Role,
		Organization: profile.Organization,
		Portfolio:    data,
		GeneratedAt:  time.Now().Format("1/2/2006"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Generate 生成作品集并上传HTML产物，返回数据和产物访问路径。
// 上传失败不影响数据返回，只记录日志。
func (s *PortfolioService) Generate(ctx context.Context, profile *model.UserProfile, roadmap *model.PersonalizedRoadmap) (*model.PortfolioData, string, error) {
	data := s.Build(profile, roadmap)

	html, err := s.RenderHTML(profile, roadmap, data)
	if err != nil {
		return nil, "", err
	}

	url := ""
	if s.storage != nil {
		filename := Filename(profile.Name)
		url, err = s.storage.Upload(ctx, filename, strings.NewReader(html), int64(len(html)), "text/html; charset=utf-8")
		if err != nil {
			logger.Log.Warn("作品集产物上传失败", zap.String("filename", filename), zap.Error(err))
			url = ""
		}
	}

	return data, url, nil
}
