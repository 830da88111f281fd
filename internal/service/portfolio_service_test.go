package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill_roadmap_backend/internal/config"
	"skill_roadmap_backend/internal/model"
)

func portfolioFixture() (*model.UserProfile, *model.PersonalizedRoadmap) {
	profile := &model.UserProfile{
		Name:         "Asha Verma",
		Status:       model.StatusStudent,
		Organization: "IIT Delhi",
		HoursPerWeek: 10,
	}
	roadmap := &model.PersonalizedRoadmap{
		Role: "Web Frontend Developer",
		Weeks: []model.RoadmapWeek{
			{
				WeekNumber:    1,
				LearningGoals: []string{"HTML", "CSS"},
				MiniProject: model.MiniProject{
					Title:       "Personal Landing Page",
					Description: "A responsive landing page deployed online",
				},
			},
			{
				WeekNumber:    2,
				LearningGoals: []string{"JavaScript", "CSS"}, // CSS重复，验证技能去重
				MiniProject: model.MiniProject{
					Title:       "Interactive Quiz",
					Description: "A quiz app with score tracking",
				},
			},
		},
	}
	return profile, roadmap
}

func TestBuildPortfolio(t *testing.T) {
	svc := NewPortfolioService(nil)
	profile, roadmap := portfolioFixture()

	data := svc.Build(profile, roadmap)

	require.Len(t, data.Projects, 2)
	assert.Equal(t, "Personal Landing Page", data.Projects[0].Title)
	assert.Equal(t, []string{"HTML", "CSS"}, data.Projects[0].Subtasks)
	assert.Equal(t, "A quiz app with score tracking", data.Projects[1].Outcome)

	assert.Equal(t, []string{"HTML", "CSS", "JavaScript"}, data.Skills)
	assert.Contains(t, data.AboutMe, "Asha Verma")
	assert.Contains(t, data.AboutMe, "Web Frontend Developer")
	assert.Contains(t, data.ReadmeMarkdown, "# Asha Verma")
	assert.Contains(t, data.ReadmeMarkdown, "### Personal Landing Page")
}

func TestFilename(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "空格折叠为下划线", input: "Asha Verma", expected: "Asha_Verma_portfolio.html"},
		{name: "多重空白", input: "A  B\tC", expected: "A_B_C_portfolio.html"},
		{name: "单个词", input: "Asha", expected: "Asha_portfolio.html"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Filename(tc.input))
		})
	}
}

func TestRenderHTMLSelfContained(t *testing.T) {
	svc := NewPortfolioService(nil)
	profile, roadmap := portfolioFixture()
	data := svc.Build(profile, roadmap)

	html, err := svc.RenderHTML(profile, roadmap, data)
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<title>Asha Verma - Web Frontend Developer Portfolio</title>")
	assert.Contains(t, html, "Personal Landing Page")
	assert.Contains(t, html, `<span class="skill">JavaScript</span>`)
	// 自包含页面不引用外部资源
	assert.NotContains(t, html, "<script src=")
	assert.NotContains(t, html, "<link rel=")
}

func TestGenerateUploadsArtifact(t *testing.T) {
	dir := t.TempDir()
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: dir},
	}}
	svc := NewPortfolioService(storage)
	profile, roadmap := portfolioFixture()

	data, url, err := svc.Generate(context.Background(), profile, roadmap)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "/artifacts/Asha_Verma_portfolio.html", url)

	written, err := os.ReadFile(filepath.Join(dir, "Asha_Verma_portfolio.html"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "Asha Verma")
}

func TestGenerateSurvivesUploadFailure(t *testing.T) {
	// 指向不可写的路径，上传失败但数据照常返回
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: "/proc/nonexistent"},
	}}
	svc := NewPortfolioService(storage)
	profile, roadmap := portfolioFixture()

	data, url, err := svc.Generate(context.Background(), profile, roadmap)
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Empty(t, url)
}
