package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill_roadmap_backend/internal/model"
)

// fakeGenerator 可编程的AI替身，记录收到的提示词
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateContent(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGenerator) Chat(prompt string, systemContext string, history []AIChatMessage) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func testProfile() *model.UserProfile {
	return &model.UserProfile{
		Name:         "Asha",
		Status:       model.StatusStudent,
		Organization: "IIT Delhi",
		HoursPerWeek: 10,
		Background:   model.BackgroundCS,
		SurveyData: &model.SurveyData{
			EducationLevel: "Undergraduate",
			CodingComfort:  "High",
			FieldInterests: []string{"Web Development"},
		},
	}
}

func TestParseRecommendations(t *testing.T) {
	testCases := []struct {
		name     string
		response string
		expected []model.CareerRecommendation
	}{
		{
			name: "标准模板解析出两条",
			response: `RECOMMENDATION 1:
Title: Web Frontend Developer
Reason: Strong coding comfort and web interest

RECOMMENDATION 2:
Title: Data Analyst
Reason: Good analytical foundation`,
			expected: []model.CareerRecommendation{
				{Name: "Web Frontend Developer", Justification: "Strong coding comfort and web interest"},
				{Name: "Data Analyst", Justification: "Good analytical foundation"},
			},
		},
		{
			name: "捕获值去除首尾空白",
			response: "RECOMMENDATION 1:\nTitle:   Cloud Engineer  \nReason:  Cloud skills are in demand  \n" +
				"RECOMMENDATION 2:\nTitle: ML Engineer\nReason: Math comfort is high",
			expected: []model.CareerRecommendation{
				{Name: "Cloud Engineer", Justification: "Cloud skills are in demand"},
				{Name: "ML Engineer", Justification: "Math comfort is high"},
			},
		},
		{
			name: "只有第一条也能解析",
			response: `RECOMMENDATION 1:
Title: Web Frontend Developer
Reason: Good fit`,
			expected: []model.CareerRecommendation{
				{Name: "Web Frontend Developer", Justification: "Good fit"},
			},
		},
		{
			name:     "自由文本解析不出任何推荐",
			response: "I think you should consider a few different paths based on your interests.",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseRecommendations(tc.response))
		})
	}
}

func TestRoleRecommendations(t *testing.T) {
	fallback := FallbackRecommendations()

	testCases := []struct {
		name     string
		profile  *model.UserProfile
		ai       *fakeGenerator
		expected []model.CareerRecommendation
	}{
		{
			name:    "AI回复合模板时用AI结果",
			profile: testProfile(),
			ai: &fakeGenerator{response: `RECOMMENDATION 1:
Title: Web Frontend Developer
Reason: Web interest

RECOMMENDATION 2:
Title: Cloud Engineer
Reason: Time budget fits`},
			expected: []model.CareerRecommendation{
				{Name: "Web Frontend Developer", Justification: "Web interest"},
				{Name: "Cloud Engineer", Justification: "Time budget fits"},
			},
		},
		{
			name:     "AI调用失败时保底",
			profile:  testProfile(),
			ai:       &fakeGenerator{err: errors.New("connection refused")},
			expected: fallback,
		},
		{
			name:     "回复不合模板时保底",
			profile:  testProfile(),
			ai:       &fakeGenerator{response: "here are some thoughts..."},
			expected: fallback,
		},
		{
			name:     "缺少问卷时保底",
			profile:  &model.UserProfile{Name: "Asha"},
			ai:       &fakeGenerator{response: "unused"},
			expected: fallback,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resources := newTestResourceService(t)
			svc := NewAdvisorService(tc.ai, resources)

			recs := svc.RoleRecommendations(tc.profile)
			assert.Equal(t, tc.expected, recs)
			assert.Len(t, recs, 2, "推荐始终是两条")
		})
	}
}

func TestRecommendationPromptContainsSurvey(t *testing.T) {
	ai := &fakeGenerator{err: errors.New("short-circuit")}
	svc := NewAdvisorService(ai, newTestResourceService(t))

	svc.RoleRecommendations(testProfile())

	require.Len(t, ai.prompts, 1)
	prompt := ai.prompts[0]
	assert.Contains(t, prompt, "Name: Asha")
	assert.Contains(t, prompt, "Hours per week available: 10")
	assert.Contains(t, prompt, "Field Interests: Web Development")
	assert.Contains(t, prompt, "RECOMMENDATION 1:")
}

func TestAsksAboutCatalog(t *testing.T) {
	testCases := []struct {
		message  string
		expected bool
	}{
		{"Which roadmaps do you have?", true},
		{"Show me the available COURSES", true},
		{"what should I learn first", true},
		{"Tell me about salaries in cloud", false},
		{"I feel stuck", false},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.expected, asksAboutCatalog(tc.message))
		})
	}
}

func TestChatPromptInjection(t *testing.T) {
	t.Run("目录类问题注入路线图摘要", func(t *testing.T) {
		ai := &fakeGenerator{response: "ok"}
		svc := NewAdvisorService(ai, newTestResourceService(t))

		svc.Ask(testProfile(), "What roadmaps are available?", nil)

		require.Len(t, ai.prompts, 1)
		assert.Contains(t, ai.prompts[0], "AVAILABLE ROADMAPS IN THIS SYSTEM")
	})

	t.Run("普通问题不注入目录但带话题资源", func(t *testing.T) {
		ai := &fakeGenerator{response: "ok"}
		svc := NewAdvisorService(ai, newTestResourceService(t))

		svc.Ask(testProfile(), "How is the frontend job market?", nil)

		require.Len(t, ai.prompts, 1)
		assert.NotContains(t, ai.prompts[0], "AVAILABLE ROADMAPS IN THIS SYSTEM")
		assert.Contains(t, ai.prompts[0], "Resources for")
	})

	t.Run("提示词包含画像和规则", func(t *testing.T) {
		ai := &fakeGenerator{response: "ok"}
		svc := NewAdvisorService(ai, newTestResourceService(t))

		svc.Ask(testProfile(), "Tell me about salaries in cloud", nil)

		require.Len(t, ai.prompts, 1)
		assert.Contains(t, ai.prompts[0], `"name":"Asha"`)
		assert.Contains(t, ai.prompts[0], "Next you can explore:")
	})
}

func TestAskDegradesToAssistantMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "密钥错误给出配置提示",
			err:      errors.New("AI API not initialized - missing API key"),
			expected: "API key error: Please check that your AI API key is correctly set in the environment.",
		},
		{
			name:     "一般错误带上原因",
			err:      errors.New("connection refused"),
			expected: "AI service error: connection refused",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ai := &fakeGenerator{err: tc.err}
			svc := NewAdvisorService(ai, newTestResourceService(t))

			reply := svc.Ask(testProfile(), "hello", nil)
			assert.Equal(t, tc.expected, reply)
		})
	}
}
