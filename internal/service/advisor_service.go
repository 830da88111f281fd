package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/pkg/logger"
	"skill_roadmap_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ContentGenerator AI生成入口，生产实现为 *AIService
type ContentGenerator interface {
	GenerateContent(prompt string) (string, error)
	Chat(prompt string, systemContext string, history []AIChatMessage) (string, error)
}

// StreamGenerator 流式生成入口，可选能力
type StreamGenerator interface {
	ChatStream(prompt string, systemContext string, history []AIChatMessage) (<-chan string, <-chan error)
}

// AdvisorService 职业顾问编排层：拼装提示词、解析结构化回复、
// 任何AI故障都降级为固定内容，错误不向上传播。
type AdvisorService struct {
	ai        ContentGenerator
	stream    StreamGenerator
	resources *ResourceService
}

func NewAdvisorService(ai ContentGenerator, resources *ResourceService) *AdvisorService {
	s := &AdvisorService{ai: ai, resources: resources}
	if sg, ok := ai.(StreamGenerator); ok {
		s.stream = sg
	}
	return s
}

// 两个推荐槽位各自独立匹配；Title和Reason都命中该槽位才算解析成功
var (
	recommendation1Expr = regexp.MustCompile(`(?is)RECOMMENDATION 1:.*?Title: ([^\n\r]+).*?Reason: ([^\n\r]+)`)
	recommendation2Expr = regexp.MustCompile(`(?is)RECOMMENDATION 2:.*?Title: ([^\n\r]+).*?Reason: ([^\n\r]+)`)
)

// FallbackRecommendations AI不可用或回复不合模板时的保底推荐
func FallbackRecommendations() []model.CareerRecommendation {
	return []model.CareerRecommendation{
		{Name: "Web Frontend Developer", Justification: "Based on your interest in development and general tech skills"},
		{Name: "Data Analyst", Justification: "Matches well with analytical thinking and structured approach"},
	}
}

// ParseRecommendations 从自由文本回复中提取最多两条推荐，捕获值去除首尾空白
func ParseRecommendations(response string) []model.CareerRecommendation {
	var recs []model.CareerRecommendation

	if m := recommendation1Expr.FindStringSubmatch(response); m != nil {
		recs = append(recs, model.CareerRecommendation{
			Name:          strings.TrimSpace(m[1]),
			Justification: strings.TrimSpace(m[2]),
		})
	}
	if m := recommendation2Expr.FindStringSubmatch(response); m != nil {
		recs = append(recs, model.CareerRecommendation{
			Name:          strings.TrimSpace(m[1]),
			Justification: strings.TrimSpace(m[2]),
		})
	}

	return recs
}

func buildRecommendationPrompt(profile *model.UserProfile) string {
	survey := profile.SurveyData

	return fmt.Sprintf(`You are a professional AI career advisor. Analyze the following user profile and provide the top 2 most suitable career roadmaps.

User Profile:
- Name: %s
- Status: %s
- Organization: %s
- Hours per week available: %d
- Background: %s

Survey Data:
- Education Level: %s
- College Tier: %s
- Field Interests: %s
- Coding Comfort: %s
- Math Comfort: %s
- Career Goal Priorities: %s
- Placement Timeline: %s
- Tools Used: %s
- Project Experience: %s
- Learning Style: %s

Analyze all this information comprehensively and return ONLY the top 2 most suitable career roadmaps. For each roadmap, provide:
1. Roadmap name/title
2. One-line reason explaining why it fits the user's profile

Format the response exactly as follows:
RECOMMENDATION 1:
Title: [Roadmap Name]
Reason: [One-line explanation]

RECOMMENDATION 2:
Title: [Roadmap Name]
Reason: [One-line explanation]

Do not include any additional commentary beyond the two roadmap recommendations.`,
		profile.Name,
		profile.Status,
		profile.Organization,
		profile.HoursPerWeek,
		profile.Background,
		survey.EducationLevel,
		survey.CollegeTier,
		strings.Join(survey.FieldInterests, ", "),
		survey.CodingComfort,
		survey.MathComfort,
		strings.Join(survey.CareerGoalPriorities, ", "),
		survey.PlacementTimeline,
		survey.ToolsUsed,
		survey.ProjectExperience,
		survey.LearningStyle,
	)
}

// RoleRecommendations 始终返回恰好两条推荐：AI解析成功用AI的，
// 否则（调用失败、问卷缺失、回复不合模板）返回保底推荐
func (s *AdvisorService) RoleRecommendations(profile *model.UserProfile) []model.CareerRecommendation {
	if profile == nil || profile.SurveyData == nil {
		logger.Log.Warn("Recommendation requested without survey data, using fallback")
		monitoring.AIRequestCounter.WithLabelValues("recommendations", "fallback").Inc()
		return FallbackRecommendations()
	}

	response, err := s.ai.GenerateContent(buildRecommendationPrompt(profile))
	if err != nil {
		logger.Log.Error("AI recommendation call failed", zap.Error(err))
		monitoring.AIRequestCounter.WithLabelValues("recommendations", "error").Inc()
		return FallbackRecommendations()
	}

	recs := ParseRecommendations(response)
	if len(recs) == 0 {
		logger.Log.Warn("AI did not return valid recommendations, using fallback")
		monitoring.AIRequestCounter.WithLabelValues("recommendations", "fallback").Inc()
		return FallbackRecommendations()
	}

	monitoring.AIRequestCounter.WithLabelValues("recommendations", "ok").Inc()
	return recs
}

// 问路线图/资源类问题时才注入全量目录摘要
var catalogKeywords = []string{
	"roadmap", "resource", "available", "what", "list", "offer",
	"courses", "tutorials", "learning path", "path",
}

func asksAboutCatalog(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range catalogKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (s *AdvisorService) buildChatPrompt(profile *model.UserProfile, message string) string {
	additionalContext := ""
	if asksAboutCatalog(message) {
		additionalContext = "\n\n" + s.resources.AllRoadmapsInfo()
	}
	additionalContext += "\n\n" + s.resources.ResourcesForTopicAsString(message)

	profileJSON, _ := json.Marshal(profile)

	return fmt.Sprintf(`You are a professional AI career advisor.
RULES:
1. Keep responses concise, professional, and to the point.
2. Avoid motivational speeches, emotional reassurance, or filler text.
3. Do NOT use asterisks (*) or Markdown formatting.
4. Focus on actionable, realistic career guidance.
5. Do NOT claim absolute accuracy or guarantees.
6. Treat this as an advisory tool, not a counseling session.
7. Do NOT automatically suggest learning resources unless specifically asked.
8. Only provide resource recommendations when the user explicitly requests them.
9. After answering the user's main query, append a short "Next you can explore:" section with exactly ONE follow-up suggestion related to the current topic. The follow-up must be phrased as a clickable suggestion or hint, not a direct question. The follow-up should feel optional and subtle, not conversational or intrusive. Keep responses concise, professional, and point-focused. The follow-up logic must be topic-aware (example: Cloud -> skills, salary, AI impact). Never ask multiple follow-ups in a single response.

Tone:
- Direct
- Practical
- Professional
- Neutral

Length:
- Medium-short (no essays)

Context:
- This is a prototype AI career roadmap platform for students and early professionals.

The user's profile is: %s. Their message is: %s.%s Provide a helpful and personalized response following the rules above.`,
		string(profileJSON), message, additionalContext)
}

// Ask 单轮问答。任何失败都以助手口吻返回错误文案，对话可以继续
func (s *AdvisorService) Ask(profile *model.UserProfile, message string, history []AIChatMessage) string {
	response, err := s.ai.Chat(s.buildChatPrompt(profile, message), "", history)
	if err != nil {
		logger.Log.Error("AI chat call failed", zap.Error(err))
		monitoring.AIRequestCounter.WithLabelValues("chat", "error").Inc()
		return chatErrorMessage(err)
	}

	monitoring.AIRequestCounter.WithLabelValues("chat", "ok").Inc()
	return response
}

// CanStream 底层AI实现是否支持流式输出
func (s *AdvisorService) CanStream() bool {
	return s.stream != nil
}

// AskStream 流式问答；调用方负责把错误渲染为助手消息
func (s *AdvisorService) AskStream(profile *model.UserProfile, message string, history []AIChatMessage) (<-chan string, <-chan error) {
	return s.stream.ChatStream(s.buildChatPrompt(profile, message), "", history)
}

func chatErrorMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "API key") || strings.Contains(msg, "API_KEY") {
		return "API key error: Please check that your AI API key is correctly set in the environment."
	}
	if msg != "" {
		return fmt.Sprintf("AI service error: %s", msg)
	}
	return "I'm having trouble connecting to the AI service right now. Please try again later."
}
