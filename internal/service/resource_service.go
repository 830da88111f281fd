package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"skill_roadmap_backend/internal/model"
)

// DefaultCacheTTL 派生视图缓存的默认存活时间
const DefaultCacheTTL = 5 * time.Minute

// maxPromptResources 注入提示词的资源数量上限，避免提示词过长
const maxPromptResources = 100

// maxListedPerSection 单个清单最多列出的条目数
const maxListedPerSection = 15

type cacheEntry struct {
	data      interface{}
	timestamp time.Time
}

// ResourceService 预置路线图的只读索引。源数据不可变，
// 所有查询结果按查询键缓存，TTL过期后重算；后台清扫与读取路径的
// 过期检查互为兜底。
type ResourceService struct {
	roadmaps []model.PrebuiltRoadmap
	ttl      time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry

	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

func NewResourceService(roadmaps []model.PrebuiltRoadmap, ttl time.Duration) *ResourceService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	s := &ResourceService{
		roadmaps: roadmaps,
		ttl:      ttl,
		cache:    make(map[string]cacheEntry),
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go s.sweepLoop()
	return s
}

// Stop 终止后台清扫，应用退出时调用；可重复调用
func (s *ResourceService) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *ResourceService) sweepLoop() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for key, entry := range s.cache {
				if now.Sub(entry.timestamp) > s.ttl {
					delete(s.cache, key)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}

func (s *ResourceService) cached(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.timestamp) > s.ttl {
		delete(s.cache, key)
		return nil, false
	}
	return entry.data, true
}

func (s *ResourceService) setCached(key string, data interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{data: data, timestamp: s.now()}
}

// AllResources 展平所有路线图的全部资源，保持周序
func (s *ResourceService) AllResources() []model.Resource {
	const cacheKey = "allResources"
	if cached, ok := s.cached(cacheKey); ok {
		return cached.([]model.Resource)
	}

	var all []model.Resource
	for _, roadmap := range s.roadmaps {
		for _, week := range roadmap.Weeks {
			all = append(all, week.Resources...)
		}
	}

	s.setCached(cacheKey, all)
	return all
}

// ResourcesByType 按资源类型过滤
func (s *ResourceService) ResourcesByType(t model.ResourceType) []model.Resource {
	cacheKey := "type_" + string(t)
	if cached, ok := s.cached(cacheKey); ok {
		return cached.([]model.Resource)
	}

	var results []model.Resource
	for _, r := range s.AllResources() {
		if r.Type == t {
			results = append(results, r)
		}
	}

	s.setCached(cacheKey, results)
	return results
}

// SearchResources 在标题和类型上做大小写不敏感的子串匹配
func (s *ResourceService) SearchResources(keyword string) []model.Resource {
	cacheKey := "search_" + keyword
	if cached, ok := s.cached(cacheKey); ok {
		return cached.([]model.Resource)
	}

	lower := strings.ToLower(keyword)
	var results []model.Resource
	for _, r := range s.AllResources() {
		if strings.Contains(strings.ToLower(r.Title), lower) ||
			strings.Contains(strings.ToLower(string(r.Type)), lower) {
			results = append(results, r)
		}
	}

	s.setCached(cacheKey, results)
	return results
}

// ResourceTypes 去重后的资源类型列表
func (s *ResourceService) ResourceTypes() []string {
	const cacheKey = "resourceTypes"
	if cached, ok := s.cached(cacheKey); ok {
		return cached.([]string)
	}

	seen := make(map[string]bool)
	var types []string
	for _, r := range s.AllResources() {
		if !seen[string(r.Type)] {
			seen[string(r.Type)] = true
			types = append(types, string(r.Type))
		}
	}

	s.setCached(cacheKey, types)
	return types
}

// ResourcesByRoadmap 按角色分组的资源视图
func (s *ResourceService) ResourcesByRoadmap() map[string][]model.Resource {
	const cacheKey = "resourcesByRoadmap"
	if cached, ok := s.cached(cacheKey); ok {
		return cached.(map[string][]model.Resource)
	}

	grouped := make(map[string][]model.Resource, len(s.roadmaps))
	for _, roadmap := range s.roadmaps {
		var resources []model.Resource
		for _, week := range roadmap.Weeks {
			resources = append(resources, week.Resources...)
		}
		grouped[roadmap.Role] = resources
	}

	s.setCached(cacheKey, grouped)
	return grouped
}

// ResourcesForTopic 话题相关资源：角色/描述子串命中的路线图资源，
// 并上关键词直接检索的结果，按URL去重（先出现者保留），保持合并顺序
func (s *ResourceService) ResourcesForTopic(topic string) []model.Resource {
	cacheKey := "topic_" + topic
	if cached, ok := s.cached(cacheKey); ok {
		return cached.([]model.Resource)
	}

	lower := strings.ToLower(topic)

	var combined []model.Resource
	for _, roadmap := range s.roadmaps {
		if strings.Contains(strings.ToLower(roadmap.Role), lower) ||
			strings.Contains(strings.ToLower(roadmap.Description), lower) {
			for _, week := range roadmap.Weeks {
				combined = append(combined, week.Resources...)
			}
		}
	}
	combined = append(combined, s.SearchResources(topic)...)

	seen := make(map[string]bool, len(combined))
	unique := make([]model.Resource, 0, len(combined))
	for _, r := range combined {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		unique = append(unique, r)
	}

	s.setCached(cacheKey, unique)
	return unique
}

// fallbackResources 话题无命中时保底的通用资源，保证AI提示词不为空
var fallbackResources = []model.Resource{
	{Type: model.ResourceCourse, Title: "Complete Web Development Bootcamp", URL: "https://www.udemy.com/course/the-complete-web-development-bootcamp/"},
	{Type: model.ResourceYouTube, Title: "JavaScript Crash Course", URL: "https://www.youtube.com/watch?v=hdI2bqOjy3c"},
	{Type: model.ResourceDocumentation, Title: "MDN Web Docs", URL: "https://developer.mozilla.org/en-US/"},
	{Type: model.ResourceArticle, Title: "Tech Career Pathways", URL: "https://www.freecodecamp.org/news/tech-career-pathways/"},
	{Type: model.ResourceCourse, Title: "Python for Beginners", URL: "https://www.coursera.org/learn/python"},
}

// ResourcesForTopicAsString 话题资源的人类可读清单，供提示词嵌入
func (s *ResourceService) ResourcesForTopicAsString(topic string) string {
	cacheKey := "topicAsString_" + topic
	if cached, ok := s.cached(cacheKey); ok {
		return cached.(string)
	}

	resources := s.ResourcesForTopic(topic)

	var b strings.Builder
	if len(resources) == 0 {
		fmt.Fprintf(&b, "No specific resources found for '%s'. Here are some popular learning resources:\n", topic)
		for i, r := range fallbackResources {
			fmt.Fprintf(&b, "%d. %s: %s - %s\n", i+1, strings.ToUpper(string(r.Type)), r.Title, r.URL)
		}
	} else {
		fmt.Fprintf(&b, "Resources for %s:\n", topic)
		for i, r := range resources {
			if i >= maxListedPerSection {
				break
			}
			fmt.Fprintf(&b, "%d. %s: %s - %s\n", i+1, strings.ToUpper(string(r.Type)), r.Title, r.URL)
		}
	}

	result := b.String()
	s.setCached(cacheKey, result)
	return result
}

// ResourcesAsString 全量资源按类型分组的清单，供提示词嵌入
func (s *ResourceService) ResourcesAsString() string {
	const cacheKey = "resourcesAsString"
	if cached, ok := s.cached(cacheKey); ok {
		return cached.(string)
	}

	all := s.AllResources()
	if len(all) > maxPromptResources {
		all = all[:maxPromptResources]
	}

	byType := make(map[string][]model.Resource)
	var typeOrder []string
	for _, r := range all {
		t := string(r.Type)
		if _, ok := byType[t]; !ok {
			typeOrder = append(typeOrder, t)
		}
		byType[t] = append(byType[t], r)
	}
	sort.Strings(typeOrder)

	var b strings.Builder
	b.WriteString("Available Resources:\n")
	for _, t := range typeOrder {
		fmt.Fprintf(&b, "\n%s RESOURCES:\n", strings.ToUpper(t))
		for i, r := range byType[t] {
			if i >= maxListedPerSection {
				break
			}
			fmt.Fprintf(&b, "  %d. %s - %s\n", i+1, r.Title, r.URL)
		}
	}

	result := b.String()
	s.setCached(cacheKey, result)
	return result
}

// AllRoadmapsInfo 全部路线图的摘要，回答"有哪些路线图"类问题时注入
func (s *ResourceService) AllRoadmapsInfo() string {
	const cacheKey = "allRoadmapsInfo"
	if cached, ok := s.cached(cacheKey); ok {
		return cached.(string)
	}

	var b strings.Builder
	b.WriteString("AVAILABLE ROADMAPS IN THIS SYSTEM:\n\n")
	for _, roadmap := range s.roadmaps {
		var focus []string
		totalHours := 0
		for _, week := range roadmap.Weeks {
			focus = append(focus, week.LearningGoals...)
			totalHours += week.EstimatedHours
		}
		if len(focus) > 3 {
			focus = focus[:3]
		}
		fmt.Fprintf(&b, "• %s\n  - Description: %s\n  - Focus Areas: %s\n  - Weeks: %d\n  - Estimated Hours: %d\n\n",
			roadmap.Role, roadmap.Description, strings.Join(focus, ", "), len(roadmap.Weeks), totalHours)
	}

	result := b.String()
	s.setCached(cacheKey, result)
	return result
}
