package client

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/internal/service"
	"skill_roadmap_backend/pkg/localstore"
	"skill_roadmap_backend/pkg/logger"
)

// 本地KV中的命名空间键
const (
	keyUserProfile     = "skillroadmap_user_profile"
	keyUserID          = "skillroadmap_user_id"
	keyChatHistory     = "skillroadmap_chat_history"
	keyRoadmap         = "skillroadmap_roadmap"
	keyPortfolio       = "skillroadmap_portfolio"
	keyFirstVisit      = "skillroadmap_first_visit"
	keyRecommendations = "skillroadmap_recommendations"
	keyProgress        = "roadmap-progress"
)

// Step 引导流程中的下一步动作
type Step string

const (
	StepOnboarding      Step = "onboarding"
	StepSurvey          Step = "survey"
	StepRecommendations Step = "recommendations"
)

// Store 持久化门面：会话内存、远端REST、本地KV三层。
// 写本地总是尽力执行；有会话用户时再写远端，远端失败只记日志。
// 读取顺序是内存、远端、本地。
type Store struct {
	mu       sync.Mutex
	local    *localstore.Store
	remote   *Client
	progress *service.ProgressService

	// 会话状态，不用包级变量
	profile *model.UserProfile
	userID  uint
}

func NewStore(local *localstore.Store, remote *Client) *Store {
	s := &Store{local: local, remote: remote}
	s.progress = service.NewProgressService(s)

	// 恢复上一会话的用户ID
	if raw, ok := local.GetItem(keyUserID); ok {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			s.userID = uint(id)
		}
	}
	return s
}

// Progress 路线图周完成度跟踪器，与本地KV共用存储
func (s *Store) Progress() *service.ProgressService {
	return s.progress
}

// UserID 当前会话绑定的后端用户ID，0表示纯本地会话
func (s *Store) UserID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Profile 当前用户资料；本地数据缺少背景字段时补默认值CS
func (s *Store) Profile() *model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile != nil {
		return s.profile
	}

	raw, ok := s.local.GetItem(keyUserProfile)
	if !ok {
		return nil
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		logger.Log.Warn("本地用户资料损坏", zap.Error(err))
		return nil
	}
	if profile.Background == "" {
		profile.Background = model.BackgroundCS
	}
	s.profile = &profile
	return s.profile
}

// SaveProfile 先写本地，再在后端建档；建档成功后会话绑定返回的用户ID
func (s *Store) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := s.local.SetItem(keyUserProfile, string(raw)); err != nil {
		logger.Log.Warn("本地保存用户资料失败", zap.Error(err))
	}
	s.profile = profile

	// 画像里没有邮箱字段，后端的唯一约束用随机地址占位
	created, err := s.remote.CreateUser(ctx, &model.User{
		Name:   profile.Name,
		Email:  uuid.NewString() + "@skillroadmap.local",
		Status: string(profile.Status),
	})
	if err != nil {
		logger.Log.Warn("后端建档失败，进入纯本地模式", zap.Error(err))
		return nil
	}

	s.userID = created.ID
	if err := s.local.SetItem(keyUserID, strconv.FormatUint(uint64(created.ID), 10)); err != nil {
		logger.Log.Warn("本地保存用户ID失败", zap.Error(err))
	}
	return nil
}

func (s *Store) localChatHistory() []model.ChatMessage {
	raw, ok := s.local.GetItem(keyChatHistory)
	if !ok {
		return []model.ChatMessage{}
	}
	var messages []model.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		logger.Log.Warn("本地聊天记录损坏", zap.Error(err))
		return []model.ChatMessage{}
	}
	return messages
}

// ChatHistory 按时间升序返回聊天记录
func (s *Store) ChatHistory(ctx context.Context) []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return s.localChatHistory()
	}

	messages, err := s.remote.GetChatMessages(ctx, s.userID)
	if err != nil {
		logger.Log.Warn("拉取后端聊天记录失败，回退本地", zap.Error(err))
		return s.localChatHistory()
	}
	return messages
}

// AddChatMessage 追加一条消息，本地立即落盘，远端尽力同步
func (s *Store) AddChatMessage(ctx context.Context, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := append(s.localChatHistory(), model.ChatMessage{
		UserID:  s.userID,
		Role:    role,
		Content: content,
	})
	raw, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	if err := s.local.SetItem(keyChatHistory, string(raw)); err != nil {
		logger.Log.Warn("本地保存聊天记录失败", zap.Error(err))
	}

	if s.userID == 0 {
		return nil
	}

	if _, err := s.remote.SaveChatMessage(ctx, &model.ChatMessage{
		UserID:  s.userID,
		Role:    role,
		Content: content,
	}); err != nil {
		logger.Log.Warn("同步聊天消息到后端失败", zap.Error(err))
	}
	return nil
}

func (s *Store) localRoadmap() *model.PersonalizedRoadmap {
	raw, ok := s.local.GetItem(keyRoadmap)
	if !ok {
		return nil
	}
	var roadmap model.PersonalizedRoadmap
	if err := json.Unmarshal([]byte(raw), &roadmap); err != nil {
		logger.Log.Warn("本地路线图损坏", zap.Error(err))
		return nil
	}
	return &roadmap
}

// Roadmap 当前用户的个性化路线图，没有则返回nil
func (s *Store) Roadmap(ctx context.Context) *model.PersonalizedRoadmap {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return s.localRoadmap()
	}

	rows, err := s.remote.GetRoadmaps(ctx, s.userID)
	if err != nil {
		logger.Log.Warn("拉取后端路线图失败，回退本地", zap.Error(err))
		return s.localRoadmap()
	}
	if len(rows) == 0 {
		return nil
	}

	var roadmap model.PersonalizedRoadmap
	if err := json.Unmarshal([]byte(rows[0].Content), &roadmap); err != nil {
		logger.Log.Warn("后端路线图内容损坏，回退本地", zap.Error(err))
		return s.localRoadmap()
	}
	return &roadmap
}

func (s *Store) SaveRoadmap(ctx context.Context, roadmap *model.PersonalizedRoadmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(roadmap)
	if err != nil {
		return err
	}
	if err := s.local.SetItem(keyRoadmap, string(raw)); err != nil {
		logger.Log.Warn("本地保存路线图失败", zap.Error(err))
	}

	if s.userID == 0 {
		return nil
	}

	if _, err := s.remote.SaveRoadmap(ctx, &model.Roadmap{
		UserID:  s.userID,
		Title:   "Personalized Roadmap",
		Content: string(raw),
	}); err != nil {
		logger.Log.Warn("同步路线图到后端失败", zap.Error(err))
	}
	return nil
}

func (s *Store) localPortfolio() *model.PortfolioData {
	raw, ok := s.local.GetItem(keyPortfolio)
	if !ok {
		return nil
	}
	var portfolio model.PortfolioData
	if err := json.Unmarshal([]byte(raw), &portfolio); err != nil {
		logger.Log.Warn("本地作品集损坏", zap.Error(err))
		return nil
	}
	return &portfolio
}

func (s *Store) Portfolio(ctx context.Context) *model.PortfolioData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return s.localPortfolio()
	}

	rows, err := s.remote.GetPortfolios(ctx, s.userID)
	if err != nil {
		logger.Log.Warn("拉取后端作品集失败，回退本地", zap.Error(err))
		return s.localPortfolio()
	}
	if len(rows) == 0 {
		return nil
	}

	var portfolio model.PortfolioData
	if err := json.Unmarshal([]byte(rows[0].Content), &portfolio); err != nil {
		logger.Log.Warn("后端作品集内容损坏，回退本地", zap.Error(err))
		return s.localPortfolio()
	}
	return &portfolio
}

func (s *Store) SavePortfolio(ctx context.Context, portfolio *model.PortfolioData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(portfolio)
	if err != nil {
		return err
	}
	if err := s.local.SetItem(keyPortfolio, string(raw)); err != nil {
		logger.Log.Warn("本地保存作品集失败", zap.Error(err))
	}

	if s.userID == 0 {
		return nil
	}

	if _, err := s.remote.SavePortfolio(ctx, &model.Portfolio{
		UserID:  s.userID,
		Title:   "Personal Portfolio",
		Content: string(raw),
	}); err != nil {
		logger.Log.Warn("同步作品集到后端失败", zap.Error(err))
	}
	return nil
}

// Recommendations 缓存的职业方向推荐，仅本地
func (s *Store) Recommendations() []model.CareerRecommendation {
	raw, ok := s.local.GetItem(keyRecommendations)
	if !ok {
		return nil
	}
	var recs []model.CareerRecommendation
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		logger.Log.Warn("本地推荐数据损坏", zap.Error(err))
		return nil
	}
	return recs
}

func (s *Store) SaveRecommendations(recs []model.CareerRecommendation) error {
	raw, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return s.local.SetItem(keyRecommendations, string(raw))
}

// IsFirstVisit 访问标记不存在即视为首次访问
func (s *Store) IsFirstVisit() bool {
	_, ok := s.local.GetItem(keyFirstVisit)
	return !ok
}

func (s *Store) SetVisited() error {
	return s.local.SetItem(keyFirstVisit, "true")
}

// Item 通用KV读取，进度跟踪等调用方使用
func (s *Store) Item(key string) (string, bool, error) {
	v, ok := s.local.GetItem(key)
	return v, ok, nil
}

// SetItem 通用KV写入
func (s *Store) SetItem(key, value string) error {
	return s.local.SetItem(key, value)
}

// ClearAll 删除全部命名空间键并重置会话状态，幂等且不报错
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := []string{
		keyUserProfile,
		keyUserID,
		keyChatHistory,
		keyRoadmap,
		keyPortfolio,
		keyFirstVisit,
		keyRecommendations,
		keyProgress,
	}
	for _, key := range keys {
		if err := s.local.RemoveItem(key); err != nil {
			logger.Log.Warn("删除本地数据失败", zap.String("key", key), zap.Error(err))
		}
	}

	s.profile = nil
	s.userID = 0
}

// NextStep 引导流程：无资料先引导建档，有资料无问卷先做问卷，最后看推荐
func (s *Store) NextStep() Step {
	profile := s.Profile()
	if profile == nil {
		return StepOnboarding
	}
	if profile.SurveyData == nil {
		return StepSurvey
	}
	return StepRecommendations
}
