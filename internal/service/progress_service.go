package service

import (
	"encoding/json"
	"math"
	"strconv"

	"go.uber.org/zap"

	"skill_roadmap_backend/pkg/logger"
)

// progressKey 进度数据在KV存储中的固定键
const progressKey = "roadmap-progress"

// KeyValueStore 进度服务依赖的最小存储接口，生产实现为 *client.Store
type KeyValueStore interface {
	Item(key string) (string, bool, error)
	SetItem(key string, value string) error
}

// ProgressData roadmapID -> 周序号 -> 是否完成
type ProgressData map[string]map[string]bool

// ProgressService 学习进度跟踪。整份进度表作为单个JSON读写，
// 存储损坏时按空进度处理，不中断调用方。
type ProgressService struct {
	store KeyValueStore
}

func NewProgressService(store KeyValueStore) *ProgressService {
	return &ProgressService{store: store}
}

// Progress 读取完整进度表，读取或解析失败返回空表
func (s *ProgressService) Progress() ProgressData {
	raw, ok, err := s.store.Item(progressKey)
	if err != nil {
		logger.Log.Warn("加载进度数据失败", zap.Error(err))
		return ProgressData{}
	}
	if !ok || raw == "" {
		return ProgressData{}
	}

	var progress ProgressData
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		logger.Log.Warn("进度数据损坏，按空进度处理", zap.Error(err))
		return ProgressData{}
	}
	if progress == nil {
		return ProgressData{}
	}
	return progress
}

func (s *ProgressService) save(progress ProgressData) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return s.store.SetItem(progressKey, string(raw))
}

// ToggleWeekCompletion 翻转某周完成状态，未记录的周视为未完成
func (s *ProgressService) ToggleWeekCompletion(roadmapID string, weekNumber int) error {
	progress := s.Progress()
	week := strconv.Itoa(weekNumber)
	if progress[roadmapID] == nil {
		progress[roadmapID] = map[string]bool{}
	}
	progress[roadmapID][week] = !progress[roadmapID][week]
	return s.save(progress)
}

// IsWeekCompleted 查询某周完成状态
func (s *ProgressService) IsWeekCompleted(roadmapID string, weekNumber int) bool {
	progress := s.Progress()
	return progress[roadmapID][strconv.Itoa(weekNumber)]
}

// CompletionPercentage 完成百分比，四舍五入到整数；totalWeeks为0时返回0
func (s *ProgressService) CompletionPercentage(roadmapID string, totalWeeks int) int {
	if totalWeeks == 0 {
		return 0
	}

	completed := 0
	for _, done := range s.Progress()[roadmapID] {
		if done {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(totalWeeks) * 100))
}
