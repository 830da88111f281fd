// Package catalog 内嵌预置路线图数据集，只读，所有派生视图由 resource_service 提供。
package catalog

import (
	_ "embed"
	"encoding/json"

	"skill_roadmap_backend/internal/model"
)

//go:embed data/prebuilt_roadmaps.json
var roadmapsJSON []byte

var roadmaps []model.PrebuiltRoadmap

func init() {
	if err := json.Unmarshal(roadmapsJSON, &roadmaps); err != nil {
		panic("catalog: invalid embedded roadmap dataset: " + err.Error())
	}
}

// Roadmaps 返回预置路线图切片，调用方不得修改
func Roadmaps() []model.PrebuiltRoadmap {
	return roadmaps
}

// FindByRole 按角色名精确匹配
func FindByRole(role string) (model.PrebuiltRoadmap, bool) {
	for _, r := range roadmaps {
		if r.Role == role {
			return r, true
		}
	}
	return model.PrebuiltRoadmap{}, false
}
