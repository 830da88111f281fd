package controller

import (
	"github.com/gin-gonic/gin"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/internal/service"
	"skill_roadmap_backend/internal/util"
)

// ResourceController 内置学习资源索引的只读接口
type ResourceController struct {
	Resources *service.ResourceService
}

func NewResourceController(resources *service.ResourceService) *ResourceController {
	return &ResourceController{Resources: resources}
}

// ListResources godoc
// @Summary 查询学习资源
// @Description 列出全部资源，支持 type/search/topic 三种过滤，互斥，优先级 topic > search > type
// @Tags 资源
// @Produce  json
// @Param   type query string false "资源类型 youtube/article/course/documentation"
// @Param   search query string false "标题或类型关键词"
// @Param   topic query string false "主题，按方向名称和描述匹配"
// @Success 200 {array} model.Resource "成功"
// @Router /api/resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	if topic := ctx.Query("topic"); topic != "" {
		util.Success(ctx, c.Resources.ResourcesForTopic(topic))
		return
	}
	if keyword := ctx.Query("search"); keyword != "" {
		util.Success(ctx, c.Resources.SearchResources(keyword))
		return
	}
	if t := ctx.Query("type"); t != "" {
		util.Success(ctx, c.Resources.ResourcesByType(model.ResourceType(t)))
		return
	}
	util.Success(ctx, c.Resources.AllResources())
}

// ListResourceTypes godoc
// @Summary 查询资源类型清单
// @Tags 资源
// @Produce  json
// @Success 200 {array} string "成功"
// @Router /api/resources/types [get]
func (c *ResourceController) ListResourceTypes(ctx *gin.Context) {
	util.Success(ctx, c.Resources.ResourceTypes())
}

// ListResourcesByRoadmap godoc
// @Summary 按方向分组查询资源
// @Tags 资源
// @Produce  json
// @Success 200 {object} map[string][]model.Resource "成功"
// @Router /api/resources/roadmaps [get]
func (c *ResourceController) ListResourcesByRoadmap(ctx *gin.Context) {
	util.Success(ctx, c.Resources.ResourcesByRoadmap())
}
