package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/internal/repository"
	"skill_roadmap_backend/internal/util"
)

// RoadmapController 路线图行的读写，content为序列化后的整图
type RoadmapController struct {
	Roadmaps *repository.RoadmapRepository
}

func NewRoadmapController(roadmaps *repository.RoadmapRepository) *RoadmapController {
	return &RoadmapController{Roadmaps: roadmaps}
}

// SaveDocumentRequest 路线图/作品集共用的保存请求
// swagger:model SaveDocumentRequest
type SaveDocumentRequest struct {
	UserID  uint   `json:"user_id"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateRoadmap godoc
// @Summary 保存路线图
// @Description 保存一份路线图并回显生成的ID和创建时间
// @Tags 路线图
// @Accept  json
// @Produce  json
// @Param   request body SaveDocumentRequest true "路线图内容"
// @Success 200 {object} model.Roadmap "成功"
// @Failure 400 {object} util.ErrorResponse "参数错误"
// @Router /api/roadmaps [post]
func (c *RoadmapController) CreateRoadmap(ctx *gin.Context) {
	var req SaveDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roadmap := &model.Roadmap{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := c.Roadmaps.Create(roadmap); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, roadmap)
}

// GetRoadmaps godoc
// @Summary 查询用户路线图
// @Tags 路线图
// @Produce  json
// @Param   userId path int true "用户ID"
// @Success 200 {array} model.Roadmap "成功"
// @Failure 400 {object} util.ErrorResponse "查询错误"
// @Router /api/roadmaps/{userId} [get]
func (c *RoadmapController) GetRoadmaps(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	roadmaps, err := c.Roadmaps.FindByUserID(uint(userID))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, roadmaps)
}
