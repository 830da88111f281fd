package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/internal/service"
	"skill_roadmap_backend/internal/util"
)

// AdvisorController AI职业顾问接口
type AdvisorController struct {
	Advisor *service.AdvisorService
}

func NewAdvisorController(advisor *service.AdvisorService) *AdvisorController {
	return &AdvisorController{Advisor: advisor}
}

// RecommendationsRequest 推荐请求，携带完整画像
// swagger:model RecommendationsRequest
type RecommendationsRequest struct {
	Profile model.UserProfile `json:"profile" binding:"required"`
}

// Recommendations godoc
// @Summary 职业方向推荐
// @Description 根据画像和问卷返回两个推荐方向，AI不可用时返回固定推荐
// @Tags 顾问
// @Accept  json
// @Produce  json
// @Param   request body RecommendationsRequest true "用户画像"
// @Success 200 {array} model.CareerRecommendation "成功，总是两条"
// @Failure 400 {object} util.ErrorResponse "参数错误"
// @Router /api/advisor/recommendations [post]
func (c *AdvisorController) Recommendations(ctx *gin.Context) {
	var req RecommendationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.Advisor.RoleRecommendations(&req.Profile))
}

// ChatRequest 顾问对话请求
// swagger:model ChatRequest
type ChatRequest struct {
	Profile model.UserProfile       `json:"profile" binding:"required"`
	Message string                  `json:"message" binding:"required"`
	History []service.AIChatMessage `json:"history"`
}

// ChatResponse 顾问回复，失败时为助手口吻的错误文案
// swagger:model ChatResponse
type ChatResponse struct {
	Response string `json:"response"`
}

// Chat godoc
// @Summary 顾问对话
// @Description 单轮问答；AI故障时回复仍是可追加到对话的助手消息
// @Tags 顾问
// @Accept  json
// @Produce  json
// @Param   request body ChatRequest true "画像和消息"
// @Success 200 {object} ChatResponse "成功"
// @Failure 400 {object} util.ErrorResponse "参数错误"
// @Router /api/advisor/chat [post]
func (c *AdvisorController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, ChatResponse{
		Response: c.Advisor.Ask(&req.Profile, req.Message, req.History),
	})
}

// ChatStream godoc
// @Summary 顾问对话（流式）
// @Description SSE推送生成内容，结束时发送end事件
// @Tags 顾问
// @Accept  json
// @Produce  text/event-stream
// @Param   request body ChatRequest true "画像和消息"
// @Router /api/advisor/chat/stream [post]
func (c *AdvisorController) ChatStream(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.Advisor.CanStream() {
		util.Error(ctx, http.StatusServiceUnavailable, "streaming is not available")
		return
	}

	stream, errChan := c.Advisor.AskStream(&req.Profile, req.Message, req.History)

	// 设置SSE响应头
	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Transfer-Encoding", "chunked")

	for content := range stream {
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}
