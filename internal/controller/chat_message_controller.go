package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/internal/repository"
	"skill_roadmap_backend/internal/util"
)

// ChatMessageController 对话记录的读写
type ChatMessageController struct {
	Messages *repository.ChatMessageRepository
}

func NewChatMessageController(messages *repository.ChatMessageRepository) *ChatMessageController {
	return &ChatMessageController{Messages: messages}
}

// CreateChatMessageRequest 新增消息请求
// swagger:model CreateChatMessageRequest
type CreateChatMessageRequest struct {
	UserID  uint   `json:"user_id"`
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateChatMessage godoc
// @Summary 保存对话消息
// @Description 保存一条对话消息并回显生成的ID和时间戳
// @Tags 对话
// @Accept  json
// @Produce  json
// @Param   request body CreateChatMessageRequest true "消息内容"
// @Success 200 {object} model.ChatMessage "成功"
// @Failure 400 {object} util.ErrorResponse "参数错误"
// @Router /api/chat-messages [post]
func (c *ChatMessageController) CreateChatMessage(ctx *gin.Context) {
	var req CreateChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg := &model.ChatMessage{
		UserID:  req.UserID,
		Role:    req.Role,
		Content: req.Content,
	}
	if err := c.Messages.Create(msg); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, msg)
}

// GetChatMessages godoc
// @Summary 查询用户对话记录
// @Description 按用户ID查询全部消息，时间升序
// @Tags 对话
// @Produce  json
// @Param   userId path int true "用户ID"
// @Success 200 {array} model.ChatMessage "成功"
// @Failure 400 {object} util.ErrorResponse "查询错误"
// @Router /api/chat-messages/{userId} [get]
func (c *ChatMessageController) GetChatMessages(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	msgs, err := c.Messages.FindByUserID(uint(userID))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, msgs)
}
