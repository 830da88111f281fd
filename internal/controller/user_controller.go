package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/internal/repository"
	"skill_roadmap_backend/internal/util"
)

// UserController 处理用户相关的HTTP请求
type UserController struct {
	Users *repository.UserRepository
}

func NewUserController(users *repository.UserRepository) *UserController {
	return &UserController{Users: users}
}

// CreateUserRequest 建档请求
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Status string `json:"status"`
}

// CreateUserResponse 建档响应，回显生成的ID
// swagger:model CreateUserResponse
type CreateUserResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// CreateUser godoc
// @Summary 创建用户
// @Description 创建新用户并返回生成的ID
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   request body CreateUserRequest true "用户信息"
// @Success 200 {object} CreateUserResponse "成功"
// @Failure 400 {object} util.ErrorResponse "参数错误或邮箱已存在"
// @Router /api/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:   req.Name,
		Email:  req.Email,
		Status: req.Status,
	}
	if err := c.Users.Create(user); err != nil {
		// 唯一索引冲突等插入错误统一按400处理
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, CreateUserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Status: user.Status,
	})
}

// GetUser godoc
// @Summary 查询用户
// @Description 按ID查询单个用户
// @Tags 用户
// @Produce  json
// @Param   id path int true "用户ID"
// @Success 200 {object} model.User "成功"
// @Failure 400 {object} util.ErrorResponse "ID格式错误"
// @Failure 404 {object} util.ErrorResponse "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	user, err := c.Users.FindByID(uint(id))
	if errors.Is(err, util.ErrUserNotFound) {
		util.NotFound(ctx, util.ErrUserNotFound.Error())
		return
	}
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, user)
}
