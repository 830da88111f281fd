package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"skill_roadmap_backend/internal/model"
	"skill_roadmap_backend/internal/repository"
	"skill_roadmap_backend/internal/service"
	"skill_roadmap_backend/internal/util"
)

// PortfolioController 作品集行的读写和生成
type PortfolioController struct {
	Portfolios *repository.PortfolioRepository
	Generator  *service.PortfolioService
}

func NewPortfolioController(portfolios *repository.PortfolioRepository, generator *service.PortfolioService) *PortfolioController {
	return &PortfolioController{Portfolios: portfolios, Generator: generator}
}

// CreatePortfolio godoc
// @Summary 保存作品集
// @Description 保存一份作品集并回显生成的ID和创建时间
// @Tags 作品集
// @Accept  json
// @Produce  json
// @Param   request body SaveDocumentRequest true "作品集内容"
// @Success 200 {object} model.Portfolio "成功"
// @Failure 400 {object} util.ErrorResponse "参数错误"
// @Router /api/portfolios [post]
func (c *PortfolioController) CreatePortfolio(ctx *gin.Context) {
	var req SaveDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	portfolio := &model.Portfolio{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := c.Portfolios.Create(portfolio); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, portfolio)
}

// GetPortfolios godoc
// @Summary 查询用户作品集
// @Tags 作品集
// @Produce  json
// @Param   userId path int true "用户ID"
// @Success 200 {array} model.Portfolio "成功"
// @Failure 400 {object} util.ErrorResponse "查询错误"
// @Router /api/portfolios/{userId} [get]
func (c *PortfolioController) GetPortfolios(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	portfolios, err := c.Portfolios.FindByUserID(uint(userID))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, portfolios)
}

// GeneratePortfolioRequest 从画像和路线图生成作品集
// swagger:model GeneratePortfolioRequest
type GeneratePortfolioRequest struct {
	Profile model.UserProfile         `json:"profile" binding:"required"`
	Roadmap model.PersonalizedRoadmap `json:"roadmap" binding:"required"`
}

// GeneratePortfolioResponse 生成结果及HTML产物地址
// swagger:model GeneratePortfolioResponse
type GeneratePortfolioResponse struct {
	Portfolio *model.PortfolioData `json:"portfolio"`
	Filename  string               `json:"filename"`
	URL       string               `json:"url,omitempty"`
}

// GeneratePortfolio godoc
// @Summary 生成作品集
// @Description 从画像和路线图生成作品集数据，渲染HTML产物并上传存储
// @Tags 作品集
// @Accept  json
// @Produce  json
// @Param   request body GeneratePortfolioRequest true "画像和路线图"
// @Success 200 {object} GeneratePortfolioResponse "成功"
// @Failure 400 {object} util.ErrorResponse "参数错误"
// @Failure 500 {object} util.ErrorResponse "渲染失败"
// @Router /api/portfolios/generate [post]
func (c *PortfolioController) GeneratePortfolio(ctx *gin.Context) {
	var req GeneratePortfolioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, url, err := c.Generator.Generate(ctx.Request.Context(), &req.Profile, &req.Roadmap)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, GeneratePortfolioResponse{
		Portfolio: data,
		Filename:  service.Filename(req.Profile.Name),
		URL:       url,
	})
}
