package controller

import (
	"strconv"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
)

type RewardController struct {
	RewardService *service.RewardService
}

func NewRewardController(rewardService *service.RewardService) *RewardController {
	return &RewardController{RewardService: rewardService}
}

func (c *RewardController) List(ctx *gin.Context) {
	rewards, err := c.RewardService.List(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, rewards)
}

func (c *RewardController) Get(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	reward, err := c.RewardService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, reward)
}

type RewardRequest struct {
	Name               string           `json:"name" binding:"required"`
	Description        string           `json:"description"`
	PointsRequired     int              `json:"pointsRequired" binding:"required,min=1"`
	Category           string           `json:"category"`
	Type               model.RewardType `json:"type" binding:"required,oneof=product coupon"`
	Cost               int              `json:"cost" binding:"min=0"`
	Stock              *int             `json:"stock"`
	DiscountPercentage int              `json:"discountPercentage" binding:"min=0,max=100"`
	ExpiryDate         time.Time        `json:"expiryDate"`
	Image              string           `json:"image"`
}

func (r *RewardRequest) toModel() *model.Reward {
	return &model.Reward{
		Name:               r.Name,
		Description:        r.Description,
		PointsRequired:     r.PointsRequired,
		Category:           r.Category,
		Type:               r.Type,
		Cost:               r.Cost,
		Stock:              r.Stock,
		DiscountPercentage: r.DiscountPercentage,
		ExpiryDate:         r.ExpiryDate,
		Image:              r.Image,
	}
}

func (c *RewardController) Create(ctx *gin.Context) {
	var req RewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	reward := req.toModel()
	if err := c.RewardService.Create(ctx.Request.Context(), reward, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, reward)
}

func (c *RewardController) Update(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req RewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reward := req.toModel()
	reward.ID = id
	reward.IsActive = true
	if err := c.RewardService.Update(ctx.Request.Context(), reward, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, reward)
}

func (c *RewardController) Delete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.RewardService.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func (c *RewardController) Redeem(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	redemption, err := c.RewardService.Redeem(ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, redemption)
}

func (c *RewardController) History(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	history, err := c.RewardService.History(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

func (c *RewardController) AllRedemptions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	status := model.RedemptionStatus(ctx.Query("status"))

	redemptions, total, err := c.RewardService.AllRedemptions(ctx.Request.Context(), status, page, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: redemptions, Total: total, Page: page, Limit: limit})
}

type RedemptionStatusRequest struct {
	Status model.RedemptionStatus `json:"status" binding:"required,oneof=pending completed cancelled"`
}

func (c *RewardController) UpdateRedemptionStatus(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	var req RedemptionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	redemption, err := c.RewardService.UpdateRedemptionStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, redemption)
}
