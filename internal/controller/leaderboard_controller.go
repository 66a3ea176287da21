package controller

import (
	"strconv"

	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

func (c *LeaderboardController) Top(ctx *gin.Context) {
	timeframe := ctx.DefaultQuery("timeframe", "all")
	school := ctx.Query("school")
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	entries, err := c.LeaderboardService.Top(ctx.Request.Context(), timeframe, school, limit)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
