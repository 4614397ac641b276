package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gamearena/backend/internal/models"
	"gamearena/backend/internal/service"
)

// region --- DTOs ---

type ClaimInput struct {
	RewardID uint `json:"rewardId" binding:"required"`
}

type RewardInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Points      int    `json:"points" binding:"required,min=1"`
	Category    string `json:"category"`
	Stock       int    `json:"stock" binding:"min=0"`
	IsActive    *bool  `json:"is_active"`
}

type RewardResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

type UserRewardResponse struct {
	ID        uint           `json:"id"`
	Status    string         `json:"status"`
	ClaimedAt time.Time      `json:"claimed_at"`
	Reward    RewardResponse `json:"reward"`
}

func newRewardResponse(reward models.Reward) RewardResponse {
	return RewardResponse{
		ID:          reward.ID,
		Title:       reward.Title,
		Description: reward.Description,
		Points:      reward.Points,
		Category:    reward.Category,
		Stock:       reward.Stock,
		IsActive:    reward.IsActive,
	}
}

// endregion

// RewardHandler serves the reward catalog and redemption workflow.
type RewardHandler struct {
	db  *gorm.DB
	svc *service.RewardService
}

func NewRewardHandler(db *gorm.DB, svc *service.RewardService) *RewardHandler {
	return &RewardHandler{db: db, svc: svc}
}

// List godoc
// @Summary      List active rewards
// @Tags         rewards
// @Produce      json
// @Success      200  {array}   RewardResponse
// @Router       /rewards [get]
func (h *RewardHandler) List(c *gin.Context) {
	var rewards []models.Reward
	if err := h.db.Where("is_active = ?", true).Order("points ASC").Find(&rewards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rewards"})
		return
	}

	responses := make([]RewardResponse, 0, len(rewards))
	for _, reward := range rewards {
		responses = append(responses, newRewardResponse(reward))
	}
	c.JSON(http.StatusOK, responses)
}

// Claim godoc
// @Summary      Claim a reward
// @Description  Exchanges points for a reward, decrementing stock and the caller's balance together.
// @Tags         rewards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ClaimInput true "Claim Info"
// @Success      201 {object} map[string]interface{} "{"message": "...", "points": 200}"
// @Failure      400 {object} ErrorResponse "Inactive, out of stock or insufficient points"
// @Failure      404 {object} ErrorResponse "Reward not found"
// @Router       /rewards/claim [post]
func (h *RewardHandler) Claim(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input ClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reward ID is required"})
		return
	}

	balance, err := h.svc.Claim(c.Request.Context(), userID.(uint), input.RewardID)
	switch {
	case errors.Is(err, service.ErrRewardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
	case errors.Is(err, service.ErrRewardInactive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reward is not active"})
	case errors.Is(err, service.ErrOutOfStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reward is out of stock"})
	case errors.Is(err, service.ErrInsufficientPoints):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient points"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim reward"})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Reward claimed successfully", "points": balance})
	}
}

// MyRewards godoc
// @Summary      List the caller's claimed rewards
// @Tags         rewards
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} UserRewardResponse
// @Router       /rewards/user [get]
func (h *RewardHandler) MyRewards(c *gin.Context) {
	userID, _ := c.Get("userID")

	claims, err := h.svc.Claims(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rewards"})
		return
	}

	responses := make([]UserRewardResponse, 0, len(claims))
	for _, claim := range claims {
		responses = append(responses, UserRewardResponse{
			ID:        claim.ID,
			Status:    claim.Status,
			ClaimedAt: claim.ClaimedAt,
			Reward:    newRewardResponse(claim.Reward),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// region --- Admin Handlers ---

// CreateReward godoc
// @Summary      Create a reward
// @Tags         admin-rewards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RewardInput true "Reward Info"
// @Success      201  {object}  RewardResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/rewards [post]
func (h *RewardHandler) CreateReward(c *gin.Context) {
	var input RewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	reward := models.Reward{
		Title:       input.Title,
		Description: input.Description,
		Points:      input.Points,
		Category:    input.Category,
		Stock:       input.Stock,
		IsActive:    isActive,
	}
	if err := h.db.Create(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
		return
	}

	c.JSON(http.StatusCreated, newRewardResponse(reward))
}

// UpdateReward godoc
// @Summary      Update a reward
// @Tags         admin-rewards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int         true  "Reward ID"
// @Param        input body      RewardInput true  "New Reward Info"
// @Success      200  {object}  RewardResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Reward not found"
// @Router       /admin/rewards/{id} [put]
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input RewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reward models.Reward
	if err := h.db.First(&reward, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"points":      input.Points,
		"category":    input.Category,
		"stock":       input.Stock,
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if err := h.db.Model(&reward).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward"})
		return
	}

	c.JSON(http.StatusOK, newRewardResponse(reward))
}

// DeleteReward godoc
// @Summary      Delete a reward
// @Tags         admin-rewards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Reward ID"
// @Success      200  {object}  map[string]string "{"message": "Reward deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Reward not found"
// @Router       /admin/rewards/{id} [delete]
func (h *RewardHandler) DeleteReward(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	result := h.db.Delete(&models.Reward{}, uint(id))
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted"})
}

// endregion
