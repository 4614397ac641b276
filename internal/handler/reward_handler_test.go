package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gamearena/backend/internal/auth"
	"gamearena/backend/internal/handler"
	"gamearena/backend/internal/ledger"
	"gamearena/backend/internal/metrics"
	"gamearena/backend/internal/models"
	"gamearena/backend/internal/service"
	"gamearena/backend/internal/testutil"
)

func newRewardRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewRewardService(db, ledger.New(m), m)
	h := handler.NewRewardHandler(db, svc)

	router := gin.New()
	requireAuth := auth.Middleware(testConfig)
	requireAdmin := auth.AdminMiddleware(db)
	api := router.Group("/api/v1")
	{
		api.GET("/rewards", h.List)
		api.POST("/rewards/claim", requireAuth, h.Claim)
		api.GET("/rewards/user", requireAuth, h.MyRewards)

		admin := api.Group("/admin/rewards", requireAuth, requireAdmin)
		admin.POST("", h.CreateReward)
		admin.PUT("/:id", h.UpdateReward)
		admin.DELETE("/:id", h.DeleteReward)
	}
	return router
}

func seedCatalogReward(t *testing.T, db *gorm.DB, title string, points, stock int, active bool) models.Reward {
	t.Helper()
	reward := models.Reward{Title: title, Points: points, Stock: stock, IsActive: active}
	require.NoError(t, db.Create(&reward).Error)
	return reward
}

func TestListRewardsOnlyActiveByPointsAscending(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalogReward(t, db, "Steam Gift Card", 400, 5, true)
	seedCatalogReward(t, db, "Gaming Mouse", 300, 5, true)
	seedCatalogReward(t, db, "Retired Headset", 100, 5, false)
	router := newRewardRouter(db)

	w := doJSON(t, router, http.MethodGet, "/api/v1/rewards", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var rewards []handler.RewardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rewards))
	require.Len(t, rewards, 2)
	require.Equal(t, "Gaming Mouse", rewards[0].Title)
	require.Equal(t, "Steam Gift Card", rewards[1].Title)
}

func TestClaimReward(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 500)
	reward := seedCatalogReward(t, db, "Gaming Mouse", 300, 1, true)
	router := newRewardRouter(db)
	token := tokenFor(t, user.ID)

	w := doJSON(t, router, http.MethodPost, "/api/v1/rewards/claim", handler.ClaimInput{RewardID: reward.ID}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string `json:"message"`
		Points  int    `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Reward claimed successfully", resp.Message)
	require.Equal(t, 200, resp.Points)

	// Second claim hits the empty stock.
	w = doJSON(t, router, http.MethodPost, "/api/v1/rewards/claim", handler.ClaimInput{RewardID: reward.ID}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Reward is out of stock")
}

func TestClaimRewardErrorMapping(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 100)
	inactive := seedCatalogReward(t, db, "Retired Headset", 50, 5, false)
	pricey := seedCatalogReward(t, db, "Gaming Chair", 900, 5, true)
	router := newRewardRouter(db)
	token := tokenFor(t, user.ID)

	w := doJSON(t, router, http.MethodPost, "/api/v1/rewards/claim", handler.ClaimInput{RewardID: 999}, token)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Reward not found")

	w = doJSON(t, router, http.MethodPost, "/api/v1/rewards/claim", handler.ClaimInput{RewardID: inactive.ID}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Reward is not active")

	w = doJSON(t, router, http.MethodPost, "/api/v1/rewards/claim", handler.ClaimInput{RewardID: pricey.ID}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Insufficient points")

	w = doJSON(t, router, http.MethodPost, "/api/v1/rewards/claim", gin.H{}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Reward ID is required")
}

func TestMyRewards(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 500)
	reward := seedCatalogReward(t, db, "Gaming Mouse", 300, 5, true)
	router := newRewardRouter(db)
	token := tokenFor(t, user.ID)

	w := doJSON(t, router, http.MethodPost, "/api/v1/rewards/claim", handler.ClaimInput{RewardID: reward.ID}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/rewards/user", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var claims []handler.UserRewardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &claims))
	require.Len(t, claims, 1)
	require.Equal(t, "granted", claims[0].Status)
	require.Equal(t, reward.ID, claims[0].Reward.ID)
}

func TestAdminRewardCRUDRequiresAdminRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 0)
	router := newRewardRouter(db)

	w := doJSON(t, router, http.MethodPost, "/api/v1/admin/rewards", handler.RewardInput{
		Title:  "Gaming Mouse",
		Points: 300,
		Stock:  5,
	}, tokenFor(t, user.ID))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRewardCRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	admin := testutil.SeedUser(t, db, "root", 0)
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", admin.ID).Update("role", models.RoleAdmin).Error)
	router := newRewardRouter(db)
	token := tokenFor(t, admin.ID)

	w := doJSON(t, router, http.MethodPost, "/api/v1/admin/rewards", handler.RewardInput{
		Title:  "Gaming Mouse",
		Points: 300,
		Stock:  5,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created handler.RewardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.IsActive)

	rewardPath := fmt.Sprintf("/api/v1/admin/rewards/%d", created.ID)
	w = doJSON(t, router, http.MethodPut, rewardPath, handler.RewardInput{
		Title:  "Gaming Mouse Pro",
		Points: 350,
		Stock:  3,
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var reward models.Reward
	require.NoError(t, db.First(&reward, created.ID).Error)
	require.Equal(t, "Gaming Mouse Pro", reward.Title)
	require.Equal(t, 350, reward.Points)

	w = doJSON(t, router, http.MethodDelete, rewardPath, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, rewardPath, nil, token)
	require.Equal(t, http.StatusNotFound, w.Code)
}
