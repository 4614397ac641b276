package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamearena/backend/internal/models"
	"gamearena/backend/internal/service"
)

// region --- DTOs ---

type ActivityResponse struct {
	ID           uint                `json:"id"`
	ActivityType models.ActivityType `json:"activity_type"`
	Description  string              `json:"description"`
	PointsChange int                 `json:"points_change"`
	TournamentID *uint               `json:"tournament_id,omitempty"`
	RewardID     *uint               `json:"reward_id,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type DashboardStats struct {
	TotalTournaments int64 `json:"totalTournaments"`
	TotalRewards     int64 `json:"totalRewards"`
	TotalPoints      int   `json:"totalPoints"`
}

type DashboardResponse struct {
	User        UserResponse            `json:"user"`
	Tournaments []ParticipationResponse `json:"tournaments"`
	Rewards     []UserRewardResponse    `json:"rewards"`
	Activity    []ActivityResponse      `json:"activity"`
	Stats       DashboardStats          `json:"stats"`
}

// endregion

// DashboardHandler serves the read-only dashboard projection.
type DashboardHandler struct {
	svc         *service.DashboardService
	tournaments *TournamentHandler
}

func NewDashboardHandler(svc *service.DashboardService, tournaments *TournamentHandler) *DashboardHandler {
	return &DashboardHandler{svc: svc, tournaments: tournaments}
}

// Get godoc
// @Summary      Get the caller's dashboard
// @Description  Profile, memberships, claims, recent activity and stats in one payload.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DashboardResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, _ := c.Get("userID")

	dashboard, err := h.svc.Data(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	tournaments := make([]ParticipationResponse, 0, len(dashboard.Participations))
	for _, p := range dashboard.Participations {
		tournaments = append(tournaments, ParticipationResponse{
			ID:         p.ID,
			Status:     p.Status,
			JoinedAt:   p.JoinedAt,
			Tournament: h.tournaments.newTournamentResponse(p.Tournament),
		})
	}

	rewards := make([]UserRewardResponse, 0, len(dashboard.Rewards))
	for _, claim := range dashboard.Rewards {
		rewards = append(rewards, UserRewardResponse{
			ID:        claim.ID,
			Status:    claim.Status,
			ClaimedAt: claim.ClaimedAt,
			Reward:    newRewardResponse(claim.Reward),
		})
	}

	activity := make([]ActivityResponse, 0, len(dashboard.Activities))
	for _, a := range dashboard.Activities {
		activity = append(activity, ActivityResponse{
			ID:           a.ID,
			ActivityType: a.ActivityType,
			Description:  a.Description,
			PointsChange: a.PointsChange,
			TournamentID: a.TournamentID,
			RewardID:     a.RewardID,
			CreatedAt:    a.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, DashboardResponse{
		User:        newUserResponse(dashboard.User),
		Tournaments: tournaments,
		Rewards:     rewards,
		Activity:    activity,
		Stats: DashboardStats{
			TotalTournaments: dashboard.TotalTournaments,
			TotalRewards:     dashboard.TotalRewards,
			TotalPoints:      dashboard.User.Profile.Points,
		},
	})
}
