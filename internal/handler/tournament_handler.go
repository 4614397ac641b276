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

type TournamentInput struct {
	Title           string                  `json:"title" binding:"required"`
	Game            string                  `json:"game" binding:"required"`
	Description     string                  `json:"description"`
	Status          models.TournamentStatus `json:"status"`
	StartDate       time.Time               `json:"start_date" binding:"required"`
	EndDate         time.Time               `json:"end_date" binding:"required"`
	PrizePool       string                  `json:"prize_pool"`
	MaxParticipants int                     `json:"max_participants" binding:"required,min=2"`
}

type TournamentResponse struct {
	ID               uint                    `json:"id"`
	Title            string                  `json:"title"`
	Game             string                  `json:"game"`
	Description      string                  `json:"description"`
	Status           models.TournamentStatus `json:"status"`
	StartDate        time.Time               `json:"start_date"`
	EndDate          time.Time               `json:"end_date"`
	PrizePool        string                  `json:"prize_pool"`
	MaxParticipants  int                     `json:"max_participants"`
	CreatedByID      uint                    `json:"created_by"`
	ParticipantCount int64                   `json:"participant_count"`
}

type ParticipationResponse struct {
	ID         uint               `json:"id"`
	Status     string             `json:"status"`
	JoinedAt   time.Time          `json:"joined_at"`
	Tournament TournamentResponse `json:"tournament"`
}

// endregion

// TournamentHandler serves the tournament registry and join/leave workflow.
type TournamentHandler struct {
	db  *gorm.DB
	svc *service.TournamentService
}

func NewTournamentHandler(db *gorm.DB, svc *service.TournamentService) *TournamentHandler {
	return &TournamentHandler{db: db, svc: svc}
}

func (h *TournamentHandler) newTournamentResponse(tournament models.Tournament) TournamentResponse {
	var participantCount int64
	h.db.Model(&models.TournamentParticipant{}).
		Where("tournament_id = ?", tournament.ID).
		Count(&participantCount)

	return TournamentResponse{
		ID:               tournament.ID,
		Title:            tournament.Title,
		Game:             tournament.Game,
		Description:      tournament.Description,
		Status:           tournament.Status,
		StartDate:        tournament.StartDate,
		EndDate:          tournament.EndDate,
		PrizePool:        tournament.PrizePool,
		MaxParticipants:  tournament.MaxParticipants,
		CreatedByID:      tournament.CreatedByID,
		ParticipantCount: participantCount,
	}
}

// List godoc
// @Summary      List tournaments
// @Description  Gets a paginated list of tournaments, optionally filtered by status.
// @Tags         tournaments
// @Produce      json
// @Param        status query string false "Filter by status"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[TournamentResponse]
// @Router       /tournaments [get]
func (h *TournamentHandler) List(c *gin.Context) {
	page, limit := PageParams(c)

	query := h.db.Model(&models.Tournament{}).Order("start_date DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	result, err := Paginate[models.Tournament](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tournaments"})
		return
	}

	responses := make([]TournamentResponse, 0, len(result.Data))
	for _, tournament := range result.Data {
		responses = append(responses, h.newTournamentResponse(tournament))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// GetByID godoc
// @Summary      Get a tournament by ID
// @Tags         tournaments
// @Produce      json
// @Param        id path int true "Tournament ID"
// @Success      200  {object}  TournamentResponse
// @Failure      404  {object}  ErrorResponse "Tournament not found"
// @Router       /tournaments/{id} [get]
func (h *TournamentHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	var tournament models.Tournament
	if err := h.db.First(&tournament, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		return
	}

	c.JSON(http.StatusOK, h.newTournamentResponse(tournament))
}

// Create godoc
// @Summary      Create a tournament
// @Description  Creates a new tournament with the caller as its owner.
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body TournamentInput true "Tournament Info"
// @Success      201  {object}  TournamentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /tournaments [post]
func (h *TournamentHandler) Create(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input TournamentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := input.Status
	if status == "" {
		status = models.TournamentUpcoming
	}
	switch status {
	case models.TournamentUpcoming, models.TournamentOngoing, models.TournamentCompleted, models.TournamentCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	tournament := models.Tournament{
		Title:           input.Title,
		Game:            input.Game,
		Description:     input.Description,
		Status:          status,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		PrizePool:       input.PrizePool,
		MaxParticipants: input.MaxParticipants,
		CreatedByID:     userID.(uint),
	}
	if err := h.db.Create(&tournament).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tournament"})
		return
	}

	c.JSON(http.StatusCreated, h.newTournamentResponse(tournament))
}

// Join godoc
// @Summary      Join a tournament
// @Description  Registers the caller in the tournament and awards the join bonus.
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      201 {object} map[string]interface{} "{"message": "...", "points": 160}"
// @Failure      400 {object} ErrorResponse "Already joined this tournament"
// @Failure      404 {object} ErrorResponse "Tournament not found"
// @Router       /tournaments/{id}/join [post]
func (h *TournamentHandler) Join(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	balance, err := h.svc.Join(c.Request.Context(), userID.(uint), uint(id))
	switch {
	case errors.Is(err, service.ErrTournamentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
	case errors.Is(err, service.ErrAlreadyJoined):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already joined this tournament"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join tournament"})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Successfully joined tournament", "points": balance})
	}
}

// Leave godoc
// @Summary      Leave a tournament
// @Description  Removes the caller's membership and takes back the join bonus.
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} map[string]interface{} "{"message": "...", "points": 150}"
// @Failure      400 {object} ErrorResponse "Not enrolled in this tournament"
// @Failure      404 {object} ErrorResponse "Tournament not found"
// @Router       /tournaments/{id}/leave [delete]
func (h *TournamentHandler) Leave(c *gin.Context) {
	userID, _ := c.Get("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tournament ID"})
		return
	}

	balance, err := h.svc.Leave(c.Request.Context(), userID.(uint), uint(id))
	switch {
	case errors.Is(err, service.ErrTournamentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
	case errors.Is(err, service.ErrNotEnrolled):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enrolled in this tournament"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave tournament"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Successfully left tournament", "points": balance})
	}
}

// MyTournaments godoc
// @Summary      List the caller's tournaments
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} ParticipationResponse
// @Router       /tournaments/user [get]
func (h *TournamentHandler) MyTournaments(c *gin.Context) {
	userID, _ := c.Get("userID")

	participations, err := h.svc.Participations(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tournaments"})
		return
	}

	responses := make([]ParticipationResponse, 0, len(participations))
	for _, p := range participations {
		responses = append(responses, ParticipationResponse{
			ID:         p.ID,
			Status:     p.Status,
			JoinedAt:   p.JoinedAt,
			Tournament: h.newTournamentResponse(p.Tournament),
		})
	}

	c.JSON(http.StatusOK, responses)
}
