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

type GameInput struct {
	Title       string            `json:"title" binding:"required"`
	Developer   string            `json:"developer"`
	Genre       string            `json:"genre"`
	Description string            `json:"description"`
	Status      models.GameStatus `json:"status"`
}

type GameStatusInput struct {
	Status models.GameStatus `json:"status" binding:"required"`
}

type GameResponse struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Developer     string            `json:"developer"`
	Genre         string            `json:"genre"`
	Description   string            `json:"description"`
	Status        models.GameStatus `json:"status"`
	SubmittedByID uint              `json:"submitted_by"`
	CreatedAt     time.Time         `json:"created_at"`
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:            game.ID,
		Title:         game.Title,
		Developer:     game.Developer,
		Genre:         game.Genre,
		Description:   game.Description,
		Status:        game.Status,
		SubmittedByID: game.SubmittedByID,
		CreatedAt:     game.CreatedAt,
	}
}

// endregion

// GameHandler serves the game submission workflow.
type GameHandler struct {
	db  *gorm.DB
	svc *service.GameService
}

func NewGameHandler(db *gorm.DB, svc *service.GameService) *GameHandler {
	return &GameHandler{db: db, svc: svc}
}

// List godoc
// @Summary      List submitted games
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[GameResponse]
// @Router       /games [get]
func (h *GameHandler) List(c *gin.Context) {
	page, limit := PageParams(c)

	query := h.db.Model(&models.Game{}).Order("created_at DESC")
	result, err := Paginate[models.Game](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	responses := make([]GameResponse, 0, len(result.Data))
	for _, game := range result.Data {
		responses = append(responses, newGameResponse(game))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// Create godoc
// @Summary      Submit a game
// @Description  Stores the submission and awards the submission bonus once.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  map[string]interface{} "{"game": {...}, "points": 175}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /games [post]
func (h *GameHandler) Create(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game := models.Game{
		Title:       input.Title,
		Developer:   input.Developer,
		Genre:       input.Genre,
		Description: input.Description,
		Status:      input.Status,
	}

	balance, err := h.svc.Submit(c.Request.Context(), userID.(uint), &game)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit game"})
	default:
		c.JSON(http.StatusCreated, gin.H{"game": newGameResponse(game), "points": balance})
	}
}

// UpdateStatus godoc
// @Summary      Update a game's review status
// @Description  Moves the game to a new review state. Awards no points.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Game ID"
// @Param        input body      GameStatusInput true  "New Status"
// @Success      200  {object}  map[string]string "{"message": "Game status updated successfully"}"
// @Failure      400  {object}  ErrorResponse "Invalid status"
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/status [put]
func (h *GameHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	var input GameStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	err = h.svc.UpdateStatus(c.Request.Context(), uint(id), input.Status)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, service.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game status"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Game status updated successfully"})
	}
}
