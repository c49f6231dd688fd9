package controller

import (
	"errors"
	"net/http"

	"ctchen222/tictac/internal/api/models"
	"ctchen222/tictac/internal/api/response"
	"ctchen222/tictac/internal/api/service"

	"github.com/gin-gonic/gin"
)

// BotController handles bot-related HTTP requests.
type BotController struct {
	botService service.BotService
}

// NewBotController creates a new BotController.
func NewBotController(botService service.BotService) *BotController {
	return &BotController{
		botService: botService,
	}
}

// NextMove handles the stateless next-move endpoint.
func (bc *BotController) NextMove(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	move, err := bc.botService.NextMove(c.Request.Context(), &req)
	if err != nil {
		var apiErr response.Error
		if errors.As(err, &apiErr) {
			response.ErrorResponse(c, apiErr.Code, apiErr.Error())
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(c, move)
}

// Health reports that the server is up.
func (bc *BotController) Health(c *gin.Context) {
	response.SuccessResponseContent(c, "ok")
}
