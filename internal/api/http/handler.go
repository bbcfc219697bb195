package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardclash/internal/shared"
	"cardclash/internal/store"
)

type RoomReader interface {
	State(roomID string) (shared.GameState, bool)
	Len() int
}

type ResultReader interface {
	Leaderboard(ctx context.Context, limit int) ([]shared.LeaderboardRow, error)
	Results(ctx context.Context, roomID string) ([]shared.Result, error)
}

// @Summary Leaderboard
// @Description Top 10 winners by number of games won
// @Tags Results
// @Produce json
// @Success 200 {array} shared.LeaderboardRow
// @Failure 500 {array} shared.LeaderboardRow
// @Router /api/leaderboard [get]
func LeaderboardHandler(results ResultReader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := results.Leaderboard(c.Request.Context(), store.LeaderboardLimit)
		if err != nil {
			log.Error("leaderboard query failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, []shared.LeaderboardRow{})
			return
		}
		if rows == nil {
			rows = []shared.LeaderboardRow{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

// @Summary Room state
// @Description Public state of a live room; hands are never included
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} shared.GameState
// @Failure 404 {object} errorResponse
// @Router /api/rooms/{id} [get]
func RoomStateHandler(rooms RoomReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := rooms.State(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, errorResponse{Error: "room not found"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// @Summary Room history
// @Description Finished games recorded under a room id
// @Tags Results
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} RoomResultsResponse
// @Router /api/rooms/{id}/results [get]
func RoomResultsHandler(results ResultReader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("id")
		res, err := results.Results(c.Request.Context(), roomID)
		if err != nil {
			log.Error("room results query failed", zap.String("room", roomID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "results unavailable"})
			return
		}
		if res == nil {
			res = []shared.Result{}
		}
		c.JSON(http.StatusOK, RoomResultsResponse{RoomID: roomID, Results: res})
	}
}

func HealthHandler(rooms RoomReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Rooms: rooms.Len()})
	}
}
