package controllers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RoomInfoController struct {
	DB *sql.DB
}

// @Summary Returns the durable room row
// @Description Room listing info straight from PostgreSQL, without touching the live state
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} object{room_id=string,code=string,status=string,player_count=integer}
// @Failure 404 {object} object{error=string}
// @Router /rooms/{room_id} [get]
func (rc *RoomInfoController) GetRoomInfo(c *gin.Context) {
	roomID := c.Param("room_id")

	var room struct {
		ID        string `json:"room_id"`
		Code      string `json:"code"`
		Status    string `json:"status"`
		GridSize  int    `json:"grid_size"`
		PartyMode bool   `json:"party_mode"`
	}

	err := rc.DB.QueryRow(`
		SELECT id, code, status, grid_size, party_mode
		FROM game_rooms
		WHERE id = $1
	`, roomID).Scan(
		&room.ID, &room.Code, &room.Status, &room.GridSize, &room.PartyMode,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database: " + err.Error()})
		}
		return
	}

	var playerCount int
	err = rc.DB.QueryRow(`
		SELECT COUNT(*)
		FROM room_players
		WHERE room_id = $1
	`, roomID).Scan(&playerCount)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting players: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":      room.ID,
		"code":         room.Code,
		"status":       room.Status,
		"grid_size":    room.GridSize,
		"party_mode":   room.PartyMode,
		"player_count": playerCount,
	})
}
