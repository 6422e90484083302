package controllers

import (
	"errors"
	"log"
	"net/http"

	game_constants "shapekeeper/constants/game"
	"shapekeeper/middleware"
	"shapekeeper/models/postgres"
	"shapekeeper/services/game"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createRoomRequest struct {
	Name      string `json:"name" binding:"required"`
	GridSize  int    `json:"grid_size"`
	PartyMode bool   `json:"party_mode"`
}

type joinRoomRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// httpStatus maps engine errors onto HTTP status codes.
func httpStatus(err error) int {
	switch {
	case game.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHost),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrNotYourSquare):
		return http.StatusForbidden
	case errors.Is(err, game.ErrRoomFull),
		errors.Is(err, game.ErrGameInProgress),
		errors.Is(err, game.ErrAlreadyStarted),
		errors.Is(err, game.ErrLineAlreadyDrawn),
		errors.Is(err, game.ErrAlreadyRevealed),
		errors.Is(err, game.ErrColorInUse),
		errors.Is(err, game.ErrEffectUsed):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// @Summary Creates a new game room
// @Description Creates a room with the caller as host and returns the full room state
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body object{name=string,grid_size=integer,party_mode=boolean} true "Room settings"
// @Success 200 {object} object{room=object,player_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /rooms [post]
func CreateRoom(db *gorm.DB, engine *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session"})
			return
		}

		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		if req.GridSize == 0 {
			req.GridSize = game_constants.DefaultGridSize
		}

		st, err := engine.CreateRoom(sessionID, req.Name, req.GridSize, req.PartyMode)
		if err != nil {
			c.JSON(httpStatus(err), gin.H{"error": err.Error()})
			return
		}

		// Durable rows; live state already lives in the engine's store.
		room := postgres.GameRoom{
			ID:            st.ID,
			Code:          st.Code,
			HostSessionID: st.HostSessionID,
			GridSize:      st.GridSize,
			PartyMode:     st.PartyMode,
			Status:        string(st.Status),
		}
		if err := db.Create(&room).Error; err != nil {
			log.Printf("[ROOM] Error persisting room row: %v", err)
		}
		seat := postgres.RoomPlayer{
			RoomID:    st.ID,
			SessionID: sessionID,
			Name:      req.Name,
			Color:     st.Players[0].Color,
		}
		if err := db.Create(&seat).Error; err != nil {
			log.Printf("[ROOM] Error persisting seat row: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"room":      st,
			"player_id": st.Players[0].ID,
		})
	}
}

// @Summary Joins a room by code
// @Description Adds the caller to the room, or reconnects a known session
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body object{code=string,name=string} true "Join request"
// @Success 200 {object} object{room=object,player_id=string,rejoined=boolean}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /rooms/join [post]
func JoinRoom(db *gorm.DB, engine *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session"})
			return
		}

		var req joinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code and name are required"})
			return
		}

		st, res, err := engine.JoinRoom(req.Code, sessionID, req.Name)
		if err != nil {
			c.JSON(httpStatus(err), gin.H{"error": err.Error()})
			return
		}

		if !res.Rejoined {
			p := st.PlayerBySession(sessionID)
			seat := postgres.RoomPlayer{
				RoomID:    st.ID,
				SessionID: sessionID,
				Name:      req.Name,
				Color:     p.Color,
			}
			if err := db.Create(&seat).Error; err != nil {
				log.Printf("[ROOM] Error persisting seat row: %v", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"room":      st,
			"player_id": res.PlayerID,
			"rejoined":  res.Rejoined,
		})
	}
}

// @Summary Returns the full live state of a room
// @Description Snapshot of the room, including board, players and scores
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} object{room=object}
// @Failure 404 {object} object{error=string}
// @Router /rooms/{room_id}/state [get]
func GetGameState(engine *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := engine.GetRoom(c.Param("room_id"))
		if err != nil {
			c.JSON(httpStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": st})
	}
}

// @Summary Resolves a join code
// @Description Returns the live room behind a join code, for the pre-join screen
// @Tags rooms
// @Produce json
// @Param code path string true "Join code"
// @Success 200 {object} object{room_id=string,status=string,player_count=integer,grid_size=integer,party_mode=boolean}
// @Failure 404 {object} object{error=string}
// @Router /rooms/code/{code} [get]
func GetRoomByCode(engine *game.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := engine.GetRoomByCode(c.Param("code"))
		if err != nil {
			c.JSON(httpStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"room_id":      st.ID,
			"status":       st.Status,
			"player_count": len(st.Players),
			"grid_size":    st.GridSize,
			"party_mode":   st.PartyMode,
		})
	}
}
