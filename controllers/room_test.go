package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shapekeeper/services/game"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGameState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := game.NewEngine(game.NewMemoryStore())
	st, err := engine.CreateRoom("sess1", "Ana", 10, false)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/rooms/:room_id/state", GetGameState(engine))

	req, _ := http.NewRequest("GET", "/rooms/"+st.ID+"/state", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Room game.RoomState `json:"room"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, st.ID, response.Room.ID)
	assert.Equal(t, game.StatusLobby, response.Room.Status)
	assert.Len(t, response.Room.Players, 1)
}

func TestGetGameStateNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := game.NewEngine(game.NewMemoryStore())

	router := gin.New()
	router.GET("/rooms/:room_id/state", GetGameState(engine))

	req, _ := http.NewRequest("GET", "/rooms/ghost/state", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRoomByCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := game.NewEngine(game.NewMemoryStore())
	st, err := engine.CreateRoom("sess1", "Ana", 5, true)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/rooms/code/:code", GetRoomByCode(engine))

	req, _ := http.NewRequest("GET", "/rooms/code/"+st.Code, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, st.ID, response["room_id"])
	assert.Equal(t, float64(1), response["player_count"])
	assert.Equal(t, float64(5), response["grid_size"])
	assert.Equal(t, true, response["party_mode"])
}
