package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetRoomInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock, _ := sqlmock.New()
	defer db.Close()

	roomInfoController := &RoomInfoController{DB: db}

	router := gin.New()
	router.GET("/rooms/:room_id", roomInfoController.GetRoomInfo)

	mock.ExpectQuery(`SELECT id, code, status, grid_size, party_mode FROM game_rooms WHERE id = \$1`).
		WithArgs("room_test123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "status", "grid_size", "party_mode"}).
			AddRow("room_test123", "AB12CD", "lobby", 10, true))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM room_players WHERE room_id = \$1`).
		WithArgs("room_test123").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	req, _ := http.NewRequest("GET", "/rooms/room_test123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Equal(t, "room_test123", response["room_id"])
	assert.Equal(t, "AB12CD", response["code"])
	assert.Equal(t, "lobby", response["status"])
	assert.Equal(t, float64(10), response["grid_size"])
	assert.Equal(t, true, response["party_mode"])
	assert.Equal(t, float64(3), response["player_count"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoomInfoNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock, _ := sqlmock.New()
	defer db.Close()

	roomInfoController := &RoomInfoController{DB: db}

	router := gin.New()
	router.GET("/rooms/:room_id", roomInfoController.GetRoomInfo)

	mock.ExpectQuery(`SELECT id, code, status, grid_size, party_mode FROM game_rooms WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(sql.ErrNoRows)

	req, _ := http.NewRequest("GET", "/rooms/nonexistent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
