package routes

import (
	"shapekeeper/controllers"
	"shapekeeper/middleware"
	"shapekeeper/services/game"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, engine *game.Engine) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	// Everything below is keyed off the anonymous cookie session.
	api.Use(middleware.EnsureSession)

	api.POST("/session", controllers.CreateSession)

	rooms := api.Group("/rooms")
	{
		rooms.POST("", controllers.CreateRoom(db, engine))
		rooms.POST("/join", controllers.JoinRoom(db, engine))
		rooms.GET("/code/:code", controllers.GetRoomByCode(engine))
		rooms.GET("/:room_id/state", controllers.GetGameState(engine))
	}

	// Durable row lookup goes through raw SQL, not the live store.
	if sqlDB, err := db.DB(); err == nil {
		roomInfoController := &controllers.RoomInfoController{DB: sqlDB}
		rooms.GET("/:room_id", roomInfoController.GetRoomInfo)
	}
}
