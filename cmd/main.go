package main

import (
	"context"
	"log"
	"net/http"

	"drawspace/backend/internal/api/handler"
	"drawspace/backend/internal/auth"
	"drawspace/backend/internal/boardhub"
	"drawspace/backend/internal/config"
	"drawspace/backend/internal/models"
	"drawspace/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.DrawEvent{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting DrawSpace Backend...")

	cfg := config.Load()
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)
	authService := auth.NewService(cfg)

	// Relay wiring: registry holds the live connections, presence and
	// broadcast derive from it, the protocol handler ties everything to
	// the store and the verifier.
	registry := boardhub.NewRegistry()
	presence := boardhub.NewPresence(registry, s)
	bcast := boardhub.NewBroadcaster(registry)
	relay := boardhub.NewHandler(registry, presence, bcast, s, authService)

	r := gin.Default()
	h := handler.NewHandler(s, authService, registry, relay, cfg.JWT.InviteExpiresIn)

	// Public routes
	r.POST("/signup", h.SignUp)
	r.POST("/signin", h.SignIn)
	r.GET("/room/:slug", h.GetRoomBySlug)
	r.GET("/verify-invite/:token", h.VerifyInvite)
	r.POST("/join-room", h.JoinRoom)
	r.GET("/chats/:roomId", h.RoomChats)
	r.GET("/ws", h.ServeWebSocket)

	// Authenticated routes
	authed := r.Group("/", h.AuthRequired())
	authed.POST("/room", h.CreateRoom)
	authed.GET("/rooms", h.ListRooms)
	authed.GET("/myrooms", h.MyRooms)
	authed.DELETE("/rooms/:roomId", h.DeleteRoom)
	authed.GET("/users", h.ListUsers)
	authed.DELETE("/users/:userId", h.RemoveMember)
	authed.PUT("/room/:userId", h.UpdateMemberRole)
	authed.GET("/collaborators", h.Collaborators)
	authed.POST("/invite/:userId", h.CreateInvite)
	authed.GET("/user/profile", h.GetProfile)
	authed.PUT("/user/profile", h.UpdateProfile)
	authed.PUT("/user/password", h.UpdatePassword)
	authed.PUT("/user/avatar", h.UpdateAvatar)

	server := &http.Server{
		Addr:           cfg.Server.Addr,
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
