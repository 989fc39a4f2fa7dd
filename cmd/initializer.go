package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"carmarket/internal/handlers"
	"carmarket/internal/models"
	"carmarket/internal/repositories"
	"carmarket/internal/services"
	"carmarket/utils"
)

// sessionStore is the slice of the user repository the middleware needs to
// honour refresh tokens.
type sessionStore interface {
	GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error)
}

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	tokens   *utils.TokenManager
	sessions sessionStore

	listingRepo    *repositories.ListingRepository
	savedRepo      *repositories.SavedListingRepository
	userHandler    *handlers.UserHandler
	listingHandler *handlers.ListingHandler
	savedHandler   *handlers.SavedListingHandler
	statsHandler   *handlers.StatsHandler
}

func initializeApp(db *sql.DB, redisClient *redis.Client, storage *utils.StorageClient, tokens *utils.TokenManager, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	listingRepo := repositories.ListingRepository{DB: db}
	savedRepo := repositories.SavedListingRepository{DB: db}

	// Services
	userService := &services.UserService{UserRepo: &userRepo, Tokens: tokens}
	listingService := &services.ListingService{ListingRepo: &listingRepo}
	savedService := &services.SavedListingService{SavedRepo: &savedRepo, ListingRepo: &listingRepo}
	statsService := &services.StatsService{
		ListingCounts: &listingRepo,
		SavedCounts:   &savedRepo,
		Redis:         redisClient,
	}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	listingHandler := &handlers.ListingHandler{Service: listingService, Stats: statsService, Storage: storage}
	savedHandler := &handlers.SavedListingHandler{Service: savedService}
	statsHandler := &handlers.StatsHandler{Service: statsService}

	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		db:             db,
		tokens:         tokens,
		sessions:       &userRepo,
		listingRepo:    &listingRepo,
		savedRepo:      &savedRepo,
		userHandler:    userHandler,
		listingHandler: listingHandler,
		savedHandler:   savedHandler,
		statsHandler:   statsHandler,
	}
}
