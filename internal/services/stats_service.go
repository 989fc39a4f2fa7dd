package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"carmarket/internal/models"
)

const viewCounterTTL = 48 * time.Hour

type ListingCounter interface {
	CountByUserID(ctx context.Context, userID string) (int, error)
}

// StatsService backs the dashboard stat cards. View counters live in Redis
// keyed per owner per day; listing and saved counts come from the datastore.
type StatsService struct {
	ListingCounts ListingCounter
	SavedCounts   ListingCounter
	Redis         *redis.Client
}

func (s *StatsService) DashboardStats(ctx context.Context, userID string) (models.DashboardStats, error) {
	totalListings, err := s.ListingCounts.CountByUserID(ctx, userID)
	if err != nil {
		return models.DashboardStats{}, err
	}
	savedCars, err := s.SavedCounts.CountByUserID(ctx, userID)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return models.DashboardStats{
		TotalListings: totalListings,
		SavedCars:     savedCars,
		PendingSales:  0,
		ViewsToday:    s.ViewsToday(ctx, userID),
	}, nil
}

// RecordView bumps today's view counter for the listing owner. Failures are
// logged and swallowed; a lost view must never fail the detail request.
func (s *StatsService) RecordView(ctx context.Context, ownerID string) {
	if s.Redis == nil {
		return
	}
	key := viewsKey(ownerID, time.Now())
	pipe := s.Redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, viewCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("failed to record view for owner %s: %v", ownerID, err)
	}
}

func (s *StatsService) ViewsToday(ctx context.Context, ownerID string) int {
	if s.Redis == nil {
		return 0
	}
	views, err := s.Redis.Get(ctx, viewsKey(ownerID, time.Now())).Int()
	if err != nil {
		if err != redis.Nil {
			log.Printf("failed to read views for owner %s: %v", ownerID, err)
		}
		return 0
	}
	return views
}

func viewsKey(ownerID string, day time.Time) string {
	return fmt.Sprintf("views:owner:%s:%s", ownerID, day.Format("2006-01-02"))
}
