package availabilityRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"comoencasa/database"
	"comoencasa/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAvailabilityRepo is the MongoDB implementation of AvailabilityRepository.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs an availability repository.
func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	repo := &MongoAvailabilityRepo{
		coll: database.DB().Collection("weekly_availability"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("availability repo: %v", err)
	}
	return repo
}

// WindowsForProvider retrieves every weekly window of one provider.
func (r *MongoAvailabilityRepo) WindowsForProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch windows for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode availability windows: %w", err)
	}
	return windows, nil
}

// WindowsForWeekday retrieves all providers' windows for one weekday.
func (r *MongoAvailabilityRepo) WindowsForWeekday(ctx context.Context, weekday int) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"weekday": weekday})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch windows for weekday %d: %w", weekday, err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode availability windows: %w", err)
	}
	return windows, nil
}

// ReplaceForProvider deletes the provider's current schedule and inserts the
// new one. Mirrors how the dashboard edits schedules: full replacement, no
// per-window diffing.
func (r *MongoAvailabilityRepo) ReplaceForProvider(ctx context.Context, providerID string, windows []models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"provider_id": providerID}); err != nil {
		return fmt.Errorf("failed to clear schedule for provider %s: %w", providerID, err)
	}
	if len(windows) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(windows))
	for i := range windows {
		windows[i].ProviderID = providerID
		if windows[i].ID == "" {
			windows[i].ID = uuid.New().String()
		}
		docs = append(docs, windows[i])
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert schedule for provider %s: %w", providerID, err)
	}
	return nil
}
