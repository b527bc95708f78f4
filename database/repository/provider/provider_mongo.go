package providerRepo

import (
	"context"
	"log"
	"time"

	"comoencasa/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProviderRepo is the MongoDB implementation of ProviderRepository.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a provider repository over the shared client.
func NewMongoProviderRepo() *MongoProviderRepo {
	repo := &MongoProviderRepo{
		coll: database.DB().Collection("therapists"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("provider repo: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
