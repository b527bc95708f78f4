package userRepo

import (
	"context"
	"log"
	"time"

	"comoencasa/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepo is the MongoDB implementation of UserRepository.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a user repository over the shared client.
func NewMongoUserRepo() *MongoUserRepo {
	repo := &MongoUserRepo{
		coll: database.DB().Collection("users"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("user repo: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
