package purchaseRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"comoencasa/database"
	"comoencasa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPurchaseRepo is the MongoDB implementation of PurchaseRepository.
type MongoPurchaseRepo struct {
	coll *mongo.Collection
}

// NewMongoPurchaseRepo constructs a purchase repository over the shared client.
func NewMongoPurchaseRepo() *MongoPurchaseRepo {
	repo := &MongoPurchaseRepo{
		coll: database.DB().Collection("purchases"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("purchase repo: %v", err)
	}
	return repo
}

// Create inserts a purchase document, relying on the unique
// checkout_session_id index as the idempotency barrier.
func (r *MongoPurchaseRepo) Create(ctx context.Context, purchase *models.Purchase) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	purchase.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, purchase)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateCheckoutSession
	}
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// GetByCheckoutSessionID retrieves a purchase by its checkout session ID.
func (r *MongoPurchaseRepo) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var purchase models.Purchase
	err := r.coll.FindOne(ctx, bson.M{"checkout_session_id": sessionID}).Decode(&purchase)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchase for session %s: %w", sessionID, err)
	}
	return &purchase, nil
}

// UpdateProvider rewrites the assigned provider on a purchase document.
func (r *MongoPurchaseRepo) UpdateProvider(ctx context.Context, id, providerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"provider_id": providerID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update provider on purchase %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser retrieves a user's purchases, newest first.
func (r *MongoPurchaseRepo) ListByUser(ctx context.Context, userID string) ([]models.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var purchases []models.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("failed to decode purchases: %w", err)
	}
	return purchases, nil
}

// ensureIndexes creates the unique idempotency index.
func (r *MongoPurchaseRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "checkout_session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
