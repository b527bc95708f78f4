package appointmentRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"comoencasa/database"
	"comoencasa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo is the MongoDB implementation of AppointmentRepository.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs an appointment repository.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	repo := &MongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("appointment repo: %v", err)
	}
	return repo
}

// Create inserts an appointment document. The unique (provider_id, start_at)
// index is the storage-level double-booking guard: no in-process lock is
// involved, so it holds across concurrent workers.
func (r *MongoAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	appointment.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, appointment)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// StartingAt retrieves all appointments whose start timestamp equals startAt
// exactly. This is deliberately NOT an interval-overlap query; see the
// occupancy notes on models.Appointment.
func (r *MongoAppointmentRepo) StartingAt(ctx context.Context, startAt time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"start_at": startAt})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments at %s: %w", startAt, err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// InRange retrieves appointments with start_at in [from, to).
func (r *MongoAppointmentRepo) InRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"start_at": bson.M{"$gte": from, "$lt": to}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments in range: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// GetByPurchaseID retrieves the appointment provisioned for a purchase.
func (r *MongoAppointmentRepo) GetByPurchaseID(ctx context.Context, purchaseID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"purchase_id": purchaseID}).Decode(&appointment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment for purchase %s: %w", purchaseID, err)
	}
	return &appointment, nil
}
