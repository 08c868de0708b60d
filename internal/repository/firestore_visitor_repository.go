package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/noah-isme/college-portal-api/internal/models"
)

// FirestoreVisitorRepository upserts visitor intake records into the hosted document store.
type FirestoreVisitorRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreVisitorRepository constructs the repository.
func NewFirestoreVisitorRepository(client *firestore.Client, collection string) *FirestoreVisitorRepository {
	if collection == "" {
		collection = "visitors"
	}
	return &FirestoreVisitorRepository{client: client, collection: collection}
}

// UpsertVisitor merges the record into the document keyed by device.
func (r *FirestoreVisitorRepository) UpsertVisitor(ctx context.Context, record models.VisitorRecord) error {
	if record.DeviceID == "" {
		return fmt.Errorf("upsert visitor: missing device id")
	}
	doc := visitorDocument(record)
	if _, err := r.client.Collection(r.collection).Doc(record.DeviceID).Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore upsert visitor %s: %w", record.DeviceID, err)
	}
	return nil
}

// Close releases the Firestore client.
func (r *FirestoreVisitorRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// visitorDocument builds map data because MergeAll rejects structs.
// Empty purpose is omitted so a resubmission without one keeps the stored value.
func visitorDocument(record models.VisitorRecord) map[string]interface{} {
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	doc := map[string]interface{}{
		"device_id":  record.DeviceID,
		"name":       record.Name,
		"phone":      record.Phone,
		"role":       string(models.RoleVisitor),
		"updated_at": updatedAt,
	}
	if record.PrincipalID != "" {
		doc["principal_id"] = record.PrincipalID
	}
	if record.Purpose != "" {
		doc["purpose"] = record.Purpose
	}
	return doc
}
