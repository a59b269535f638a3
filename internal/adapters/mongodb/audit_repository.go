package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/bacaxnot/finance-sub000/internal/core/domain"
	portsrepo "github.com/bacaxnot/finance-sub000/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const auditCollection = "audit_logs"

// AuditLog is the document stored for each domain event.
type AuditLog struct {
	ID          string         `bson:"_id"` // Event id, so redelivery cannot duplicate
	EventName   string         `bson:"event_name"`
	AggregateID string         `bson:"aggregate_id"`
	OccurredOn  time.Time      `bson:"occurred_on"`
	Payload     map[string]any `bson:"payload"`
	RecordedAt  time.Time      `bson:"recorded_at"`
}

// Inserter is the subset of *mongo.Collection the repository uses.
type Inserter interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

type AuditRepository struct {
	collection Inserter
}

func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	return &AuditRepository{collection: client.Database(dbName).Collection(auditCollection)}
}

func newAuditRepository(collection Inserter) *AuditRepository {
	return &AuditRepository{collection: collection}
}

var _ portsrepo.AuditRepository = (*AuditRepository)(nil)

func (r *AuditRepository) Save(ctx context.Context, entry domain.AuditEntry) error {
	doc := AuditLog{
		ID:          entry.EventID,
		EventName:   entry.EventName,
		AggregateID: entry.AggregateID,
		OccurredOn:  entry.OccurredOn,
		Payload:     entry.Payload,
		RecordedAt:  time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to insert audit log %s: %w", entry.EventID, err)
	}
	return nil
}
