package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

const auditCollection = "prediction_audit"

// PredictionAuditRepository implements ports.PredictionAuditor with an
// append-only MongoDB collection.
type PredictionAuditRepository struct {
	coll *mongo.Collection
}

var _ ports.PredictionAuditor = (*PredictionAuditRepository)(nil)

func NewPredictionAuditRepository(db *mongo.Database) *PredictionAuditRepository {
	return &PredictionAuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the lookup indexes of the audit collection.
func (r *PredictionAuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "prediction_id", Value: 1}}},
		{Keys: bson.D{{Key: "text_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

// Record appends one audit document.
func (r *PredictionAuditRepository) Record(ctx context.Context, a domain.PredictionAudit) error {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	doc := bson.M{
		"prediction_id": a.PredictionID,
		"text_id":       a.TextID,
		"user_id":       a.UserID,
		"label":         a.Label,
		"probability":   a.Probability,
		"model_version": a.ModelVersion,
		"latency_ms":    float64(a.Latency.Microseconds()) / 1000,
		"created_at":    createdAt.UTC(),
	}
	if a.RequestID != "" {
		doc["request_id"] = a.RequestID
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert prediction audit: %w", err)
	}
	return nil
}

// Recent returns the newest audit records of a text, newest first.
func (r *PredictionAuditRepository) Recent(ctx context.Context, textID int64, limit int64) ([]domain.PredictionAudit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{"text_id": textID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find prediction audit: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.PredictionAudit
	for cur.Next(ctx) {
		var doc struct {
			PredictionID int64     `bson:"prediction_id"`
			TextID       int64     `bson:"text_id"`
			UserID       int64     `bson:"user_id"`
			Label        string    `bson:"label"`
			Probability  float64   `bson:"probability"`
			ModelVersion string    `bson:"model_version"`
			LatencyMS    float64   `bson:"latency_ms"`
			RequestID    string    `bson:"request_id"`
			CreatedAt    time.Time `bson:"created_at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode prediction audit: %w", err)
		}
		out = append(out, domain.PredictionAudit{
			PredictionID: doc.PredictionID,
			TextID:       doc.TextID,
			UserID:       doc.UserID,
			Label:        doc.Label,
			Probability:  doc.Probability,
			ModelVersion: doc.ModelVersion,
			Latency:      time.Duration(doc.LatencyMS * float64(time.Millisecond)),
			RequestID:    doc.RequestID,
			CreatedAt:    doc.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate prediction audit: %w", err)
	}
	return out, nil
}
