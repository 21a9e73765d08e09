package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoCollection holds one document per submission.
const MongoCollection = "contact_submissions"

type submissionDocument struct {
	ID          string    `bson:"_id"`
	FormID      string    `bson:"form_id"`
	FirstName   string    `bson:"first_name"`
	LastName    string    `bson:"last_name"`
	Email       string    `bson:"email"`
	Message     string    `bson:"message,omitempty"`
	SubmittedAt time.Time `bson:"submitted_at"`
}

// MongoRepository archives submissions as documents.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(MongoCollection)}
}

// EnsureIndexes creates the index used by List.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "submitted_at", Value: -1}},
	})
	return err
}

func (r *MongoRepository) Create(ctx context.Context, s Submission) error {
	doc := submissionDocument{
		ID:          s.ID.String(),
		FormID:      s.FormID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		Message:     s.Message,
		SubmittedAt: s.SubmittedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return errors.Join(ErrArchiveFailed, err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, limit int) ([]Submission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	var docs []submissionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	out := make([]Submission, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, errors.Join(ErrListFailed, err)
		}
		out = append(out, Submission{
			ID:          id,
			FormID:      d.FormID,
			FirstName:   d.FirstName,
			LastName:    d.LastName,
			Email:       d.Email,
			Message:     d.Message,
			SubmittedAt: d.SubmittedAt.UTC(),
		})
	}
	return out, nil
}
