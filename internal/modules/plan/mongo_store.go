// README: Plan store backed by MongoDB; one document per plan in the "plans" collection.
package plan

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "plans"

type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName), now: time.Now}
}

// EnsureIndexes creates the unique slug index and the listing indexes. Safe to call repeatedly.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "destination", Value: 1}, {Key: "days", Value: 1}}},
		{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "isFeatured", Value: 1}}},
		{Keys: bson.D{{Key: "highlights.category", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create plan indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByIdentity(ctx context.Context, destination string, days int) (*Plan, error) {
	filter := bson.M{
		"destination": literalRegex("^"+regexp.QuoteMeta(destination)+"$"),
		"days":        days,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	return s.findOne(ctx, filter, opts)
}

func (s *MongoStore) Create(ctx context.Context, p *Plan) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now().UTC().Truncate(time.Millisecond)
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := s.coll.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrConflict, p.Slug)
	}
	return err
}

func (s *MongoStore) GetBySlug(ctx context.Context, slug string) (*Plan, error) {
	p, err := s.findOne(ctx, bson.M{"slug": normalizeSlug(slug), "isPublished": true})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *MongoStore) ListRecent(ctx context.Context, limit int) ([]Plan, error) {
	return s.find(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, ClampLimit(limit, DefaultRecentLimit))
}

func (s *MongoStore) Search(ctx context.Context, f SearchFilter) ([]Plan, error) {
	filter := bson.M{"isPublished": true}
	if d := strings.TrimSpace(f.Destination); d != "" {
		filter["destination"] = literalRegex(regexp.QuoteMeta(d))
	}
	if f.Days > 0 {
		filter["days"] = f.Days
	}
	return s.find(ctx, filter, bson.D{{Key: "createdAt", Value: -1}}, ClampLimit(f.Limit, MaxSearchLimit))
}

func (s *MongoStore) ListFeatured(ctx context.Context, limit int) ([]Plan, error) {
	filter := bson.M{"isPublished": true, "isFeatured": true}
	return s.find(ctx, filter, bson.D{{Key: "createdAt", Value: -1}}, ClampLimit(limit, DefaultListLimit))
}

func (s *MongoStore) ListPopular(ctx context.Context, limit int) ([]Plan, error) {
	sort := bson.D{{Key: "views", Value: -1}, {Key: "createdAt", Value: -1}}
	return s.find(ctx, bson.M{"isPublished": true}, sort, ClampLimit(limit, DefaultListLimit))
}

func (s *MongoStore) IncrementViews(ctx context.Context, slug string) (*Plan, error) {
	return s.increment(ctx, "views", slug)
}

func (s *MongoStore) IncrementShares(ctx context.Context, slug string) (*Plan, error) {
	return s.increment(ctx, "shares", slug)
}

func (s *MongoStore) increment(ctx context.Context, field, slug string) (*Plan, error) {
	update := bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updatedAt": s.now().UTC().Truncate(time.Millisecond)},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p Plan
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"slug": normalizeSlug(slug)}, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoStore) findOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (*Plan, error) {
	var p Plan
	err := s.coll.FindOne(ctx, filter, opts...).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoStore) find(ctx context.Context, filter any, sort bson.D, limit int) ([]Plan, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(sort).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	plans := []Plan{}
	if err := cur.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// literalRegex builds a case-insensitive pattern; callers quote user input first.
func literalRegex(pattern string) primitive.Regex {
	return primitive.Regex{Pattern: pattern, Options: "i"}
}
