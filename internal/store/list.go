package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

// ListQuery describes one page of a list endpoint: a case-insensitive
// substring search over text fields plus exact-match filters. Soft-deleted
// documents are always excluded.
type ListQuery struct {
	Search       string
	SearchFields []string
	Filters      bson.M
	Projection   bson.M
	Page         utils.Page
}

// FindPage runs the shared list contract: count the matches, then fetch one
// page sorted by creation time descending. Results are decoded into results,
// which must be a pointer to a slice.
func FindPage(ctx context.Context, coll *mongo.Collection, q ListQuery, results interface{}) (int64, error) {
	filter := NotDeleted()

	if q.Search != "" && len(q.SearchFields) > 0 {
		regex := primitive.Regex{Pattern: q.Search, Options: "i"}
		or := make([]bson.M, 0, len(q.SearchFields))
		for _, field := range q.SearchFields {
			or = append(or, bson.M{field: bson.M{"$regex": regex}})
		}
		filter["$or"] = or
	}

	for k, v := range q.Filters {
		filter[k] = v
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}

	opts := options.Find().
		SetSkip(q.Page.Skip()).
		SetLimit(int64(q.Page.Limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		return 0, err
	}

	return total, nil
}
