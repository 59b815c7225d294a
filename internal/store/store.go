// Package store holds the query policy shared by every entity collection:
// the soft-delete transition, natural-key uniqueness probes, all-or-nothing
// reference checks and the paginated list helper.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a conditional update or lookup matches no
// live document.
var ErrNotFound = mongo.ErrNoDocuments

// NotDeleted is the filter fragment excluding soft-deleted documents.
func NotDeleted() bson.M {
	return bson.M{"is_deleted.status": false}
}

// SoftDelete marks one live document deleted in a single conditional
// find-and-modify. The filter requires the document to still be live, so
// concurrent deletes of the same id race safely: exactly one caller matches,
// the other gets ErrNotFound. A repeated delete is an error, not a no-op.
func SoftDelete(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, by primitive.ObjectID) error {
	res := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted.status": false},
		bson.M{"$set": bson.M{
			"is_deleted.status":     true,
			"is_deleted.deleted_by": by,
			"is_deleted.deleted_at": time.Now(),
		}},
	)
	return res.Err()
}

// SoftDeleteMany applies the soft-delete transition to every live document
// in ids and reports how many matched.
func SoftDeleteMany(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID, by primitive.ObjectID) (int64, error) {
	res, err := coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "is_deleted.status": false},
		bson.M{"$set": bson.M{
			"is_deleted.status":     true,
			"is_deleted.deleted_by": by,
			"is_deleted.deleted_at": time.Now(),
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Exists reports whether any document matches the filter.
func Exists(ctx context.Context, coll *mongo.Collection, filter bson.M) (bool, error) {
	err := coll.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AllExist reports whether every referenced id resolves to a live document
// matching the extra filter. Partial matches count as total failure; the
// caller rejects the whole write.
func AllExist(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID, extra bson.M) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}

	distinct := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}

	filter := bson.M{"_id": bson.M{"$in": distinct}, "is_deleted.status": false}
	for k, v := range extra {
		filter[k] = v
	}

	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n == int64(len(distinct)), nil
}
