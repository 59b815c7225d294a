package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Expand declares one reference field to resolve into its related document.
// Nested expands resolve references inside the fetched related documents,
// which is how list endpoints build their 3-4 level deep responses without
// hand-written join queries per handler.
type Expand struct {
	Field      string
	Collection string
	Projection bson.M
	Nested     []Expand
}

// Populate resolves the declared reference fields in place. Scalar
// references become the related document (or nil when the reference is
// dangling); array references become arrays of related documents. One query
// is issued per spec per level, batched over all ids on the page.
func Populate(ctx context.Context, db *mongo.Database, docs []bson.M, specs []Expand) error {
	for _, spec := range specs {
		ids := collectIDs(docs, spec.Field)
		if len(ids) == 0 {
			continue
		}

		opts := options.Find()
		if spec.Projection != nil {
			opts.SetProjection(spec.Projection)
		}

		cursor, err := db.Collection(spec.Collection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
		if err != nil {
			return err
		}

		var related []bson.M
		if err := cursor.All(ctx, &related); err != nil {
			return err
		}

		if len(spec.Nested) > 0 {
			if err := Populate(ctx, db, related, spec.Nested); err != nil {
				return err
			}
		}

		byID := make(map[primitive.ObjectID]bson.M, len(related))
		for _, doc := range related {
			if id, ok := doc["_id"].(primitive.ObjectID); ok {
				byID[id] = doc
			}
		}

		for _, doc := range docs {
			switch v := doc[spec.Field].(type) {
			case primitive.ObjectID:
				if resolved, ok := byID[v]; ok {
					doc[spec.Field] = resolved
				} else {
					doc[spec.Field] = nil
				}
			case primitive.A:
				resolved := make([]interface{}, 0, len(v))
				for _, elem := range v {
					id, ok := elem.(primitive.ObjectID)
					if !ok {
						continue
					}
					if rel, ok := byID[id]; ok {
						resolved = append(resolved, rel)
					}
				}
				doc[spec.Field] = resolved
			}
		}
	}

	return nil
}

func collectIDs(docs []bson.M, field string) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(docs))

	add := func(id primitive.ObjectID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, doc := range docs {
		switch v := doc[field].(type) {
		case primitive.ObjectID:
			add(v)
		case primitive.A:
			for _, elem := range v {
				if id, ok := elem.(primitive.ObjectID); ok {
					add(id)
				}
			}
		}
	}

	return ids
}
