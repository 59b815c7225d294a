package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCollectIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	docs := []bson.M{
		{"teacher": a},
		{"teacher": a},
		{"teacher": b, "attendees": primitive.A{c, a, "garbage"}},
		{"other": c},
	}

	ids := collectIDs(docs, "teacher")
	assert.ElementsMatch(t, []primitive.ObjectID{a, b}, ids)

	ids = collectIDs(docs, "attendees")
	assert.ElementsMatch(t, []primitive.ObjectID{a, c}, ids)

	assert.Empty(t, collectIDs(docs, "missing"))
}

func TestNotDeleted(t *testing.T) {
	assert.Equal(t, bson.M{"is_deleted.status": false}, NotDeleted())
}
