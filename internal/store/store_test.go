package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSoftDeleteSecondCallReturnsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("repeat delete is an error", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		by := primitive.NewObjectID()

		// First call matches the live document, second call finds nothing
		// because the filter requires is_deleted.status to still be false.
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: id}}}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
		)

		require.NoError(mt, SoftDelete(context.Background(), mt.Coll, id, by))

		err := SoftDelete(context.Background(), mt.Coll, id, by)
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestSoftDeleteManyReportsMatchedCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("only live documents match", func(mt *mtest.T) {
		ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 2},
		))

		matched, err := SoftDeleteMany(context.Background(), mt.Coll, ids, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), matched)
	})
}

func TestAllExistPartialMatchFails(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("one of two ids resolves", func(mt *mtest.T) {
		ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+mt.Coll.Name(), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int64(1)}},
		))

		ok, err := AllExist(context.Background(), mt.Coll, ids, nil)
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("duplicate ids count once", func(mt *mtest.T) {
		a := primitive.NewObjectID()
		b := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+mt.Coll.Name(), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int64(2)}},
		))

		ok, err := AllExist(context.Background(), mt.Coll, []primitive.ObjectID{a, a, b}, nil)
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("empty id list never passes", func(mt *mtest.T) {
		ok, err := AllExist(context.Background(), mt.Coll, nil, nil)
		require.NoError(mt, err)
		assert.False(mt, ok)
	})
}

func TestExists(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("match found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}},
		))

		ok, err := Exists(context.Background(), mt.Coll, bson.M{"email": "a@gmail.com"})
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("no match", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		ok, err := Exists(context.Background(), mt.Coll, bson.M{"email": "a@gmail.com"})
		require.NoError(mt, err)
		assert.False(mt, ok)
	})
}
