package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abhijith3110/Learning-Management-System/internal/models"
)

// Accounts resolves token subjects back to live admin records so the access
// gate never trusts stale claims.
type Accounts struct {
	collection *mongo.Collection
}

func NewAccounts(client *mongo.Client, dbName string) *Accounts {
	return &Accounts{collection: client.Database(dbName).Collection("admins")}
}

// FindActiveAdmin returns the admin only when it is neither soft-deleted nor
// inactive. ErrNotFound covers deleted, resigned and unknown accounts alike.
func (a *Accounts) FindActiveAdmin(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := a.collection.FindOne(ctx, bson.M{
		"_id":               id,
		"is_deleted.status": false,
		"status":            models.AdminActive,
	}).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
