// File: database/repository/directory/interface.go
package directoryRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"mindhaven/models"
)

// DirectoryRepository resolves party ids to profile data. Identity and profile
// management live elsewhere in the platform; this is a read-only boundary.
type DirectoryRepository interface {
	ResolveTherapist(ctx context.Context, therapistID string) (*models.TherapistProfile, error)
	ResolveClient(ctx context.Context, clientID string) (*models.ClientProfile, error)
}

type mongoDirectoryRepo struct {
	therapists *mongo.Collection
	users      *mongo.Collection
}

// NewMongoDirectoryRepo constructs a MongoDB DirectoryRepository.
func NewMongoDirectoryRepo(db *mongo.Database) DirectoryRepository {
	return &mongoDirectoryRepo{
		therapists: db.Collection("therapist_profiles"),
		users:      db.Collection("users"),
	}
}
