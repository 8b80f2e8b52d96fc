// File: database/repository/directory/directory.go
package directoryRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mindhaven/models"
)

func (r *mongoDirectoryRepo) ResolveTherapist(ctx context.Context, therapistID string) (*models.TherapistProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.TherapistProfile
	err := r.therapists.FindOne(ctx, bson.M{"user_id": therapistID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if profile.HourlyRate == 0 {
		profile.HourlyRate = 150.0
	}
	return &profile, nil
}

func (r *mongoDirectoryRepo) ResolveClient(ctx context.Context, clientID string) (*models.ClientProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.ClientProfile
	err := r.users.FindOne(ctx, bson.M{"user_id": clientID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
