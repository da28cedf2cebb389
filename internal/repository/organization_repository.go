package repository

import (
	"context"

	"oneasy-portal/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	OrganizationCollection = "organizations"
	DirectorCollection     = "directors"
)

type OrganizationRepository struct {
	orgs      *mongo.Collection
	directors *mongo.Collection
}

func NewOrganizationRepository(db *mongo.Database) *OrganizationRepository {
	return &OrganizationRepository{
		orgs:      db.Collection(OrganizationCollection),
		directors: db.Collection(DirectorCollection),
	}
}

func (r *OrganizationRepository) InsertOrganization(ctx context.Context, o *models.Organization) error {
	if o.ID.IsZero() {
		o.ID = bson.NewObjectID()
	}
	_, err := r.orgs.InsertOne(ctx, o)
	return mapErr(err)
}

func (r *OrganizationRepository) InsertDirector(ctx context.Context, d *models.Director) error {
	if d.ID.IsZero() {
		d.ID = bson.NewObjectID()
	}
	_, err := r.directors.InsertOne(ctx, d)
	return mapErr(err)
}

func (r *OrganizationRepository) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	cur, err := r.orgs.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Organization{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrganizationRepository) ListDirectors(ctx context.Context) ([]models.Director, error) {
	cur, err := r.directors.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Director{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
