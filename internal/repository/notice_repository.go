package repository

import (
	"context"

	"oneasy-portal/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const NoticeCollection = "notices"

type NoticeRepository struct {
	col *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{col: db.Collection(NoticeCollection)}
}

func (r *NoticeRepository) Insert(ctx context.Context, n *models.Notice) error {
	if n.ID.IsZero() {
		n.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, n)
	return mapErr(err)
}

func (r *NoticeRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Notice, error) {
	var n models.Notice
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func (r *NoticeRepository) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Notice, error) {
	var n models.Notice
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func (r *NoticeRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every notice, newest first.
func (r *NoticeRepository) ListAll(ctx context.Context) ([]models.Notice, error) {
	return r.find(ctx, bson.M{})
}

// ListForClient returns global notices plus those targeted at clientID.
func (r *NoticeRepository) ListForClient(ctx context.Context, clientID bson.ObjectID) ([]models.Notice, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"client_id": nil},
		bson.M{"client_id": clientID},
	}})
}

func (r *NoticeRepository) find(ctx context.Context, filter bson.M) ([]models.Notice, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	notices := []models.Notice{}
	if err := cur.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}
