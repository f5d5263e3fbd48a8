package databases

// go generate: mockery --name InmateDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const inmateName = "inmates"

// InmateDatabase contains the methods to use with the inmate database
type InmateDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Inmate, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Inmate, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type inmateDatabase struct {
	db DatabaseHelper
}

// NewInmateDatabase initializes a new instance of inmate database with the provided db connection
func NewInmateDatabase(db DatabaseHelper) InmateDatabase {
	return &inmateDatabase{
		db: db,
	}
}

func (i *inmateDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Inmate, error) {
	inmate := &models.Inmate{}
	err := i.db.Collection(inmateName).FindOne(ctx, filter, opts...).Decode(&inmate)
	if err != nil {
		return nil, err
	}
	return inmate, nil
}

func (i *inmateDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Inmate, error) {
	var inmates []models.Inmate
	curr, err := i.db.Collection(inmateName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &inmates)
	if err != nil {
		return nil, err
	}
	return inmates, nil
}

func (i *inmateDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return i.db.Collection(inmateName).CountDocuments(ctx, filter, opts...)
}

func (i *inmateDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := i.db.Collection(inmateName).InsertOne(ctx, document, opts...)
	return res, err
}

func (i *inmateDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := i.db.Collection(inmateName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (i *inmateDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return i.db.Collection(inmateName).DeleteOne(ctx, filter, opts...)
}
