package databases

// go generate: mockery --name VisitorLogDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const visitorLogName = "visitorLogs"

// VisitorLogDatabase contains the methods to use with the visitor log database
type VisitorLogDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.VisitorLog, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VisitorLog, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type visitorLogDatabase struct {
	db DatabaseHelper
}

// NewVisitorLogDatabase initializes a new instance of visitor log database with the provided db connection
func NewVisitorLogDatabase(db DatabaseHelper) VisitorLogDatabase {
	return &visitorLogDatabase{
		db: db,
	}
}

func (v *visitorLogDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.VisitorLog, error) {
	visitorLog := &models.VisitorLog{}
	err := v.db.Collection(visitorLogName).FindOne(ctx, filter, opts...).Decode(&visitorLog)
	if err != nil {
		return nil, err
	}
	return visitorLog, nil
}

func (v *visitorLogDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.VisitorLog, error) {
	var visitorLogs []models.VisitorLog
	curr, err := v.db.Collection(visitorLogName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &visitorLogs)
	if err != nil {
		return nil, err
	}
	return visitorLogs, nil
}

func (v *visitorLogDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return v.db.Collection(visitorLogName).CountDocuments(ctx, filter, opts...)
}

func (v *visitorLogDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := v.db.Collection(visitorLogName).InsertOne(ctx, document, opts...)
	return res, err
}

func (v *visitorLogDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := v.db.Collection(visitorLogName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (v *visitorLogDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return v.db.Collection(visitorLogName).DeleteOne(ctx, filter, opts...)
}
