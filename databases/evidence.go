package databases

// go generate: mockery --name EvidenceDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const evidenceName = "evidence"

// EvidenceDatabase contains the methods to use with the evidence database
type EvidenceDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Evidence, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Evidence, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type evidenceDatabase struct {
	db DatabaseHelper
}

// NewEvidenceDatabase initializes a new instance of evidence database with the provided db connection
func NewEvidenceDatabase(db DatabaseHelper) EvidenceDatabase {
	return &evidenceDatabase{
		db: db,
	}
}

func (e *evidenceDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Evidence, error) {
	evidence := &models.Evidence{}
	err := e.db.Collection(evidenceName).FindOne(ctx, filter, opts...).Decode(&evidence)
	if err != nil {
		return nil, err
	}
	return evidence, nil
}

func (e *evidenceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Evidence, error) {
	var evidenceItems []models.Evidence
	curr, err := e.db.Collection(evidenceName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &evidenceItems)
	if err != nil {
		return nil, err
	}
	return evidenceItems, nil
}

func (e *evidenceDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return e.db.Collection(evidenceName).CountDocuments(ctx, filter, opts...)
}

func (e *evidenceDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := e.db.Collection(evidenceName).InsertOne(ctx, document, opts...)
	return res, err
}

func (e *evidenceDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := e.db.Collection(evidenceName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (e *evidenceDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return e.db.Collection(evidenceName).DeleteOne(ctx, filter, opts...)
}
