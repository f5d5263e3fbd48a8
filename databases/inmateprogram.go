package databases

// go generate: mockery --name InmateProgramDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const inmateProgramName = "inmatePrograms"

// InmateProgramDatabase contains the methods to use with the inmate program database
type InmateProgramDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.InmateProgram, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InmateProgram, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type inmateProgramDatabase struct {
	db DatabaseHelper
}

// NewInmateProgramDatabase initializes a new instance of inmate program database with the provided db connection
func NewInmateProgramDatabase(db DatabaseHelper) InmateProgramDatabase {
	return &inmateProgramDatabase{
		db: db,
	}
}

func (i *inmateProgramDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.InmateProgram, error) {
	inmateProgram := &models.InmateProgram{}
	err := i.db.Collection(inmateProgramName).FindOne(ctx, filter, opts...).Decode(&inmateProgram)
	if err != nil {
		return nil, err
	}
	return inmateProgram, nil
}

func (i *inmateProgramDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InmateProgram, error) {
	var inmatePrograms []models.InmateProgram
	curr, err := i.db.Collection(inmateProgramName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &inmatePrograms)
	if err != nil {
		return nil, err
	}
	return inmatePrograms, nil
}

func (i *inmateProgramDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return i.db.Collection(inmateProgramName).CountDocuments(ctx, filter, opts...)
}

func (i *inmateProgramDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := i.db.Collection(inmateProgramName).InsertOne(ctx, document, opts...)
	return res, err
}

func (i *inmateProgramDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := i.db.Collection(inmateProgramName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (i *inmateProgramDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return i.db.Collection(inmateProgramName).DeleteOne(ctx, filter, opts...)
}
