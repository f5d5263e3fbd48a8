package databases

// go generate: mockery --name ReleaseDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const releaseName = "releases"

// ReleaseDatabase contains the methods to use with the release database
type ReleaseDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Release, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Release, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type releaseDatabase struct {
	db DatabaseHelper
}

// NewReleaseDatabase initializes a new instance of release database with the provided db connection
func NewReleaseDatabase(db DatabaseHelper) ReleaseDatabase {
	return &releaseDatabase{
		db: db,
	}
}

func (r *releaseDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Release, error) {
	release := &models.Release{}
	err := r.db.Collection(releaseName).FindOne(ctx, filter, opts...).Decode(&release)
	if err != nil {
		return nil, err
	}
	return release, nil
}

func (r *releaseDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Release, error) {
	var releases []models.Release
	curr, err := r.db.Collection(releaseName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &releases)
	if err != nil {
		return nil, err
	}
	return releases, nil
}

func (r *releaseDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := r.db.Collection(releaseName).InsertOne(ctx, document, opts...)
	return res, err
}
