package databases

// go generate: mockery --name InmateReportDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const inmateReportName = "inmateReports"

// InmateReportDatabase contains the methods to use with the inmate report database
type InmateReportDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.InmateReport, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InmateReport, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type inmateReportDatabase struct {
	db DatabaseHelper
}

// NewInmateReportDatabase initializes a new instance of inmate report database with the provided db connection
func NewInmateReportDatabase(db DatabaseHelper) InmateReportDatabase {
	return &inmateReportDatabase{
		db: db,
	}
}

func (i *inmateReportDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.InmateReport, error) {
	inmateReport := &models.InmateReport{}
	err := i.db.Collection(inmateReportName).FindOne(ctx, filter, opts...).Decode(&inmateReport)
	if err != nil {
		return nil, err
	}
	return inmateReport, nil
}

func (i *inmateReportDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InmateReport, error) {
	var inmateReports []models.InmateReport
	curr, err := i.db.Collection(inmateReportName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &inmateReports)
	if err != nil {
		return nil, err
	}
	return inmateReports, nil
}

func (i *inmateReportDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return i.db.Collection(inmateReportName).CountDocuments(ctx, filter, opts...)
}

func (i *inmateReportDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := i.db.Collection(inmateReportName).InsertOne(ctx, document, opts...)
	return res, err
}

func (i *inmateReportDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := i.db.Collection(inmateReportName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (i *inmateReportDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return i.db.Collection(inmateReportName).DeleteOne(ctx, filter, opts...)
}
