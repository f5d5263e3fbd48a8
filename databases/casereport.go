package databases

// go generate: mockery --name CaseReportDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const caseReportName = "caseReports"

// CaseReportDatabase contains the methods to use with the case report database
type CaseReportDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.CaseReport, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.CaseReport, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type caseReportDatabase struct {
	db DatabaseHelper
}

// NewCaseReportDatabase initializes a new instance of case report database with the provided db connection
func NewCaseReportDatabase(db DatabaseHelper) CaseReportDatabase {
	return &caseReportDatabase{
		db: db,
	}
}

func (c *caseReportDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.CaseReport, error) {
	caseReport := &models.CaseReport{}
	err := c.db.Collection(caseReportName).FindOne(ctx, filter, opts...).Decode(&caseReport)
	if err != nil {
		return nil, err
	}
	return caseReport, nil
}

func (c *caseReportDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.CaseReport, error) {
	var caseReports []models.CaseReport
	curr, err := c.db.Collection(caseReportName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &caseReports)
	if err != nil {
		return nil, err
	}
	return caseReports, nil
}

func (c *caseReportDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(caseReportName).CountDocuments(ctx, filter, opts...)
}

func (c *caseReportDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(caseReportName).InsertOne(ctx, document, opts...)
	return res, err
}

func (c *caseReportDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(caseReportName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *caseReportDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(caseReportName).DeleteOne(ctx, filter, opts...)
}
