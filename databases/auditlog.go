package databases

// go generate: mockery --name AuditLogDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/models"
)

const auditLogName = "auditLogs"

// AuditLogDatabase contains the methods to use with the audit log database.
// The collection is append-only so no update or delete methods exist.
type AuditLogDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.AuditLog, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type auditLogDatabase struct {
	db DatabaseHelper
}

// NewAuditLogDatabase initializes a new instance of audit log database with the provided db connection
func NewAuditLogDatabase(db DatabaseHelper) AuditLogDatabase {
	return &auditLogDatabase{
		db: db,
	}
}

func (a *auditLogDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.AuditLog, error) {
	var auditLogs []models.AuditLog
	curr, err := a.db.Collection(auditLogName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &auditLogs)
	if err != nil {
		return nil, err
	}
	return auditLogs, nil
}

func (a *auditLogDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := a.db.Collection(auditLogName).InsertOne(ctx, document, opts...)
	return res, err
}
