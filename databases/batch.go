package databases

// go generate: mockery --name BatchDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/models"
)

const batchName = "batches"

// BatchDatabase contains the methods to use with the batch database
type BatchDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Batch, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Batch, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type batchDatabase struct {
	db DatabaseHelper
}

// NewBatchDatabase initializes a new instance of batch database with the provided db connection
func NewBatchDatabase(db DatabaseHelper) BatchDatabase {
	return &batchDatabase{
		db: db,
	}
}

func (b *batchDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Batch, error) {
	batch := &models.Batch{}
	err := b.db.Collection(batchName).FindOne(ctx, filter, opts...).Decode(&batch)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (b *batchDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Batch, error) {
	var batches []models.Batch
	curr := b.db.Collection(batchName).Find(ctx, filter, opts...)
	err := curr.All(ctx, &batches)
	if err != nil {
		return nil, err
	}
	return batches, nil
}

func (b *batchDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res := b.db.Collection(batchName).InsertOne(ctx, document, opts...)
	return res, nil
}

func (b *batchDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := b.db.Collection(batchName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (b *batchDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return b.db.Collection(batchName).DeleteOne(ctx, filter, opts...)
}
