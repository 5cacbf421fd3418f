package databases

// go generate: mockery --name NoteDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ashik756/eclass-hub/models"
)

const noteName = "notes"

// NoteDatabase contains the methods to use with the note database
type NoteDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Note, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Note, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type noteDatabase struct {
	db DatabaseHelper
}

// NewNoteDatabase initializes a new instance of note database with the provided db connection
func NewNoteDatabase(db DatabaseHelper) NoteDatabase {
	return &noteDatabase{
		db: db,
	}
}

func (n *noteDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Note, error) {
	note := &models.Note{}
	err := n.db.Collection(noteName).FindOne(ctx, filter, opts...).Decode(&note)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (n *noteDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Note, error) {
	var notes []models.Note
	curr := n.db.Collection(noteName).Find(ctx, filter, opts...)
	err := curr.All(ctx, &notes)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (n *noteDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res := n.db.Collection(noteName).InsertOne(ctx, document, opts...)
	return res, nil
}

func (n *noteDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return n.db.Collection(noteName).DeleteOne(ctx, filter, opts...)
}
