package repository

import (
	"context"

	"eduwatch_service/internal/watch/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NoteRepository definition note persistence
type NoteRepository interface {
	Insert(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	// FindByOwner 撈出擁有者的筆記，videoID 非空時只撈該影片的
	FindByOwner(ctx context.Context, ownerID, videoID string) ([]domain.Note, error)
	// Update 覆寫整份 spans（筆記內容以前端整段送回為準）
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
}

type noteRepository struct {
	coll *mongo.Collection
}

// NewMongoNoteRepository create a NoteRepository
func NewMongoNoteRepository(db *mongo.Database) NoteRepository {
	return &noteRepository{
		coll: db.Collection("member_notes"),
	}
}

func (r *noteRepository) Insert(ctx context.Context, note *domain.Note) error {
	_, err := r.coll.InsertOne(ctx, note)
	return err
}

func (r *noteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	var n domain.Note
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noteRepository) FindByOwner(ctx context.Context, ownerID, videoID string) ([]domain.Note, error) {
	filter := bson.M{"owner_id": ownerID}
	if videoID != "" {
		filter["video_id"] = videoID
	}
	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var notes []domain.Note
	if err := cur.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": note.ID, "owner_id": note.OwnerID},
		bson.M{"$set": bson.M{"spans": note.Spans, "updated_at": note.UpdatedAt}},
	)
	return err
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
