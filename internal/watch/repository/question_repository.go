package repository

import (
	"context"

	"eduwatch_service/internal/watch/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionRepository definition Q&A persistence
type QuestionRepository interface {
	Insert(ctx context.Context, q *domain.Question) error
	FindByID(ctx context.Context, id string) (*domain.Question, error)
	// FindByVideo 撈出影片的提問（最新在前），回答順序照 answers 陣列
	FindByVideo(ctx context.Context, videoID string) ([]domain.Question, error)
	// PushAnswer append 一則回答到提問
	PushAnswer(ctx context.Context, questionID string, answer *domain.Answer) error
	Delete(ctx context.Context, id string) error
}

type questionRepository struct {
	coll *mongo.Collection
}

// NewMongoQuestionRepository create a QuestionRepository
func NewMongoQuestionRepository(db *mongo.Database) QuestionRepository {
	return &questionRepository{
		coll: db.Collection("video_questions"),
	}
}

func (r *questionRepository) Insert(ctx context.Context, q *domain.Question) error {
	_, err := r.coll.InsertOne(ctx, q)
	return err
}

func (r *questionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	var q domain.Question
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) FindByVideo(ctx context.Context, videoID string) ([]domain.Question, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, bson.M{"video_id": videoID}, opts)
	if err != nil {
		return nil, err
	}
	var questions []domain.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) PushAnswer(ctx context.Context, questionID string, answer *domain.Answer) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": questionID},
		bson.M{"$push": bson.M{"answers": answer}},
	)
	return err
}

func (r *questionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
