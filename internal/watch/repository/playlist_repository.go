package repository

import (
	"context"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/pkg"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PlaylistRepository definition playlist persistence
type PlaylistRepository interface {
	Insert(ctx context.Context, playlist *domain.Playlist) error
	FindByID(ctx context.Context, id string) (*domain.Playlist, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error)
	// AddVideo 把影片加進清單，已存在時 no-op
	AddVideo(ctx context.Context, playlistID, videoID string, updatedAt int64) error
	RemoveVideo(ctx context.Context, playlistID, videoID string, updatedAt int64) error
	Delete(ctx context.Context, id string) error
}

type playlistRepository struct {
	coll *mongo.Collection
}

// NewMongoPlaylistRepository create a PlaylistRepository
func NewMongoPlaylistRepository(db *mongo.Database) PlaylistRepository {
	return &playlistRepository{
		coll: db.Collection("member_playlists"),
	}
}

func (r *playlistRepository) Insert(ctx context.Context, playlist *domain.Playlist) error {
	_, err := r.coll.InsertOne(ctx, playlist)
	return err
}

func (r *playlistRepository) FindByID(ctx context.Context, id string) (*domain.Playlist, error) {
	var p domain.Playlist
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *playlistRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	var playlists []domain.Playlist
	if err := cur.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID string, updatedAt int64) error {
	p, err := r.FindByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if pkg.Contains(p.VideoIDs, videoID) {
		return nil
	}
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": playlistID},
		bson.M{
			"$push": bson.M{"video_ids": videoID},
			"$set":  bson.M{"updated_at": updatedAt},
		},
	)
	return err
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string, updatedAt int64) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": playlistID},
		bson.M{
			"$pull": bson.M{"video_ids": videoID},
			"$set":  bson.M{"updated_at": updatedAt},
		},
	)
	return err
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
