package repository

import (
	"context"

	"eduwatch_service/internal/watch/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository definition comment persistence
type CommentRepository interface {
	// Insert 寫入一則留言（根或回覆）
	Insert(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// FindRootsByVideo 撈出影片的根留言（最新在前）並帶上回覆
	FindRootsByVideo(ctx context.Context, videoID string, includeReplies bool) ([]domain.CommentWithReplies, error)
	// PushReply 把回覆 id 記到父留言的 reply_ids 尾端
	PushReply(ctx context.Context, parentID, replyID string) error
	// DeleteCascade 刪根留言連同底下所有回覆
	DeleteCascade(ctx context.Context, id string) error
	// DeleteReply 刪一則回覆並從父留言的 reply_ids 拔掉
	DeleteReply(ctx context.Context, parentID, replyID string) error
}

type commentRepository struct {
	coll *mongo.Collection
}

// NewMongoCommentRepository create a CommentRepository
func NewMongoCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{
		coll: db.Collection("video_comments"),
	}
}

func (r *commentRepository) Insert(ctx context.Context, comment *domain.Comment) error {
	_, err := r.coll.InsertOne(ctx, comment)
	return err
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindRootsByVideo 根留言按 created_at 降序；回覆順序以父留言的 reply_ids 為準，
// 不是回覆文件本身的時間（兩邊時鐘可能不一致）
func (r *commentRepository) FindRootsByVideo(ctx context.Context, videoID string, includeReplies bool) ([]domain.CommentWithReplies, error) {
	filter := bson.M{"video_id": videoID, "parent_id": bson.M{"$exists": false}}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var roots []domain.Comment
	if err := cur.All(ctx, &roots); err != nil {
		return nil, err
	}

	result := make([]domain.CommentWithReplies, 0, len(roots))
	for _, root := range roots {
		node := domain.CommentWithReplies{Comment: root}
		if includeReplies && len(root.ReplyIDs) > 0 {
			replyCur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": root.ReplyIDs}})
			if err != nil {
				return nil, err
			}
			var replies []domain.Comment
			if err := replyCur.All(ctx, &replies); err != nil {
				return nil, err
			}
			// 依 reply_ids 的順序重排
			byID := make(map[string]domain.Comment, len(replies))
			for _, rep := range replies {
				byID[rep.ID] = rep
			}
			for _, id := range root.ReplyIDs {
				if rep, ok := byID[id]; ok {
					node.Replies = append(node.Replies, rep)
				}
			}
		}
		result = append(result, node)
	}
	return result, nil
}

func (r *commentRepository) PushReply(ctx context.Context, parentID, replyID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{"$push": bson.M{"reply_ids": replyID}},
	)
	return err
}

func (r *commentRepository) DeleteCascade(ctx context.Context, id string) error {
	// 先刪回覆再刪根，順序反過來會找不到 reply_ids
	root, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if len(root.ReplyIDs) > 0 {
		if _, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": root.ReplyIDs}}); err != nil {
			return err
		}
	}
	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *commentRepository) DeleteReply(ctx context.Context, parentID, replyID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": replyID}); err != nil {
		return err
	}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{"$pull": bson.M{"reply_ids": replyID}},
	)
	return err
}
