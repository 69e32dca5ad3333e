package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/pkg/database"
	"eduwatch_service/pkg/logger"
	testtool "eduwatch_service/pkg/test_tool"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// **測試用的容器**
var mongoDB *database.MongoDB

// **TestMain 初始化測試環境**
func TestMain(m *testing.M) {
	ctx := context.Background()
	logger.SetNewNop()

	mongoContainer, mongoHost, mongoPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "mongo:latest",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	})
	if err != nil {
		log.Fatalf("❌ Failed to start MongoDB container: %v", err)
	}
	fmt.Printf("✅ MongoDB running at %s:%s\n", mongoHost, mongoPort)

	mongoDB, err = database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    fmt.Sprintf("mongodb://%s:%s", mongoHost, mongoPort),
		RetryCount:    5,
		RetryInterval: 5,
	}, "test_watch_db")
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}

	code := m.Run()

	mongoDB.Close(ctx)
	if err := mongoContainer.Terminate(ctx); err != nil {
		log.Printf("terminate mongo container err: %v", err)
	}
	os.Exit(code)
}

// 測試根留言最新在前、回覆照 reply_ids 順序
func TestCommentRepository_FindRootsByVideo(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoCommentRepository(mongoDB.Database)
	videoID := uuid.New().String()

	older := &domain.Comment{ID: uuid.New().String(), VideoID: videoID, Content: "older", CreatedAt: time.Now().Unix() - 10}
	newer := &domain.Comment{ID: uuid.New().String(), VideoID: videoID, Content: "newer", CreatedAt: time.Now().Unix()}
	assert.NoError(t, repo.Insert(ctx, older))
	assert.NoError(t, repo.Insert(ctx, newer))

	// 兩則回覆掛在 older 底下，順序照 push 的先後
	r1 := &domain.Comment{ID: uuid.New().String(), VideoID: videoID, ParentID: older.ID, Content: "first reply", CreatedAt: time.Now().Unix()}
	r2 := &domain.Comment{ID: uuid.New().String(), VideoID: videoID, ParentID: older.ID, Content: "second reply", CreatedAt: time.Now().Unix() - 5}
	assert.NoError(t, repo.Insert(ctx, r1))
	assert.NoError(t, repo.PushReply(ctx, older.ID, r1.ID))
	assert.NoError(t, repo.Insert(ctx, r2))
	assert.NoError(t, repo.PushReply(ctx, older.ID, r2.ID))

	roots, err := repo.FindRootsByVideo(ctx, videoID, true)
	assert.NoError(t, err)
	assert.Len(t, roots, 2)
	assert.Equal(t, newer.ID, roots[0].ID)
	assert.Equal(t, older.ID, roots[1].ID)

	// r2 的 created_at 較早，但到達順序在後，所以排第二
	assert.Len(t, roots[1].Replies, 2)
	assert.Equal(t, r1.ID, roots[1].Replies[0].ID)
	assert.Equal(t, r2.ID, roots[1].Replies[1].ID)
}

// 測試刪根留言連同回覆
func TestCommentRepository_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoCommentRepository(mongoDB.Database)
	videoID := uuid.New().String()

	root := &domain.Comment{ID: uuid.New().String(), VideoID: videoID, Content: "root", CreatedAt: time.Now().Unix()}
	assert.NoError(t, repo.Insert(ctx, root))

	reply := &domain.Comment{ID: uuid.New().String(), VideoID: videoID, ParentID: root.ID, Content: "reply", CreatedAt: time.Now().Unix()}
	assert.NoError(t, repo.Insert(ctx, reply))
	assert.NoError(t, repo.PushReply(ctx, root.ID, reply.ID))

	assert.NoError(t, repo.DeleteCascade(ctx, root.ID))

	_, err := repo.FindByID(ctx, root.ID)
	assert.Error(t, err)
	_, err = repo.FindByID(ctx, reply.ID)
	assert.Error(t, err)
}

// 測試刪回覆會從父留言的 reply_ids 拔掉
func TestCommentRepository_DeleteReply(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoCommentRepository(mongoDB.Database)
	videoID := uuid.New().String()

	root := &domain.Comment{ID: uuid.New().String(), VideoID: videoID, Content: "root", CreatedAt: time.Now().Unix()}
	assert.NoError(t, repo.Insert(ctx, root))

	reply := &domain.Comment{ID: uuid.New().String(), VideoID: videoID, ParentID: root.ID, Content: "reply", CreatedAt: time.Now().Unix()}
	assert.NoError(t, repo.Insert(ctx, reply))
	assert.NoError(t, repo.PushReply(ctx, root.ID, reply.ID))

	assert.NoError(t, repo.DeleteReply(ctx, root.ID, reply.ID))

	parent, err := repo.FindByID(ctx, root.ID)
	assert.NoError(t, err)
	assert.Empty(t, parent.ReplyIDs)
}
