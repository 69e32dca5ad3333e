package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 測試根留言冪等併入：REST 回應先進、廣播晚到同一筆不重複
func TestCommentTree_UpsertRootIdempotent(t *testing.T) {
	tree := NewCommentTree()

	c := Comment{ID: "c1", VideoID: "v1", Content: "first"}
	tree.UpsertRoot(c)
	tree.UpsertRoot(c) // 廣播回音

	assert.Equal(t, 1, tree.Len())
	roots := tree.Roots()
	assert.Equal(t, "c1", roots[0].ID)
}

// 測試根留言最新在前
func TestCommentTree_RootsNewestFirst(t *testing.T) {
	tree := NewCommentTree()

	tree.UpsertRoot(Comment{ID: "old", CreatedAt: 1})
	tree.UpsertRoot(Comment{ID: "new", CreatedAt: 2})

	roots := tree.Roots()
	assert.Equal(t, "new", roots[0].ID)
	assert.Equal(t, "old", roots[1].ID)
}

// 測試回覆依到達順序掛在各自的 parent 底下
func TestCommentTree_RepliesArrivalOrder(t *testing.T) {
	tree := NewCommentTree()

	tree.UpsertRoot(Comment{ID: "a"})
	tree.UpsertRoot(Comment{ID: "b"})

	tree.UpsertReply("a", Comment{ID: "r1", ParentID: "a"})
	tree.UpsertReply("b", Comment{ID: "r2", ParentID: "b"})
	tree.UpsertReply("a", Comment{ID: "r3", ParentID: "a"})
	tree.UpsertReply("a", Comment{ID: "r1", ParentID: "a"}) // 回音不重複

	roots := tree.Roots()
	// b 比較新在前
	assert.Equal(t, "b", roots[0].ID)
	assert.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "a", roots[1].ID)
	assert.Len(t, roots[1].Replies, 2)
	assert.Equal(t, "r1", roots[1].Replies[0].ID)
	assert.Equal(t, "r3", roots[1].Replies[1].ID)
}

// 測試 parent 不在樹上的回覆被靜默忽略
func TestCommentTree_ReplyUnknownParent(t *testing.T) {
	tree := NewCommentTree()

	tree.UpsertReply("ghost", Comment{ID: "r1", ParentID: "ghost"})
	assert.Equal(t, 0, tree.Len())
}

// 測試刪除只動被點名的節點
func TestCommentTree_Remove(t *testing.T) {
	tree := NewCommentTree()

	tree.UpsertRoot(Comment{ID: "a"})
	tree.UpsertReply("a", Comment{ID: "r1", ParentID: "a"})
	tree.UpsertReply("a", Comment{ID: "r2", ParentID: "a"})

	tree.RemoveReply("a", "r1")
	roots := tree.Roots()
	assert.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "r2", roots[0].Replies[0].ID)

	tree.RemoveRoot("a")
	assert.Equal(t, 0, tree.Len())

	// 再刪一次無害
	tree.RemoveRoot("a")
	assert.Equal(t, 0, tree.Len())
}

// 測試載入快照後仍可冪等併入
func TestCommentTree_LoadSnapshot(t *testing.T) {
	tree := NewCommentTree()

	snapshot := []CommentWithReplies{
		{Comment: Comment{ID: "b", CreatedAt: 2}, Replies: []Comment{{ID: "r1", ParentID: "b"}}},
		{Comment: Comment{ID: "a", CreatedAt: 1}},
	}
	tree.LoadSnapshot(snapshot)

	assert.Equal(t, 2, tree.Len())

	// 快照裡已有的再收到一次廣播不重複
	tree.UpsertRoot(Comment{ID: "a", CreatedAt: 1})
	tree.UpsertReply("b", Comment{ID: "r1", ParentID: "b"})

	roots := tree.Roots()
	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, "b", roots[0].ID)
	assert.Len(t, roots[0].Replies, 1)
}
