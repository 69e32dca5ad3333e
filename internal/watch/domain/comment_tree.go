package domain

import "sync"

// CommentTree 單一觀看 session 的留言樹
// REST 回應與房間廣播的 echo 不保證先後順序，所以所有寫入都以
// server 配發的 id 為 key 做冪等合併，不能依賴 slice 位置
type CommentTree struct {
	mu      sync.Mutex
	order   []string            // 根留言 id，最新在前
	roots   map[string]*Comment
	replies map[string][]Comment // parentID -> 依到達順序
}

// NewCommentTree create CommentTree
func NewCommentTree() *CommentTree {
	return &CommentTree{
		roots:   make(map[string]*Comment),
		replies: make(map[string][]Comment),
	}
}

// LoadSnapshot 載入初始快照（已是最新在前、回覆已排序）
func (t *CommentTree) LoadSnapshot(snapshot []CommentWithReplies) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, cw := range snapshot {
		if _, ok := t.roots[cw.ID]; ok {
			continue
		}
		c := cw.Comment
		t.roots[c.ID] = &c
		t.order = append(t.order, c.ID)
		for _, r := range cw.Replies {
			t.appendReplyLocked(c.ID, r)
		}
	}
}

// UpsertRoot 冪等插入根留言，新留言放最前面
// 收到自己廣播的 echo 時（同 id）不會重複
func (t *CommentTree) UpsertRoot(c Comment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.roots[c.ID]; ok {
		return
	}
	t.roots[c.ID] = &c
	t.order = append([]string{c.ID}, t.order...)
}

// UpsertReply 冪等插入回覆，依到達順序 append 在 parent 底下
// parent 不在樹上（別的影片或已刪除）時安靜忽略
func (t *CommentTree) UpsertReply(parentID string, c Comment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.roots[parentID]; !ok {
		return
	}
	t.appendReplyLocked(parentID, c)
}

func (t *CommentTree) appendReplyLocked(parentID string, c Comment) {
	for _, r := range t.replies[parentID] {
		if r.ID == c.ID {
			return
		}
	}
	t.replies[parentID] = append(t.replies[parentID], c)
}

// RemoveRoot 只移除被點名的節點本身，回覆的級聯刪除是 server 的事
func (t *CommentTree) RemoveRoot(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.roots[id]; !ok {
		return
	}
	delete(t.roots, id)
	delete(t.replies, id)
	for i, rid := range t.order {
		if rid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// RemoveReply remove one reply under parent
func (t *CommentTree) RemoveReply(parentID, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rs := t.replies[parentID]
	for i, r := range rs {
		if r.ID == id {
			t.replies[parentID] = append(rs[:i], rs[i+1:]...)
			return
		}
	}
}

// Roots 目前的樹（根留言最新在前，回覆依到達順序）
func (t *CommentTree) Roots() []CommentWithReplies {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]CommentWithReplies, 0, len(t.order))
	for _, id := range t.order {
		c := t.roots[id]
		cw := CommentWithReplies{Comment: *c}
		cw.Replies = append(cw.Replies, t.replies[id]...)
		out = append(out, cw)
	}
	return out
}

// Len root comment count
func (t *CommentTree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}
