package domain

import (
	"sync"
	"time"
)

// PendingReport 反悔期內的檢舉，commit 前不落地
type PendingReport struct {
	CommentID string
	Reason    string
	Timer     *time.Timer
}

// WatchSession 一個觀看視圖的 server 端狀態
// session 獨占持有階梯狀態、留言樹、節流時間與待 commit 的檢舉，
// 釋放後任何在途結果都會被丟棄
type WatchSession struct {
	ID       string
	MemberID string
	Video    *Video

	mu             sync.Mutex
	released       bool
	ladder         *SourceLadder
	tree           *CommentTree
	position       int
	positionAt     time.Time
	lastProgressAt time.Time
	pendingReport  *PendingReport
}

// NewWatchSession create WatchSession
func NewWatchSession(id, memberID string, video *Video) *WatchSession {
	return &WatchSession{
		ID:       id,
		MemberID: memberID,
		Video:    video,
		ladder:   NewSourceLadder(),
		tree:     NewCommentTree(),
	}
}

// Alive session 尚未釋放
func (s *WatchSession) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.released
}

// Release 釋放 session，只有第一次呼叫回傳 true
// 會停掉待 commit 的檢舉計時器
func (s *WatchSession) Release() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return false
	}
	s.released = true
	if s.pendingReport != nil && s.pendingReport.Timer != nil {
		s.pendingReport.Timer.Stop()
	}
	s.pendingReport = nil
	return true
}

// Tree session 留言樹
func (s *WatchSession) Tree() *CommentTree {
	return s.tree
}

// ResolveSource 目前狀態的播放來源
func (s *WatchSession) ResolveSource() PlaybackSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ladder.Resolve(s.Video)
}

// AdvanceSource 回報播放錯誤並升級來源，released 後 no-op
func (s *WatchSession) AdvanceSource() (PlaybackSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return PlaybackSource{State: SourceFailed}, ErrSourceExhausted
	}
	return s.ladder.Advance(s.Video)
}

// SourceState current ladder state
func (s *WatchSession) SourceState() PlaybackSourceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ladder.Current()
}

// SetPosition 更新播放位置，間隔內的更新被節流丟棄
// 回傳是否有套用
func (s *WatchSession) SetPosition(pos int, throttle time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return false
	}
	now := time.Now()
	if !s.positionAt.IsZero() && now.Sub(s.positionAt) < throttle {
		return false
	}
	s.position = pos
	s.positionAt = now
	return true
}

// Seek 直接跳到指定秒數（點 marker 的 seek 不受節流限制）
func (s *WatchSession) Seek(pos int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return false
	}
	s.position = pos
	s.positionAt = time.Now()
	return true
}

// Position current playback position
func (s *WatchSession) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// AllowProgress 固定間隔的進度回報閘門，間隔內的 ping 被丟棄
func (s *WatchSession) AllowProgress(cadence time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return false
	}
	now := time.Now()
	if !s.lastProgressAt.IsZero() && now.Sub(s.lastProgressAt) < cadence {
		return false
	}
	s.lastProgressAt = now
	return true
}

// SchedulePendingReport 掛上待 commit 的檢舉並啟動反悔期計時器
// 一個 session 同時只追蹤一筆，時間到才呼叫 fire
func (s *WatchSession) SchedulePendingReport(commentID, reason string, grace time.Duration, fire func(p *PendingReport)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released || s.pendingReport != nil {
		return false
	}
	p := &PendingReport{CommentID: commentID, Reason: reason}
	p.Timer = time.AfterFunc(grace, func() { fire(p) })
	s.pendingReport = p
	return true
}

// TakePendingReport 取走符合 commentID 的待 commit 檢舉並停掉計時器
func (s *WatchSession) TakePendingReport(commentID string) (*PendingReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingReport == nil || s.pendingReport.CommentID != commentID {
		return nil, false
	}
	p := s.pendingReport
	if p.Timer != nil {
		p.Timer.Stop()
	}
	s.pendingReport = nil
	return p, true
}

// PendingReportFor 是否有這則留言的待 commit 檢舉
func (s *WatchSession) PendingReportFor(commentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingReport != nil && s.pendingReport.CommentID == commentID
}
