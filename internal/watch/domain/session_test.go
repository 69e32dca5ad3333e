package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 測試 Release 只有第一次生效
func TestWatchSession_ReleaseOnce(t *testing.T) {
	s := NewWatchSession("s1", "m1", &Video{ID: 1})

	assert.True(t, s.Alive())
	assert.True(t, s.Release())
	assert.False(t, s.Release())
	assert.False(t, s.Alive())
}

// 測試位置更新的節流
func TestWatchSession_SetPositionThrottle(t *testing.T) {
	s := NewWatchSession("s1", "m1", &Video{ID: 1})

	assert.True(t, s.SetPosition(10, time.Minute))
	// 間隔內的更新被丟棄
	assert.False(t, s.SetPosition(12, time.Minute))
	assert.Equal(t, 10, s.Position())

	// marker 跳轉不受節流限制
	assert.True(t, s.Seek(95))
	assert.Equal(t, 95, s.Position())
}

// 測試進度回報的固定間隔閘門
func TestWatchSession_AllowProgressCadence(t *testing.T) {
	s := NewWatchSession("s1", "m1", &Video{ID: 1})

	assert.True(t, s.AllowProgress(time.Minute))
	assert.False(t, s.AllowProgress(time.Minute))

	// 間隔設 0 等於不閘
	s2 := NewWatchSession("s2", "m1", &Video{ID: 1})
	assert.True(t, s2.AllowProgress(0))
	assert.True(t, s2.AllowProgress(0))
}

// 測試釋放後所有寫入都被丟棄
func TestWatchSession_NoWritesAfterRelease(t *testing.T) {
	s := NewWatchSession("s1", "m1", &Video{ID: 1})
	s.Release()

	assert.False(t, s.SetPosition(10, 0))
	assert.False(t, s.Seek(10))
	assert.False(t, s.AllowProgress(0))

	scheduled := s.SchedulePendingReport("c1", "spam", time.Hour, func(p *PendingReport) {})
	assert.False(t, scheduled)

	_, err := s.AdvanceSource()
	assert.ErrorIs(t, err, ErrSourceExhausted)
}

// 測試同時只能掛一筆待 commit 的檢舉
func TestWatchSession_SinglePendingReport(t *testing.T) {
	s := NewWatchSession("s1", "m1", &Video{ID: 1})

	assert.True(t, s.SchedulePendingReport("c1", "spam", time.Hour, func(p *PendingReport) {}))
	assert.False(t, s.SchedulePendingReport("c2", "spam", time.Hour, func(p *PendingReport) {}))
	assert.True(t, s.PendingReportFor("c1"))

	// 取走之後可以再掛
	p, ok := s.TakePendingReport("c1")
	assert.True(t, ok)
	assert.Equal(t, "c1", p.CommentID)
	assert.False(t, s.PendingReportFor("c1"))
	assert.True(t, s.SchedulePendingReport("c2", "abuse", time.Hour, func(p *PendingReport) {}))
}

// 測試取錯 commentID 拿不到 pending
func TestWatchSession_TakePendingReportMismatch(t *testing.T) {
	s := NewWatchSession("s1", "m1", &Video{ID: 1})
	s.SchedulePendingReport("c1", "spam", time.Hour, func(p *PendingReport) {})

	_, ok := s.TakePendingReport("other")
	assert.False(t, ok)
	assert.True(t, s.PendingReportFor("c1"))
}
