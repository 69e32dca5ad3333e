package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 測試階梯依序升級且不回頭
func TestSourceLadder_AdvanceOrder(t *testing.T) {
	video := &Video{
		ID:           7,
		RawURL:       "https://cdn.example.com/upload/v1/abc.mp4",
		OptimizedURL: "https://cdn.example.com/optimized/abc.mp4",
	}

	ladder := NewSourceLadder()
	assert.Equal(t, SourceProxy, ladder.Current())

	src := ladder.Resolve(video)
	assert.Equal(t, SourceProxy, src.State)
	assert.Equal(t, "/videos/proxy/7", src.URL)

	src, err := ladder.Advance(video)
	assert.NoError(t, err)
	assert.Equal(t, SourceQualityOptimized, src.State)
	assert.Contains(t, src.URL, "/upload/q_auto/f_auto/v1/abc.mp4")

	src, err = ladder.Advance(video)
	assert.NoError(t, err)
	assert.Equal(t, SourceDirect, src.State)
	assert.Equal(t, video.OptimizedURL, src.URL)

	src, err = ladder.Advance(video)
	assert.NoError(t, err)
	assert.Equal(t, SourceRawDatabase, src.State)
	assert.Equal(t, video.RawURL, src.URL)

	src, err = ladder.Advance(video)
	assert.NoError(t, err)
	assert.Equal(t, SourceFailed, src.State)
	assert.Equal(t, 4, ladder.ErrorCount())

	// 走完之後再回報錯誤只會拿到 Failed
	src, err = ladder.Advance(video)
	assert.ErrorIs(t, err, ErrSourceExhausted)
	assert.Equal(t, SourceFailed, src.State)
}

// 測試 Direct 沒有預轉檔時退回原始 URL
func TestSourceLadder_DirectFallsBackToRaw(t *testing.T) {
	video := &Video{ID: 1, RawURL: "https://media.example.com/raw.mp4"}

	ladder := NewSourceLadder()
	ladder.Advance(video) // quality_optimized
	src, err := ladder.Advance(video)

	assert.NoError(t, err)
	assert.Equal(t, SourceDirect, src.State)
	assert.Equal(t, video.RawURL, src.URL)
}

// 測試候選 URL 不合法時直接跳過該層
func TestSourceLadder_SkipsInvalidCandidate(t *testing.T) {
	video := &Video{ID: 2, RawURL: "not a url at all"}

	ladder := NewSourceLadder()
	src, err := ladder.Advance(video)

	// quality_optimized 與 direct 與 raw 都不合法，一路降到 Failed
	assert.NoError(t, err)
	assert.Equal(t, SourceFailed, src.State)
}

// 測試 Failed 時已知站點給內嵌 URL
func TestSourceLadder_FailedOffersEmbed(t *testing.T) {
	video := &Video{ID: 3, RawURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}

	ladder := NewSourceLadder()
	var src PlaybackSource
	for i := 0; i < 4; i++ {
		src, _ = ladder.Advance(video)
	}

	assert.Equal(t, SourceFailed, src.State)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", src.EmbedURL)
}

// 測試未知站點 Failed 不帶內嵌 URL
func TestSourceLadder_FailedWithoutEmbed(t *testing.T) {
	video := &Video{ID: 4, RawURL: "https://media.example.com/raw.mp4"}

	ladder := NewSourceLadder()
	var src PlaybackSource
	for i := 0; i < 4; i++ {
		src, _ = ladder.Advance(video)
	}

	assert.Equal(t, SourceFailed, src.State)
	assert.Empty(t, src.EmbedURL)
}

// 測試畫質改寫只動第一個 /upload/，且不重複改寫
func TestApplyQualityRewrite(t *testing.T) {
	rewritten := ApplyQualityRewrite("https://cdn.example.com/upload/v1/abc.mp4")
	assert.Equal(t, "https://cdn.example.com/upload/q_auto/f_auto/v1/abc.mp4", rewritten)

	// 已經帶 q_auto 的不再改
	assert.Equal(t, rewritten, ApplyQualityRewrite(rewritten))

	// 不認識的 URL 原樣回傳
	plain := "https://media.example.com/raw.mp4"
	assert.Equal(t, plain, ApplyQualityRewrite(plain))
}
