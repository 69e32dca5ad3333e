package domain

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// PlaybackSourceState definition playback source state
type PlaybackSourceState string

const (
	//SourceProxy 本地代理間接 URL，初始狀態
	SourceProxy PlaybackSourceState = "proxy"
	//SourceQualityOptimized 改寫原始 URL 要求自動畫質協商
	SourceQualityOptimized PlaybackSourceState = "quality_optimized"
	//SourceDirect 預先轉好的 URL，沒有則用原始 URL
	SourceDirect PlaybackSourceState = "direct"
	//SourceRawDatabase 資料庫內的字面 URL，不做任何改寫
	SourceRawDatabase PlaybackSourceState = "raw_database"
	//SourceExternalEmbed 第三方內嵌播放器，Failed 後的最後手段
	SourceExternalEmbed PlaybackSourceState = "external_embed"
	//SourceFailed 階梯耗盡
	SourceFailed PlaybackSourceState = "failed"
)

// PlaybackSource usecase playback source response
type PlaybackSource struct {
	State    PlaybackSourceState `json:"state"`
	URL      string              `json:"url,omitempty"`
	EmbedURL string              `json:"embed_url,omitempty"` // Failed 時若來源符合已知站點 pattern 才提供
}

// RewriteStrategy 畫質改寫策略 {matcher, rewrite}，按順序評估
type RewriteStrategy struct {
	Name    string
	Match   func(raw string) bool
	Rewrite func(raw string) string
}

// QualityRewrites 已知的 CDN URL 改寫表
var QualityRewrites = []RewriteStrategy{
	{
		Name: "cdn_upload_auto",
		Match: func(raw string) bool {
			return strings.Contains(raw, "/upload/") && !strings.Contains(raw, "/upload/q_auto/")
		},
		Rewrite: func(raw string) string {
			return strings.Replace(raw, "/upload/", "/upload/q_auto/f_auto/", 1)
		},
	},
}

// ApplyQualityRewrite 套用第一個符合的改寫策略，沒有符合就回原始 URL
func ApplyQualityRewrite(raw string) string {
	for _, s := range QualityRewrites {
		if s.Match(raw) {
			return s.Rewrite(raw)
		}
	}
	return raw
}

// EmbedStrategy 第三方站點內嵌 pattern
type EmbedStrategy struct {
	Name    string
	Matcher *regexp.Regexp
	Build   func(id string) string
}

// EmbedStrategies 已知可內嵌的站點
var EmbedStrategies = []EmbedStrategy{
	{
		Name:    "youtube",
		Matcher: regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]{6,})`),
		Build: func(id string) string {
			return "https://www.youtube.com/embed/" + id
		},
	},
	{
		Name:    "vimeo",
		Matcher: regexp.MustCompile(`vimeo\.com/(\d+)`),
		Build: func(id string) string {
			return "https://player.vimeo.com/video/" + id
		},
	},
}

// ExternalEmbedURL 來源符合已知站點時回傳內嵌 URL
func ExternalEmbedURL(raw string) (string, bool) {
	for _, s := range EmbedStrategies {
		if m := s.Matcher.FindStringSubmatch(raw); m != nil {
			return s.Build(m[1]), true
		}
	}
	return "", false
}

// ProxyURL 本地代理間接路徑
func ProxyURL(videoID uint) string {
	return fmt.Sprintf("/videos/proxy/%d", videoID)
}

// ValidSourceURL 候選 URL 必須語法正確，本地 rooted path 也視為合法
func ValidSourceURL(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ErrSourceExhausted 階梯已走完
var ErrSourceExhausted = errors.New("playback source ladder exhausted")

// SourceLadder 播放來源故障升級階梯
// 狀態單調前進：Proxy → QualityOptimized → Direct → RawDatabase → Failed，
// 一個 session 內不會回頭也不會重複
type SourceLadder struct {
	state      PlaybackSourceState
	errorCount int
}

// NewSourceLadder create SourceLadder, 初始為 Proxy
func NewSourceLadder() *SourceLadder {
	return &SourceLadder{state: SourceProxy}
}

// Current current ladder state
func (l *SourceLadder) Current() PlaybackSourceState {
	return l.state
}

// ErrorCount accumulated playback error count
func (l *SourceLadder) ErrorCount() int {
	return l.errorCount
}

// Resolve 目前狀態對應的播放來源
func (l *SourceLadder) Resolve(v *Video) PlaybackSource {
	switch l.state {
	case SourceProxy:
		return PlaybackSource{State: SourceProxy, URL: ProxyURL(v.ID)}
	case SourceQualityOptimized:
		return PlaybackSource{State: SourceQualityOptimized, URL: ApplyQualityRewrite(v.RawURL)}
	case SourceDirect:
		u := v.OptimizedURL
		if u == "" {
			u = v.RawURL
		}
		return PlaybackSource{State: SourceDirect, URL: u}
	case SourceRawDatabase:
		return PlaybackSource{State: SourceRawDatabase, URL: v.RawURL}
	default:
		src := PlaybackSource{State: SourceFailed}
		if embed, ok := ExternalEmbedURL(v.RawURL); ok {
			src.EmbedURL = embed
		}
		return src
	}
}

// Advance 回報一次播放錯誤，升級到下一個來源
// 候選 URL 語法不合法時視為立即失敗，不嘗試播放，直接再升級
func (l *SourceLadder) Advance(v *Video) (PlaybackSource, error) {
	if l.state == SourceFailed {
		return l.Resolve(v), ErrSourceExhausted
	}

	l.errorCount++
	switch l.state {
	case SourceProxy:
		l.state = SourceQualityOptimized
	case SourceQualityOptimized:
		l.state = SourceDirect
	case SourceDirect:
		l.state = SourceRawDatabase
	case SourceRawDatabase:
		l.state = SourceFailed
	}

	src := l.Resolve(v)
	if l.state != SourceFailed && !ValidSourceURL(src.URL) {
		return l.Advance(v)
	}
	return src, nil
}
