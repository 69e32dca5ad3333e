package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 測試秒數轉標記文字
func TestFormatMarker(t *testing.T) {
	assert.Equal(t, "[1:35] ", FormatMarker(95))
	assert.Equal(t, "[0:05] ", FormatMarker(5))
	assert.Equal(t, "[10:00] ", FormatMarker(600))
	assert.Equal(t, "[0:00] ", FormatMarker(-3))
}

// 測試標記文字解析回秒數
func TestParseMarkerLabel(t *testing.T) {
	sec, ok := ParseMarkerLabel("[1:35] ")
	assert.True(t, ok)
	assert.Equal(t, 95, sec)

	sec, ok = ParseMarkerLabel("1:35")
	assert.True(t, ok)
	assert.Equal(t, 95, sec)

	// 秒數欄位超過 59 不是合法標記
	_, ok = ParseMarkerLabel("[1:75]")
	assert.False(t, ok)

	// 解析不了是 no-op 的訊號，不是錯誤
	_, ok = ParseMarkerLabel("not a marker")
	assert.False(t, ok)

	_, ok = ParseMarkerLabel("")
	assert.False(t, ok)
}

// 測試在游標位置插入標記
func TestNote_InsertMarkerAtCursor(t *testing.T) {
	note := &Note{Spans: []NoteSpan{
		{Type: SpanText, Text: "before "},
		{Type: SpanText, Text: "after"},
	}}

	note.InsertMarker(95, 1)

	assert.Len(t, note.Spans, 3)
	assert.Equal(t, SpanTimestamp, note.Spans[1].Type)
	assert.Equal(t, "[1:35] ", note.Spans[1].Text)
	assert.Equal(t, 95, note.Spans[1].Seconds)
	assert.Equal(t, "before [1:35] after", note.PlainText())
}

// 測試游標在開頭
func TestNote_InsertMarkerAtStart(t *testing.T) {
	note := &Note{Spans: []NoteSpan{{Type: SpanText, Text: "tail"}}}

	note.InsertMarker(95, 0)

	assert.Equal(t, "[1:35] tail", note.PlainText())
}

// 測試游標未知時附加到文件尾端並補換行
func TestNote_InsertMarkerAppend(t *testing.T) {
	note := &Note{Spans: []NoteSpan{{Type: SpanText, Text: "existing"}}}

	note.InsertMarker(5, -1)

	assert.Equal(t, "existing\n[0:05] ", note.PlainText())
}

// 測試空文件附加不補換行
func TestNote_InsertMarkerAppendEmpty(t *testing.T) {
	note := &Note{}

	note.InsertMarker(5, -1)

	assert.Len(t, note.Spans, 1)
	assert.Equal(t, "[0:05] ", note.PlainText())
}
