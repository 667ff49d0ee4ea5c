package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"skill-exchange/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportWritesMarkdownTranscript(t *testing.T) {
	dir := t.TempDir()
	e := NewFileExporter(dir)

	user := &model.User{ID: "u-1", Name: "Zhang Wei"}
	messages := []model.ChatMessage{
		{ID: 1, SenderName: "Zhang Wei", RecipientID: "peer-1", Content: "hello", SentAt: time.Now()},
		{ID: 2, SenderName: "Zhang Wei", RecipientID: "peer-1", Content: "bye", SentAt: time.Now()},
	}

	require.NoError(t, e.Export(user, messages))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "chat-u-1-")
	assert.Contains(t, entries[0].Name(), ".md")

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Zhang Wei")
	assert.Contains(t, content, "hello")
	assert.Contains(t, content, "bye")
}

func TestExportSanitizesUserIDInFilename(t *testing.T) {
	dir := t.TempDir()
	e := NewFileExporter(dir)

	user := &model.User{ID: "local-wei-at-example.com", Name: "Wei"}
	require.NoError(t, e.Export(user, []model.ChatMessage{{ID: 1, Content: "hi", SentAt: time.Now()}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// 标识中的 '.' 被替换，文件名里只剩扩展名一个点
	assert.Equal(t, 1, strings.Count(entries[0].Name(), "."))
	assert.Contains(t, entries[0].Name(), "local-wei-at-example-com")
}

func TestExportCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	e := NewFileExporter(dir)

	user := &model.User{ID: "u-1", Name: "Wei"}
	require.NoError(t, e.Export(user, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
