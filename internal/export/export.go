// Package export 登出时的会话聊天导出
// 聊天记录只在一次会话内存在，登出时先导出成文件再清除
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"skill-exchange/internal/model"
)

// FileExporter 把会话聊天导出为markdown文件
type FileExporter struct {
	dir string
}

// NewFileExporter 创建文件导出器
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{dir: dir}
}

// Export 写出一份聊天记录文件
// 文件名: chat-<用户ID>-<时间戳>.md
func (e *FileExporter) Export(user *model.User, messages []model.ChatMessage) error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("创建导出目录失败: %w", err)
	}

	name := fmt.Sprintf("chat-%s-%s.md", sanitize(user.ID), time.Now().Format("20060102-150405"))
	path := filepath.Join(e.dir, name)

	var sb strings.Builder
	sb.WriteString("# 会话聊天记录\n\n")
	sb.WriteString(fmt.Sprintf("- 用户: %s (%s)\n", user.Name, user.ID))
	sb.WriteString(fmt.Sprintf("- 导出时间: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("- 消息数: %d\n\n", len(messages)))

	for _, msg := range messages {
		sb.WriteString(fmt.Sprintf("**%s** -> %s  (%s)\n\n%s\n\n---\n\n",
			msg.SenderName,
			msg.RecipientID,
			msg.SentAt.Format("2006-01-02 15:04:05"),
			msg.Content,
		))
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("写入导出文件失败: %w", err)
	}

	return nil
}

// sanitize 过滤文件名中的路径分隔符
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '.':
			return '-'
		}
		return r
	}, s)
}
