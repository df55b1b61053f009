// Package jsonl 实现 JSONL 结果文件写入。
// 定价结果按检查点逐条产生，频率极低，因此采用同步带缓冲写入。
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Writer JSONL 写入器
// 每条记录编码为一行 JSON。并发安全。
type Writer struct {
	mu sync.Mutex
	f  *os.File
	bw *bufio.Writer
}

// NewWriter 创建 JSONL 写入器
// 参数 path: 输出文件路径（目录不存在时自动创建）
// 参数 bufferSize: 写入缓冲区大小（字节）
func NewWriter(path string, bufferSize int) (*Writer, error) {
	if bufferSize <= 0 {
		bufferSize = 1 << 16
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("打开输出文件失败: %w", err)
	}

	return &Writer{
		f:  f,
		bw: bufio.NewWriterSize(f, bufferSize),
	}, nil
}

// Write 写入一条 JSONL 记录
func (w *Writer) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("编码 JSON 失败: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.bw.Write(b); err != nil {
		return fmt.Errorf("写入记录失败: %w", err)
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("写入记录失败: %w", err)
	}
	return nil
}

// Flush 强制 flush 文件缓冲区
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bw.Flush()
}

// Close 关闭写入器（会先 flush）
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	flushErr := w.bw.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
