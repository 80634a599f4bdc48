// Package interfaces 定义协商引擎消费的外部协作者接口
//
// 协商引擎只通过本包的窄接口访问底层多路复用器，
// 不关心传输拨号、加密握手或多路复用的具体实现。
package interfaces

import (
	"time"
)

// Substream 表示多路复用连接上的一条原始双向字节流
//
// 子流在协议协商完成前只是裸字节管道；协商适配器在协商期间独占子流，
// 协商成功后以类型化的形式交给上层处理器。
type Substream interface {
	// Read 从流中读取数据
	Read(p []byte) (n int, err error)

	// Write 向流中写入数据
	Write(p []byte) (n int, err error)

	// Close 关闭流（正常关闭）
	Close() error

	// CloseWrite 关闭写端
	CloseWrite() error

	// CloseRead 关闭读端
	CloseRead() error

	// Reset 重置流（异常关闭）
	Reset() error

	// SetDeadline 设置读写截止时间
	SetDeadline(t time.Time) error

	// SetReadDeadline 设置读截止时间
	SetReadDeadline(t time.Time) error

	// SetWriteDeadline 设置写截止时间
	SetWriteDeadline(t time.Time) error
}
