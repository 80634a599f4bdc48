// Package interfaces 定义协商引擎消费的外部协作者接口
//
// 本文件定义多路复用连接接口。
package interfaces

import (
	"context"
)

// MuxedConn 定义多路复用连接接口
//
// MuxedConn 在单个物理连接上承载多条逻辑子流。
// 协商引擎从这里获得原始子流，本身不做多路复用。
type MuxedConn interface {
	// OpenStream 打开新子流
	OpenStream(ctx context.Context) (Substream, error)

	// AcceptStream 接受对端打开的子流
	AcceptStream() (Substream, error)

	// Close 关闭连接
	Close() error

	// IsClosed 检查连接是否已关闭
	IsClosed() bool
}
