package negotiator

import (
	"net"

	"github.com/dep2p/go-negotiator/internal/core/muxer"
	"github.com/dep2p/go-negotiator/pkg/interfaces"
	"github.com/dep2p/go-negotiator/pkg/negotiate"
	"github.com/dep2p/go-negotiator/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// ProtocolID 协议标识
type ProtocolID = types.ProtocolID

// Direction 子流方向
type Direction = types.Direction

// Substream 多路复用连接上的一条双向子流
type Substream = interfaces.Substream

// MuxedConn 多路复用连接
type MuxedConn = interfaces.MuxedConn

// Stream 协商完成的子流
type Stream = negotiate.Stream

// ════════════════════════════════════════════════════════════════════════════
//                              入口函数
// ════════════════════════════════════════════════════════════════════════════

// MuxerProtocolID 多路复用协议标识
const MuxerProtocolID = muxer.ProtocolID

// NewMuxedConn 在网络连接上建立 yamux 多路复用
//
// isServer 决定本端在多路复用会话中的角色，
// 连接两端必须一客一服。
func NewMuxedConn(conn net.Conn, isServer bool) (MuxedConn, error) {
	return muxer.NewTransport().NewConn(conn, isServer)
}

// NewUpgrade 创建基于 multistream-select 的协议升级
func NewUpgrade(protocols ...ProtocolID) *negotiate.Upgrade {
	return negotiate.NewUpgrade(protocols...)
}
