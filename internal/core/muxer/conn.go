package muxer

import (
	"context"

	logging "github.com/dep2p/log"
	"github.com/libp2p/go-yamux/v5"

	"github.com/dep2p/go-negotiator/pkg/interfaces"
)

var log = logging.Logger("muxer")

// muxedConn 包装 yamux.Session，实现 MuxedConn 接口
type muxedConn struct {
	session *yamux.Session
}

// 确保实现接口
var _ interfaces.MuxedConn = (*muxedConn)(nil)

// OpenStream 打开新子流
func (c *muxedConn) OpenStream(ctx context.Context) (interfaces.Substream, error) {
	s, err := c.session.OpenStream(ctx)
	if err != nil {
		log.Warnf("打开子流失败: %v", err)
		return nil, parseError(err)
	}

	return &muxedStream{stream: s}, nil
}

// AcceptStream 接受对端打开的子流
func (c *muxedConn) AcceptStream() (interfaces.Substream, error) {
	s, err := c.session.AcceptStream()
	if err != nil {
		return nil, parseError(err)
	}

	return &muxedStream{stream: s}, nil
}

// Close 关闭连接
func (c *muxedConn) Close() error {
	log.Debugf("关闭多路复用连接")
	return c.session.Close()
}

// IsClosed 检查连接是否已关闭
func (c *muxedConn) IsClosed() bool {
	return c.session.IsClosed()
}
