// Package muxer 实现流多路复用
//
// 提供基于 yamux 协议的子流来源，供协商引擎消费，支持：
//   - 单连接多子流
//   - 流量控制（16MB 窗口）
//   - 心跳保活（30s 间隔）
//
// # 快速开始
//
//	transport := muxer.NewTransport()
//
//	// 服务端
//	muxedConn, _ := transport.NewConn(conn, true)
//	ss, _ := muxedConn.AcceptStream()
//	defer ss.Close()
//
//	// 客户端
//	muxedConn, _ := transport.NewConn(conn, false)
//	ss, _ := muxedConn.OpenStream(ctx)
//	defer ss.Close()
//
// # Fx 模块
//
//	app := fx.New(
//	    muxer.Module,
//	    fx.Invoke(func(transport *muxer.Transport) {
//	        // ...
//	    }),
//	)
//
// # 架构定位
//
// 依赖关系：
//   - 依赖：pkg/interfaces, go-yamux
//   - 被依赖：根门面（negotiator.NewMuxedConn）
package muxer
