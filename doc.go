// Package negotiator 提供单连接上的协议协商引擎
//
// 在一条多路复用连接上，把原始子流升级为类型化的协议实例：
// 入站子流按处理器通告的协议接受，出站子流按处理器请求打开，
// 协商的在途簿记、唯一 ID 关联与超时全部由引擎代劳。
//
// # 核心概念
//
// 围绕四个核心概念构建：
//
//   - Handler: 协议处理器，持有单连接上协议行为的状态
//   - Upgrade: 协议升级，把原始子流协商成类型化实例
//   - Wrapper: 协商适配器，包装 Handler 并实现多路复用器侧契约
//   - Runner: 连接运行器，单 goroutine 串行驱动整条连接
//
// # 快速开始
//
//	import (
//	    negotiator "github.com/dep2p/go-negotiator"
//	    "github.com/dep2p/go-negotiator/pkg/conn"
//	    "github.com/dep2p/go-negotiator/pkg/handler"
//	)
//
//	// 1. 在网络连接上建立多路复用
//	muxed, err := negotiator.NewMuxedConn(netConn, isServer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 2. 包装业务处理器并启动运行器
//	w := handler.NewWrapper(myHandler)
//	r := conn.NewRunner(muxed, w)
//	defer r.Close()
//
//	// 3. 消费应用级事件
//	for ev := range r.Events() {
//	    // ...
//	}
//
// # API 层次结构
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  1. 连接层                                                   │
//	│     conn.Runner                                             │
//	│     接受与打开子流，串行驱动适配器                             │
//	├─────────────────────────────────────────────────────────────┤
//	│  2. 适配层                                                   │
//	│     handler.Wrapper                                         │
//	│     在途协商簿记，升级 ID 关联，超时                           │
//	├─────────────────────────────────────────────────────────────┤
//	│  3. 处理器层                                                 │
//	│     handler.Handler, handler.Dummy, 事件映射组合器            │
//	│     用户协议逻辑                                             │
//	├─────────────────────────────────────────────────────────────┤
//	│  4. 协商层                                                   │
//	│     negotiate.Upgrade                                       │
//	│     multistream-select 协议选择                              │
//	└─────────────────────────────────────────────────────────────┘
//
// 更多信息请访问: https://github.com/dep2p/go-negotiator
package negotiator
