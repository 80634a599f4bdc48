// Package handler 实现单连接协议协商引擎
//
// 提供可插拔的协议处理器抽象（Handler）以及把它适配成
// 多路复用器所需完整契约的协商适配器（Wrapper），支持：
//   - 入站/出站子流的协议协商与超时控制
//   - 出站请求与子流的 ID 关联（单调递增、精确一次消费）
//   - 输入/输出事件映射组合器（组合独立编写的处理器）
//   - 协作式单线程轮询模型（所有状态只在 Poll 调用内推进）
//
// # 快速开始
//
//	h := &myHandler{} // 实现 handler.Handler
//	w := handler.NewWrapper(h,
//	    handler.WithInboundTimeout(10*time.Second),
//	    handler.WithOutboundTimeout(10*time.Second),
//	)
//
//	// 多路复用器交付子流
//	w.InjectSubstream(ss, handler.ListenerEndpoint[handler.OutboundInfo[string]]())
//
//	// 驱动状态机
//	ev, done, err := w.Poll()
//
// # 轮询契约
//
// Wrapper.Poll 固定按三个阶段执行：先排空就绪的入站协商，
// 再排空就绪的出站协商，最后轮询一次内部处理器。
// 后面的阶段必须观察到前面阶段的状态变更。
// 单个阶段内的排空顺序不作保证。
//
// # 架构定位
//
// 依赖关系：
//   - 依赖：pkg/types, pkg/interfaces
//   - 被依赖：pkg/conn, 上层连接管理
package handler
