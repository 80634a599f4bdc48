// Package conn 实现连接级的协商驱动循环
//
// Runner 把一条多路复用连接和一个协商适配器绑在一起，
// 用单个 goroutine 串行驱动适配器的全部方法：
// 接受入站子流、为出站请求打开子流、轮询事件并对外投递。
// 适配器契约要求的单调用方串行化由 Runner 保证。
//
// # 快速开始
//
//	r := conn.NewRunner(muxed, handler.NewWrapper[In, Out, *negotiate.Stream, string](h))
//	for ev := range r.Events() {
//		// 处理应用级事件
//	}
//	r.Close()
package conn
