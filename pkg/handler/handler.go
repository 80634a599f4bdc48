package handler

import (
	"context"

	"github.com/dep2p/go-negotiator/pkg/interfaces"
	"github.com/dep2p/go-negotiator/pkg/types"
)

// ============================================================================
//                              Upgrade - 协议升级
// ============================================================================

// Upgrade 把原始子流升级为类型化的协议实例
//
// Upgrade 同时是协议描述符（Protocols）和协商原语（Apply）。
// Apply 必须区分方向（入站与出站的协商流程可以不同），
// 并且在协议不匹配时返回错误而不是挂起。
type Upgrade[TOutput any] interface {
	// Protocols 返回本升级可以协商出的协议列表
	Protocols() []types.ProtocolID

	// Apply 在子流上执行协议协商
	//
	// ctx 携带截止时间时实现应以其约束底层 IO。
	Apply(ctx context.Context, ss interfaces.Substream, dir types.Direction) (TOutput, error)
}

// ============================================================================
//                              Handler - 协议处理器
// ============================================================================

// Handler 单连接上一组协议的处理器
//
// 实现者持有与某个远端之间特定协议行为的状态，
// 不关心子流簿记：协商、超时与 ID 关联全部由 Wrapper 代劳。
//
// 类型参数：
//   - TIn: 从外部注入的事件类型
//   - TOut: 通过 Poll 向外部产出的事件类型
//   - TOutput: 协议协商成功后产出的类型
//   - TInfo: 出站请求携带的不透明关联数据类型
//
// # 协商方式
//
// 与远端打开协议有两种方式：
//   - 拨号：主动过程，让 Poll 返回 EventOutboundRequest 事件；
//   - 监听：ListenProtocol 返回监听时接受的升级。
//
// # 关闭流程
//
// 连接随时可能关闭。Shutdown 被调用后，处理器必须
// 在有限次 Poll 内返回 done，期间仍可继续产出事件，
// 以便传递已经就绪的结果。
type Handler[TIn, TOut, TOutput, TInfo any] interface {
	// ListenProtocol 返回监听入站子流时使用的协议升级
	//
	// 必须是稳定的纯查询，并始终通告本处理器支持的全部协议：
	// 调用方可以缓存结果，不会为单次接受决策重新查询。
	ListenProtocol() Upgrade[TOutput]

	// InjectFullyNegotiated 注入协商成功的协议实例及其来源
	InjectFullyNegotiated(output TOutput, ep Endpoint[TInfo])

	// InjectEvent 注入来自外部的应用级事件
	InjectEvent(ev TIn)

	// InjectDialUpgradeError 通告出站子流协商失败（含超时与连接重置）
	InjectDialUpgradeError(info TInfo, err error)

	// InjectInboundClosed 指示多路复用器不会再交付任何入站子流
	InjectInboundClosed()

	// Shutdown 请求优雅关闭
	Shutdown()

	// Poll 轮询处理器的下一个动作
	//
	// 返回 (事件, 是否终结, 错误)。事件为零值且未终结表示暂无工作。
	// 必须允许以任意节奏反复调用。
	Poll() (Event[TOutput, TInfo, TOut], bool, error)
}

// ============================================================================
//                              NodeHandler - 多路复用器侧契约
// ============================================================================

// NodeHandler 多路复用器侧的连接处理器契约
//
// 这是连接管理代码调用的下层接口，由 Wrapper 实现。
// 形状与 Handler 对应，但签名带子流与升级 ID。
//
// 所有方法必须由同一个调用方串行驱动；接口本身不做同步。
type NodeHandler[TIn, TOut, TInfo any] interface {
	// InjectSubstream 交付一条带方向标记的原始子流
	//
	// 出站方向的 Endpoint 必须携带此前 Poll 产出的关联数据。
	// ID 不在队列中时返回 ErrUnknownUpgradeID（契约违规）。
	InjectSubstream(ss interfaces.Substream, ep Endpoint[TInfo]) error

	// InjectInboundClosed 指示不会再有入站子流
	InjectInboundClosed()

	// InjectOutboundClosed 通告某个出站请求不会再有子流交回
	InjectOutboundClosed(info TInfo) error

	// InjectEvent 注入应用级事件
	InjectEvent(ev TIn)

	// Shutdown 请求优雅关闭
	Shutdown()

	// Poll 轮询适配器的下一个事件
	Poll() (NodeEvent[TInfo, TOut], bool, error)

	// Notify 返回就绪提示通道
	//
	// 异步协商落定后会向该通道发出尽力而为的信号，
	// 提示调用方再次 Poll。信号可能合并，不保证一一对应。
	Notify() <-chan struct{}
}

// ============================================================================
//                              DeniedUpgrade - 拒绝升级
// ============================================================================

// DeniedUpgrade 不通告任何协议、永远协商失败的升级
//
// 用作占位处理器的监听协议。
type DeniedUpgrade[TOutput any] struct{}

// Protocols 返回空协议列表
func (DeniedUpgrade[TOutput]) Protocols() []types.ProtocolID {
	return nil
}

// Apply 永远返回 ErrUpgradeDenied
func (DeniedUpgrade[TOutput]) Apply(context.Context, interfaces.Substream, types.Direction) (TOutput, error) {
	var zero TOutput
	return zero, ErrUpgradeDenied
}
