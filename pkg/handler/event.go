package handler

import (
	"github.com/dep2p/go-negotiator/pkg/types"
)

// ============================================================================
//                              EventKind - 事件种类
// ============================================================================

// EventKind 处理器事件种类
type EventKind int

const (
	// EventNone 无事件（处理器暂时无工作可产出）
	EventNone EventKind = iota
	// EventOutboundRequest 请求协商一条新的出站子流
	EventOutboundRequest
	// EventCustom 应用级自定义事件
	EventCustom
)

// String 返回事件种类的字符串表示
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventOutboundRequest:
		return "outbound-request"
	case EventCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              Endpoint - 子流来源
// ============================================================================

// Endpoint 标记子流的来源方向
//
// DirOutbound 方向携带请求出站子流时提供的关联数据，
// 并在协商完成或失败时原样传回。
type Endpoint[TInfo any] struct {
	// Direction 子流方向
	Direction types.Direction
	// Info 出站关联数据（仅 DirOutbound 有效）
	Info TInfo
}

// ListenerEndpoint 构造入站（Listener）来源标记
func ListenerEndpoint[TInfo any]() Endpoint[TInfo] {
	return Endpoint[TInfo]{Direction: types.DirInbound}
}

// DialerEndpoint 构造携带关联数据的出站（Dialer）来源标记
func DialerEndpoint[TInfo any](info TInfo) Endpoint[TInfo] {
	return Endpoint[TInfo]{Direction: types.DirOutbound, Info: info}
}

// ============================================================================
//                              Event - 处理器事件
// ============================================================================

// Event 处理器通过 Poll 产出的事件
//
// Kind 为 EventOutboundRequest 时 Upgrade 与 Info 有效；
// Kind 为 EventCustom 时 Custom 有效。事件一经产出不可变。
type Event[TOutput, TInfo, TOut any] struct {
	// Kind 事件种类
	Kind EventKind
	// Upgrade 出站子流要应用的协议升级
	Upgrade Upgrade[TOutput]
	// Info 处理器提供的不透明关联数据，子流打开后原样传回
	Info TInfo
	// Custom 应用级事件内容
	Custom TOut
}

// MapEventUpgrade 映射事件的升级描述符类型，其余字段原样保留
func MapEventUpgrade[TOutput, TInfo, TOut, TNewOutput any](
	ev Event[TOutput, TInfo, TOut],
	m func(Upgrade[TOutput]) Upgrade[TNewOutput],
) Event[TNewOutput, TInfo, TOut] {
	out := Event[TNewOutput, TInfo, TOut]{Kind: ev.Kind, Info: ev.Info, Custom: ev.Custom}
	if ev.Kind == EventOutboundRequest {
		out.Upgrade = m(ev.Upgrade)
	}
	return out
}

// MapEventInfo 映射事件的关联数据类型，其余字段原样保留
func MapEventInfo[TOutput, TInfo, TOut, TNewInfo any](
	ev Event[TOutput, TInfo, TOut],
	m func(TInfo) TNewInfo,
) Event[TOutput, TNewInfo, TOut] {
	out := Event[TOutput, TNewInfo, TOut]{Kind: ev.Kind, Upgrade: ev.Upgrade, Custom: ev.Custom}
	if ev.Kind == EventOutboundRequest {
		out.Info = m(ev.Info)
	}
	return out
}

// MapEventCustom 映射事件的自定义内容类型，其余字段原样保留
func MapEventCustom[TOutput, TInfo, TOut, TNewOut any](
	ev Event[TOutput, TInfo, TOut],
	m func(TOut) TNewOut,
) Event[TOutput, TInfo, TNewOut] {
	out := Event[TOutput, TInfo, TNewOut]{Kind: ev.Kind, Upgrade: ev.Upgrade, Info: ev.Info}
	if ev.Kind == EventCustom {
		out.Custom = m(ev.Custom)
	}
	return out
}

// ============================================================================
//                              NodeEvent - 适配器事件
// ============================================================================

// NodeEvent 协商适配器通过 Poll 向多路复用器产出的事件
//
// 与 Event 不同，出站请求只携带关联数据：
// 升级描述符被适配器留在队列中，等子流交回时再应用。
type NodeEvent[TInfo, TOut any] struct {
	// Kind 事件种类
	Kind EventKind
	// Info 出站请求的关联数据（含适配器分配的升级 ID）
	Info TInfo
	// Custom 应用级事件内容
	Custom TOut
}
