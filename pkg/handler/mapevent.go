package handler

// ============================================================================
//                              MapInEvent - 输入事件映射
// ============================================================================

// InEventMapper 把输入事件翻译成内部处理器事件的包装器
//
// 只拦截 InjectEvent，其余操作原样透传。
type InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo any] struct {
	inner Handler[TIn, TOut, TOutput, TInfo]
	mapFn func(TNewIn) (TIn, bool)
}

// MapInEvent 包装处理器，使其接受另一种输入事件类型
//
// m 返回 false 时事件被静默丢弃，否则翻译结果转发给内部处理器。
func MapInEvent[TNewIn, TIn, TOut, TOutput, TInfo any](
	inner Handler[TIn, TOut, TOutput, TInfo],
	m func(TNewIn) (TIn, bool),
) *InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo] {
	return &InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo]{inner: inner, mapFn: m}
}

// ListenProtocol 透传内部处理器的监听协议
func (h *InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo]) ListenProtocol() Upgrade[TOutput] {
	return h.inner.ListenProtocol()
}

// InjectFullyNegotiated 透传
func (h *InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo]) InjectFullyNegotiated(output TOutput, ep Endpoint[TInfo]) {
	h.inner.InjectFullyNegotiated(output, ep)
}

// InjectEvent 翻译后转发，翻译失败则丢弃
func (h *InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo]) InjectEvent(ev TNewIn) {
	if mapped, ok := h.mapFn(ev); ok {
		h.inner.InjectEvent(mapped)
	}
}

// InjectDialUpgradeError 透传
func (h *InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo]) InjectDialUpgradeError(info TInfo, err error) {
	h.inner.InjectDialUpgradeError(info, err)
}

// InjectInboundClosed 透传
func (h *InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo]) InjectInboundClosed() {
	h.inner.InjectInboundClosed()
}

// Shutdown 透传
func (h *InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo]) Shutdown() {
	h.inner.Shutdown()
}

// Poll 透传
func (h *InEventMapper[TNewIn, TIn, TOut, TOutput, TInfo]) Poll() (Event[TOutput, TInfo, TOut], bool, error) {
	return h.inner.Poll()
}

// ============================================================================
//                              MapOutEvent - 输出事件映射
// ============================================================================

// OutEventMapper 改写输出事件的包装器
//
// 只拦截 Poll 结果中的 EventCustom 变体；
// EventOutboundRequest 的升级与关联数据原样透传。
type OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo any] struct {
	inner Handler[TIn, TOut, TOutput, TInfo]
	mapFn func(TOut) TNewOut
}

// MapOutEvent 包装处理器，使其产出另一种输出事件类型
func MapOutEvent[TNewOut, TIn, TOut, TOutput, TInfo any](
	inner Handler[TIn, TOut, TOutput, TInfo],
	m func(TOut) TNewOut,
) *OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo] {
	return &OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo]{inner: inner, mapFn: m}
}

// ListenProtocol 透传内部处理器的监听协议
func (h *OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo]) ListenProtocol() Upgrade[TOutput] {
	return h.inner.ListenProtocol()
}

// InjectFullyNegotiated 透传
func (h *OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo]) InjectFullyNegotiated(output TOutput, ep Endpoint[TInfo]) {
	h.inner.InjectFullyNegotiated(output, ep)
}

// InjectEvent 透传
func (h *OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo]) InjectEvent(ev TIn) {
	h.inner.InjectEvent(ev)
}

// InjectDialUpgradeError 透传
func (h *OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo]) InjectDialUpgradeError(info TInfo, err error) {
	h.inner.InjectDialUpgradeError(info, err)
}

// InjectInboundClosed 透传
func (h *OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo]) InjectInboundClosed() {
	h.inner.InjectInboundClosed()
}

// Shutdown 透传
func (h *OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo]) Shutdown() {
	h.inner.Shutdown()
}

// Poll 轮询内部处理器并改写 Custom 事件
func (h *OutEventMapper[TNewOut, TIn, TOut, TOutput, TInfo]) Poll() (Event[TOutput, TInfo, TNewOut], bool, error) {
	ev, done, err := h.inner.Poll()
	if err != nil || done {
		return Event[TOutput, TInfo, TNewOut]{}, done, err
	}
	return MapEventCustom(ev, h.mapFn), false, nil
}
