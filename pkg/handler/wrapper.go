package handler

import (
	"context"
	"fmt"
	"time"

	logging "github.com/dep2p/log"

	"github.com/dep2p/go-negotiator/pkg/interfaces"
	"github.com/dep2p/go-negotiator/pkg/types"
)

var log = logging.Logger("negotiator")

// OutboundInfo 适配器层的出站关联数据
//
// 把处理器提供的不透明数据和适配器分配的升级 ID 绑在一起。
// 多路复用器交回子流或报告关闭时必须原样携带。
type OutboundInfo[TInfo any] struct {
	// ID 适配器分配的升级 ID
	ID types.UpgradeID
	// Info 处理器提供的关联数据
	Info TInfo
}

// pendingUpgrade 一次在途的子流协商
//
// 协商 goroutine 落定结果后关闭 done；
// 在那之前 output 与 err 只归协商 goroutine 所有。
type pendingUpgrade[TOutput any] struct {
	done   chan struct{}
	output TOutput
	err    error
}

// settled 检查协商是否已落定
func (p *pendingUpgrade[TOutput]) settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// outboundNegotiation 在途的出站协商及其关联数据
type outboundNegotiation[TOutput, TInfo any] struct {
	info    TInfo
	pending *pendingUpgrade[TOutput]
}

// queuedUpgrade 已登记、等待子流交回的出站升级
type queuedUpgrade[TOutput any] struct {
	id      types.UpgradeID
	upgrade Upgrade[TOutput]
}

// Wrapper 协商适配器
//
// 包装一个 Handler 并实现 NodeHandler 契约：
// 跟踪在途的子流协商、用唯一 ID 把出站完成匹配回原请求、
// 应用协商超时，并把所有信号转交给内部处理器。
// 每个连接创建一个，随连接存续。
type Wrapper[TIn, TOut, TOutput, TInfo any] struct {
	// handler 内部处理器
	handler Handler[TIn, TOut, TOutput, TInfo]

	// negotiatingIn 在途的入站协商（无序集合）
	negotiatingIn []*pendingUpgrade[TOutput]

	// negotiatingOut 在途的出站协商（无序集合，带关联数据）
	negotiatingOut []outboundNegotiation[TOutput, TInfo]

	// queuedDialUpgrades 等待子流交回的出站升级队列
	queuedDialUpgrades []queuedUpgrade[TOutput]

	// uniqueDialUpgradeID 下一个升级 ID（单调递增，永不复用）
	uniqueDialUpgradeID types.UpgradeID

	// cfg 超时等配置
	cfg *config

	// notify 就绪提示通道（容量 1，尽力而为）
	notify chan struct{}
}

// 确保实现了接口
var _ NodeHandler[any, any, OutboundInfo[any]] = (*Wrapper[any, any, any, any])(nil)

// NewWrapper 创建协商适配器
func NewWrapper[TIn, TOut, TOutput, TInfo any](
	h Handler[TIn, TOut, TOutput, TInfo],
	opts ...Option,
) *Wrapper[TIn, TOut, TOutput, TInfo] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Wrapper[TIn, TOut, TOutput, TInfo]{
		handler: h,
		cfg:     cfg,
		notify:  make(chan struct{}, 1),
	}
}

// InjectSubstream 交付一条带方向标记的原始子流
//
// 入站子流立即用处理器当前的监听协议开始协商；
// 出站子流按升级 ID 匹配队列中的登记项。
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) InjectSubstream(
	ss interfaces.Substream,
	ep Endpoint[OutboundInfo[TInfo]],
) error {
	switch ep.Direction {
	case types.DirInbound:
		protocol := w.handler.ListenProtocol()
		p := w.startNegotiation(protocol, ss, types.DirInbound, w.cfg.inTimeout)
		w.negotiatingIn = append(w.negotiatingIn, p)
		return nil

	case types.DirOutbound:
		pos := w.queuedUpgradePos(ep.Info.ID)
		if pos < 0 {
			log.Errorf("收到未知升级 ID 的子流: %d", ep.Info.ID)
			return fmt.Errorf("%w: %d", ErrUnknownUpgradeID, ep.Info.ID)
		}
		upgrade := w.removeQueuedUpgrade(pos)
		p := w.startNegotiation(upgrade, ss, types.DirOutbound, w.cfg.outTimeout)
		w.negotiatingOut = append(w.negotiatingOut, outboundNegotiation[TOutput, TInfo]{
			info:    ep.Info.Info,
			pending: p,
		})
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrInvalidDirection, ep.Direction)
	}
}

// InjectInboundClosed 转发给内部处理器
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) InjectInboundClosed() {
	w.handler.InjectInboundClosed()
}

// InjectOutboundClosed 通告某个出站请求不会再有子流交回
//
// 从队列移除登记项，并以类似连接重置的原因
// 向处理器报告拨号升级失败。
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) InjectOutboundClosed(info OutboundInfo[TInfo]) error {
	pos := w.queuedUpgradePos(info.ID)
	if pos < 0 {
		log.Errorf("收到未知升级 ID 的出站关闭通知: %d", info.ID)
		return fmt.Errorf("%w: %d", ErrUnknownUpgradeID, info.ID)
	}
	w.removeQueuedUpgrade(pos)
	w.handler.InjectDialUpgradeError(info.Info,
		fmt.Errorf("%w: outbound closed before substream arrived", ErrSubstreamReset))
	return nil
}

// InjectEvent 转发给内部处理器
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) InjectEvent(ev TIn) {
	w.handler.InjectEvent(ev)
}

// Shutdown 转发给内部处理器
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) Shutdown() {
	w.handler.Shutdown()
}

// Poll 轮询适配器的下一个事件
//
// 固定按三个阶段执行：排空入站协商、排空出站协商、
// 轮询一次内部处理器。后面的阶段必须观察到前面阶段
// 对处理器状态的影响，因此顺序是契约的一部分。
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) Poll() (NodeEvent[OutboundInfo[TInfo], TOut], bool, error) {
	var zero NodeEvent[OutboundInfo[TInfo], TOut]

	// 阶段一：排空就绪的入站协商。
	// 倒序遍历配合交换删除，排空顺序无语义。
	for i := len(w.negotiatingIn) - 1; i >= 0; i-- {
		p := w.negotiatingIn[i]
		if !p.settled() {
			continue
		}
		w.negotiatingIn = swapRemove(w.negotiatingIn, i)
		if p.err != nil {
			// 入站失败没有可报告的关联数据，静默丢弃
			log.Debugf("入站协商失败: %v", p.err)
			if w.cfg.onInboundFailure != nil {
				w.cfg.onInboundFailure(p.err)
			}
			continue
		}
		w.handler.InjectFullyNegotiated(p.output, ListenerEndpoint[TInfo]())
	}

	// 阶段二：排空就绪的出站协商
	for i := len(w.negotiatingOut) - 1; i >= 0; i-- {
		n := w.negotiatingOut[i]
		if !n.pending.settled() {
			continue
		}
		w.negotiatingOut = swapRemove(w.negotiatingOut, i)
		if n.pending.err != nil {
			w.handler.InjectDialUpgradeError(n.info,
				fmt.Errorf("error while upgrading: %w", n.pending.err))
			continue
		}
		w.handler.InjectFullyNegotiated(n.pending.output, DialerEndpoint(n.info))
	}

	// 阶段三：轮询内部处理器，让它观察到上面注入的结果
	ev, done, err := w.handler.Poll()
	if err != nil {
		return zero, false, err
	}
	if done {
		return zero, true, nil
	}

	switch ev.Kind {
	case EventCustom:
		return NodeEvent[OutboundInfo[TInfo], TOut]{
			Kind:   EventCustom,
			Custom: ev.Custom,
		}, false, nil

	case EventOutboundRequest:
		id := w.uniqueDialUpgradeID
		w.uniqueDialUpgradeID++
		w.queuedDialUpgrades = append(w.queuedDialUpgrades, queuedUpgrade[TOutput]{
			id:      id,
			upgrade: ev.Upgrade,
		})
		return NodeEvent[OutboundInfo[TInfo], TOut]{
			Kind: EventOutboundRequest,
			Info: OutboundInfo[TInfo]{ID: id, Info: ev.Info},
		}, false, nil
	}

	return zero, false, nil
}

// Notify 返回就绪提示通道
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) Notify() <-chan struct{} {
	return w.notify
}

// startNegotiation 启动一次带超时约束的子流协商
//
// 协商在独立 goroutine 中执行；超时由注入的时钟驱动，
// 到期时取消上下文并重置子流以解除底层 IO 阻塞。
// 结果落定后关闭 done 并向 notify 发出提示。
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) startNegotiation(
	upgrade Upgrade[TOutput],
	ss interfaces.Substream,
	dir types.Direction,
	timeout time.Duration,
) *pendingUpgrade[TOutput] {
	p := &pendingUpgrade[TOutput]{done: make(chan struct{})}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	type result struct {
		output TOutput
		err    error
	}
	resCh := make(chan result, 1)

	go func() {
		output, err := upgrade.Apply(ctx, ss, dir)
		resCh <- result{output: output, err: err}
	}()

	go func() {
		defer cancel()
		timer := w.cfg.clock.Timer(timeout)
		defer timer.Stop()

		select {
		case r := <-resCh:
			p.output, p.err = r.output, r.err
		case <-timer.C:
			p.err = ErrNegotiationTimeout
			cancel()
			_ = ss.Reset()
		}

		close(p.done)
		w.notifyReady()
	}()

	return p
}

// notifyReady 尽力而为地发出就绪提示
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) notifyReady() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// queuedUpgradePos 返回指定升级 ID 在队列中的位置，不存在时返回 -1
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) queuedUpgradePos(id types.UpgradeID) int {
	for i, q := range w.queuedDialUpgrades {
		if q.id == id {
			return i
		}
	}
	return -1
}

// removeQueuedUpgrade 以交换删除的方式移除队列项并返回其升级
func (w *Wrapper[TIn, TOut, TOutput, TInfo]) removeQueuedUpgrade(pos int) Upgrade[TOutput] {
	upgrade := w.queuedDialUpgrades[pos].upgrade
	w.queuedDialUpgrades = swapRemove(w.queuedDialUpgrades, pos)
	return upgrade
}

// swapRemove 用末尾元素覆盖第 i 项并截断，O(1) 删除
func swapRemove[T any](s []T, i int) []T {
	last := len(s) - 1
	s[i] = s[last]
	var zero T
	s[last] = zero
	return s[:last]
}
