package conn

import (
	"context"
	"sync"
	"time"

	logging "github.com/dep2p/log"
	"go.uber.org/multierr"

	"github.com/dep2p/go-negotiator/pkg/handler"
	"github.com/dep2p/go-negotiator/pkg/interfaces"
)

var log = logging.Logger("conn")

// shutdownPollInterval 关闭期间的兜底轮询间隔
const shutdownPollInterval = 50 * time.Millisecond

// dialResult 一次出站子流打开的结果
type dialResult[TInfo any] struct {
	info handler.OutboundInfo[TInfo]
	ss   interfaces.Substream
	err  error
}

// Runner 连接运行器
//
// 持有一条多路复用连接和一个协商适配器，
// 在单个 goroutine 中串行驱动适配器的全部方法。
// 应用级事件通过 Events 对外投递，外部事件通过 SendEvent 注入。
// 每条连接创建一个，Close 后不可复用。
type Runner[TIn, TOut, TInfo any] struct {
	// muxed 多路复用连接
	muxed interfaces.MuxedConn
	// handler 协商适配器
	handler handler.NodeHandler[TIn, TOut, handler.OutboundInfo[TInfo]]

	// events 对外投递的应用级事件
	events chan TOut
	// injects 待注入的外部事件
	injects chan TIn
	// accepts 已接受、待注入的入站子流
	accepts chan interfaces.Substream
	// dials 出站子流打开结果
	dials chan dialResult[TInfo]

	ctx    context.Context
	cancel context.CancelFunc

	// acceptDone 接受循环退出后关闭
	acceptDone chan struct{}
	// done 驱动循环退出后关闭
	done chan struct{}
	// err 驱动循环的最终错误（含连接关闭错误）
	err error

	closeOnce sync.Once
}

// NewRunner 创建连接运行器并立即开始驱动
func NewRunner[TIn, TOut, TInfo any](
	muxed interfaces.MuxedConn,
	h handler.NodeHandler[TIn, TOut, handler.OutboundInfo[TInfo]],
	opts ...Option,
) *Runner[TIn, TOut, TInfo] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())

	r := &Runner[TIn, TOut, TInfo]{
		muxed:      muxed,
		handler:    h,
		events:     make(chan TOut, cfg.eventBuffer),
		injects:    make(chan TIn, cfg.injectBuffer),
		accepts:    make(chan interfaces.Substream),
		dials:      make(chan dialResult[TInfo]),
		ctx:        ctx,
		cancel:     cancel,
		acceptDone: make(chan struct{}),
		done:       make(chan struct{}),
	}

	go r.acceptLoop()
	go r.run()

	return r
}

// Events 返回应用级事件通道
//
// 驱动循环退出后通道被关闭。
func (r *Runner[TIn, TOut, TInfo]) Events() <-chan TOut {
	return r.events
}

// SendEvent 向处理器注入一个应用级事件
//
// 运行器已关闭时返回 ErrRunnerClosed。
func (r *Runner[TIn, TOut, TInfo]) SendEvent(ev TIn) error {
	select {
	case r.injects <- ev:
		return nil
	case <-r.done:
		return ErrRunnerClosed
	case <-r.ctx.Done():
		return ErrRunnerClosed
	}
}

// Close 请求优雅关闭并等待驱动循环退出
//
// 处理器先收到 Shutdown 并有机会交付已就绪的事件，
// 之后关闭底层连接。返回驱动循环与连接关闭的合并错误。
func (r *Runner[TIn, TOut, TInfo]) Close() error {
	r.closeOnce.Do(func() {
		r.cancel()
	})
	<-r.done
	return r.err
}

// acceptLoop 持续接受入站子流并交给驱动循环
func (r *Runner[TIn, TOut, TInfo]) acceptLoop() {
	defer close(r.acceptDone)

	for {
		ss, err := r.muxed.AcceptStream()
		if err != nil {
			log.Debugf("停止接受入站子流: %v", err)
			return
		}

		select {
		case r.accepts <- ss:
		case <-r.done:
			_ = ss.Reset()
			return
		}
	}
}

// run 驱动循环
//
// 每轮先排空处理器事件，再等待下一个输入。
// 适配器的方法只在这里调用，满足单调用方串行化契约。
func (r *Runner[TIn, TOut, TInfo]) run() {
	defer close(r.done)

	ctxDone := r.ctx.Done()
	acceptDone := r.acceptDone
	shuttingDown := false
	var wake <-chan time.Time

	for {
		if stop := r.drain(); stop {
			break
		}

		select {
		case ss := <-r.accepts:
			if err := r.handler.InjectSubstream(ss, handler.ListenerEndpoint[handler.OutboundInfo[TInfo]]()); err != nil {
				log.Errorf("注入入站子流失败: %v", err)
				_ = ss.Reset()
			}

		case <-acceptDone:
			acceptDone = nil
			r.handler.InjectInboundClosed()

		case ev := <-r.injects:
			r.handler.InjectEvent(ev)

		case res := <-r.dials:
			if res.err != nil {
				log.Debugf("打开出站子流失败: %v", res.err)
				if err := r.handler.InjectOutboundClosed(res.info); err != nil {
					log.Errorf("通告出站关闭失败: %v", err)
				}
				break
			}
			if err := r.handler.InjectSubstream(res.ss, handler.DialerEndpoint(res.info)); err != nil {
				log.Errorf("注入出站子流失败: %v", err)
				_ = res.ss.Reset()
			}

		case <-r.handler.Notify():

		case <-wake:

		case <-ctxDone:
			ctxDone = nil
			shuttingDown = true
			r.handler.Shutdown()
		}

		if shuttingDown {
			wake = time.After(shutdownPollInterval)
		}
	}

	r.err = multierr.Append(r.err, r.muxed.Close())
	close(r.events)
}

// drain 反复轮询处理器直到无事件可产出
//
// 返回 true 表示驱动循环应当退出（处理器终结或出错）。
func (r *Runner[TIn, TOut, TInfo]) drain() bool {
	for {
		ev, done, err := r.handler.Poll()
		if err != nil {
			r.err = err
			return true
		}
		if done {
			return true
		}

		switch ev.Kind {
		case handler.EventNone:
			return false

		case handler.EventCustom:
			r.deliver(ev.Custom)

		case handler.EventOutboundRequest:
			go r.dial(ev.Info)
		}
	}
}

// deliver 投递一个应用级事件
//
// 关闭期间若无人接收则丢弃，避免阻塞驱动循环退出。
func (r *Runner[TIn, TOut, TInfo]) deliver(ev TOut) {
	select {
	case r.events <- ev:
	case <-r.ctx.Done():
		select {
		case r.events <- ev:
		default:
			log.Debugf("运行器关闭中，丢弃未投递的事件")
		}
	}
}

// dial 打开一条出站子流并把结果交回驱动循环
func (r *Runner[TIn, TOut, TInfo]) dial(info handler.OutboundInfo[TInfo]) {
	ss, err := r.muxed.OpenStream(r.ctx)

	res := dialResult[TInfo]{info: info, ss: ss, err: err}
	select {
	case r.dials <- res:
	case <-r.done:
		if ss != nil {
			_ = ss.Reset()
		}
	}
}
