package handler

import (
	"context"
	"sync"
	"time"

	"github.com/dep2p/go-negotiator/pkg/interfaces"
	"github.com/dep2p/go-negotiator/pkg/types"
)

// mockSubstream 模拟子流（不做真实 IO，仅用于协商簿记测试）
type mockSubstream struct {
	mu       sync.Mutex
	closed   bool
	resetted bool
}

func newMockSubstream() *mockSubstream {
	return &mockSubstream{}
}

func (s *mockSubstream) Read([]byte) (int, error)    { return 0, nil }
func (s *mockSubstream) Write(p []byte) (int, error) { return len(p), nil }

func (s *mockSubstream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *mockSubstream) CloseWrite() error { return nil }
func (s *mockSubstream) CloseRead() error  { return nil }

func (s *mockSubstream) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetted = true
	return nil
}

func (s *mockSubstream) wasReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetted
}

func (s *mockSubstream) SetDeadline(time.Time) error      { return nil }
func (s *mockSubstream) SetReadDeadline(time.Time) error  { return nil }
func (s *mockSubstream) SetWriteDeadline(time.Time) error { return nil }

// 确保实现接口
var _ interfaces.Substream = (*mockSubstream)(nil)

// mockUpgrade 模拟协议升级
//
// gate 非空时 Apply 阻塞到 gate 关闭或上下文取消，用于测试超时路径。
type mockUpgrade struct {
	output string
	err    error
	gate   chan struct{}
}

func (u *mockUpgrade) Protocols() []types.ProtocolID {
	return []types.ProtocolID{"/mock/1.0.0"}
}

func (u *mockUpgrade) Apply(ctx context.Context, _ interfaces.Substream, _ types.Direction) (string, error) {
	if u.gate != nil {
		select {
		case <-u.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if u.err != nil {
		return "", u.err
	}
	return u.output, nil
}

// 确保实现接口
var _ Upgrade[string] = (*mockUpgrade)(nil)

// negotiatedRecord 一次 InjectFullyNegotiated 调用的记录
type negotiatedRecord struct {
	output   string
	endpoint Endpoint[string]
}

// dialErrorRecord 一次 InjectDialUpgradeError 调用的记录
type dialErrorRecord struct {
	info string
	err  error
}

// mockHandler 记录注入并按脚本产出事件的处理器
//
// 事件类型全部取 string，升级输出取 string。
// 注入记录加锁保护：测试会在轮询线程之外读取断言。
type mockHandler struct {
	mu sync.Mutex

	listen Upgrade[string]

	negotiated    []negotiatedRecord
	events        []string
	dialErrors    []dialErrorRecord
	inboundClosed int
	shutdownCalls int

	// queue 待产出的事件脚本，Poll 每次弹出一个
	queue []Event[string, string, string]
	// done Poll 返回终结
	done bool
	// pollErr Poll 返回的错误
	pollErr error
}

func newMockHandler() *mockHandler {
	return &mockHandler{listen: &mockUpgrade{output: "listener-ok"}}
}

// 确保实现接口
var _ Handler[string, string, string, string] = (*mockHandler)(nil)

func (h *mockHandler) ListenProtocol() Upgrade[string] {
	return h.listen
}

func (h *mockHandler) InjectFullyNegotiated(output string, ep Endpoint[string]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.negotiated = append(h.negotiated, negotiatedRecord{output: output, endpoint: ep})
}

func (h *mockHandler) InjectEvent(ev string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *mockHandler) InjectDialUpgradeError(info string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dialErrors = append(h.dialErrors, dialErrorRecord{info: info, err: err})
}

func (h *mockHandler) InjectInboundClosed() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inboundClosed++
}

func (h *mockHandler) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shutdownCalls++
	h.done = true
}

func (h *mockHandler) Poll() (Event[string, string, string], bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pollErr != nil {
		return Event[string, string, string]{}, false, h.pollErr
	}
	if len(h.queue) > 0 {
		ev := h.queue[0]
		h.queue = h.queue[1:]
		return ev, false, nil
	}
	return Event[string, string, string]{}, h.done, nil
}

// enqueueOutboundRequest 登记一条出站请求脚本
func (h *mockHandler) enqueueOutboundRequest(up Upgrade[string], info string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, Event[string, string, string]{
		Kind:    EventOutboundRequest,
		Upgrade: up,
		Info:    info,
	})
}

// enqueueCustom 登记一条自定义事件脚本
func (h *mockHandler) enqueueCustom(ev string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, Event[string, string, string]{
		Kind:   EventCustom,
		Custom: ev,
	})
}

// negotiatedRecords 返回 InjectFullyNegotiated 记录的副本
func (h *mockHandler) negotiatedRecords() []negotiatedRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]negotiatedRecord(nil), h.negotiated...)
}

// dialErrorRecords 返回 InjectDialUpgradeError 记录的副本
func (h *mockHandler) dialErrorRecords() []dialErrorRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]dialErrorRecord(nil), h.dialErrors...)
}
