package conn

import (
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dep2p/go-negotiator/internal/core/muxer"
	"github.com/dep2p/go-negotiator/pkg/handler"
	"github.com/dep2p/go-negotiator/pkg/interfaces"
	"github.com/dep2p/go-negotiator/pkg/negotiate"
	"github.com/dep2p/go-negotiator/pkg/types"
)

// testHandler 可编排的测试处理器
//
// 监听固定协议列表；注入的事件是一组要拨号的协议。
// 出站协商成功的子流作为自定义事件对外产出。
type testHandler struct {
	mu sync.Mutex

	listen   []types.ProtocolID
	queue    []handler.Event[*negotiate.Stream, string, *negotiate.Stream]
	dialErrs []error
	shutdown bool

	// onInbound 入站子流协商成功后的处理函数（独立 goroutine 执行）
	onInbound func(s *negotiate.Stream)
}

var _ handler.Handler[[]types.ProtocolID, *negotiate.Stream, *negotiate.Stream, string] = (*testHandler)(nil)

func (h *testHandler) ListenProtocol() handler.Upgrade[*negotiate.Stream] {
	return negotiate.NewUpgrade(h.listen...)
}

func (h *testHandler) InjectFullyNegotiated(s *negotiate.Stream, ep handler.Endpoint[string]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ep.Direction == types.DirInbound {
		if h.onInbound != nil {
			go h.onInbound(s)
		}
		return
	}
	h.queue = append(h.queue, handler.Event[*negotiate.Stream, string, *negotiate.Stream]{
		Kind:   handler.EventCustom,
		Custom: s,
	})
}

func (h *testHandler) InjectEvent(protocols []types.ProtocolID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, handler.Event[*negotiate.Stream, string, *negotiate.Stream]{
		Kind:    handler.EventOutboundRequest,
		Upgrade: negotiate.NewUpgrade(protocols...),
		Info:    string(protocols[0]),
	})
}

func (h *testHandler) InjectDialUpgradeError(info string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dialErrs = append(h.dialErrs, err)
}

func (h *testHandler) InjectInboundClosed() {}

func (h *testHandler) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shutdown = true
}

func (h *testHandler) Poll() (handler.Event[*negotiate.Stream, string, *negotiate.Stream], bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero handler.Event[*negotiate.Stream, string, *negotiate.Stream]
	if len(h.queue) > 0 {
		ev := h.queue[0]
		h.queue = h.queue[1:]
		return ev, false, nil
	}
	if h.shutdown {
		return zero, true, nil
	}
	return zero, false, nil
}

func (h *testHandler) dialErrors() []error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]error(nil), h.dialErrs...)
}

// testMuxedPair 建立一对互连的多路复用连接
func testMuxedPair(t *testing.T) (client, server interfaces.MuxedConn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() failed: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- c
	}()

	clientConn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	serverConn, ok := <-accepted
	if !ok {
		t.Fatal("Accept() failed")
	}

	transport := muxer.NewTransport()
	client, err = transport.NewConn(clientConn, false)
	if err != nil {
		t.Fatalf("NewConn(client) failed: %v", err)
	}
	server, err = transport.NewConn(serverConn, true)
	if err != nil {
		t.Fatalf("NewConn(server) failed: %v", err)
	}
	return client, server
}

func newTestRunner(muxed interfaces.MuxedConn, h *testHandler) *Runner[[]types.ProtocolID, *negotiate.Stream, string] {
	return NewRunner[[]types.ProtocolID, *negotiate.Stream, string](muxed, handler.NewWrapper(
		handler.Handler[[]types.ProtocolID, *negotiate.Stream, *negotiate.Stream, string](h),
	))
}

func TestRunnerEndToEndEcho(t *testing.T) {
	clientMuxed, serverMuxed := testMuxedPair(t)

	const echoProto = types.ProtocolID("/echo/1.0.0")

	serverHandler := &testHandler{
		listen: []types.ProtocolID{echoProto},
		onInbound: func(s *negotiate.Stream) {
			defer s.Close()
			io.Copy(s, s)
		},
	}
	clientHandler := &testHandler{listen: []types.ProtocolID{echoProto}}

	server := newTestRunner(serverMuxed, serverHandler)
	defer server.Close()
	client := newTestRunner(clientMuxed, clientHandler)
	defer client.Close()

	if err := client.SendEvent([]types.ProtocolID{echoProto}); err != nil {
		t.Fatalf("SendEvent() failed: %v", err)
	}

	var stream *negotiate.Stream
	select {
	case s, ok := <-client.Events():
		if !ok {
			t.Fatal("events channel closed before negotiation completed")
		}
		stream = s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for negotiated stream")
	}

	if got := stream.Protocol(); got != echoProto {
		t.Errorf("Protocol() = %q, want %q", got, echoProto)
	}

	if _, err := stream.Write([]byte("ping")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	stream.SetReadDeadline(time.Now().Add(5 * time.Second))
	buf := make([]byte, 4)
	if _, err := io.ReadFull(stream, buf); err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(buf) != "ping" {
		t.Errorf("echo = %q, want %q", buf, "ping")
	}
	stream.Close()
}

func TestRunnerProtocolMismatchReportsDialError(t *testing.T) {
	clientMuxed, serverMuxed := testMuxedPair(t)

	serverHandler := &testHandler{listen: []types.ProtocolID{"/foo/1.0.0"}}
	clientHandler := &testHandler{listen: []types.ProtocolID{"/foo/1.0.0"}}

	server := newTestRunner(serverMuxed, serverHandler)
	defer server.Close()
	client := newTestRunner(clientMuxed, clientHandler)
	defer client.Close()

	if err := client.SendEvent([]types.ProtocolID{"/bar/1.0.0"}); err != nil {
		t.Fatalf("SendEvent() failed: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if errs := clientHandler.dialErrors(); len(errs) > 0 {
			if len(errs) != 1 {
				t.Fatalf("got %d dial errors, want 1", len(errs))
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for dial upgrade error")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRunnerClose(t *testing.T) {
	clientMuxed, serverMuxed := testMuxedPair(t)
	defer serverMuxed.Close()

	h := &testHandler{listen: []types.ProtocolID{"/foo/1.0.0"}}
	r := newTestRunner(clientMuxed, h)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if !clientMuxed.IsClosed() {
		t.Error("muxed conn still open after Close")
	}
	select {
	case _, ok := <-r.Events():
		if ok {
			t.Error("unexpected event after Close")
		}
	case <-time.After(time.Second):
		t.Error("events channel not closed after Close")
	}

	if err := r.SendEvent(nil); !errors.Is(err, ErrRunnerClosed) {
		t.Errorf("SendEvent() after Close = %v, want ErrRunnerClosed", err)
	}

	// Close 幂等
	if err := r.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
