package negotiate

import (
	"net"
	"time"

	"github.com/dep2p/go-negotiator/pkg/interfaces"
)

// pipeSubstream 把 net.Conn 适配成子流（用于测试）
//
// net.Pipe 不支持半关闭，CloseRead/CloseWrite 取空操作，
// Reset 退化为 Close。
type pipeSubstream struct {
	net.Conn
}

// 确保实现接口
var _ interfaces.Substream = (*pipeSubstream)(nil)

func newPipeSubstreamPair() (interfaces.Substream, interfaces.Substream) {
	a, b := net.Pipe()
	return &pipeSubstream{Conn: a}, &pipeSubstream{Conn: b}
}

func (s *pipeSubstream) CloseRead() error  { return nil }
func (s *pipeSubstream) CloseWrite() error { return nil }

func (s *pipeSubstream) Reset() error {
	return s.Conn.Close()
}

func (s *pipeSubstream) SetDeadline(t time.Time) error {
	return s.Conn.SetDeadline(t)
}
