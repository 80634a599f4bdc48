// Package negotiate 实现基于 multistream-select 的协议升级
//
// 提供 handler.Upgrade 的标准实现：
// 出站侧用 SelectOneOf 提议协议列表，
// 入站侧用 MultistreamMuxer.Negotiate 从对端提议中选择。
// 协商期间以上下文截止时间约束子流 IO，结束后清除。
package negotiate

import (
	"context"
	"fmt"
	"time"

	logging "github.com/dep2p/log"
	mss "github.com/multiformats/go-multistream"

	"github.com/dep2p/go-negotiator/pkg/handler"
	"github.com/dep2p/go-negotiator/pkg/interfaces"
	"github.com/dep2p/go-negotiator/pkg/types"
)

var log = logging.Logger("negotiate")

const (
	// defaultNegotiateTimeout 默认协商超时（上下文未携带截止时间时的兜底）
	defaultNegotiateTimeout = 60 * time.Second
)

// Stream 协商完成的子流
//
// 在原始子流之上记录协商选中的协议，是本升级的协商产物。
type Stream struct {
	interfaces.Substream

	protocol types.ProtocolID
}

// Protocol 返回协商选中的协议
func (s *Stream) Protocol() types.ProtocolID {
	return s.protocol
}

// Upgrade 基于 multistream-select 的协议升级
type Upgrade struct {
	protocols []types.ProtocolID
}

// 确保实现了接口
var _ handler.Upgrade[*Stream] = (*Upgrade)(nil)

// NewUpgrade 创建协议升级
//
// protocols 是本端支持的协议列表：出站时按序提议，入站时据此选择。
func NewUpgrade(protocols ...types.ProtocolID) *Upgrade {
	return &Upgrade{protocols: protocols}
}

// Protocols 返回可协商的协议列表
func (u *Upgrade) Protocols() []types.ProtocolID {
	return append([]types.ProtocolID(nil), u.protocols...)
}

// Apply 在子流上执行协议协商
//
// 入站方向从对端提议中选择，出站方向提议本端协议列表。
// 协议不匹配时返回错误而不是挂起。
func (u *Upgrade) Apply(ctx context.Context, ss interfaces.Substream, dir types.Direction) (*Stream, error) {
	if len(u.protocols) == 0 {
		return nil, ErrNoProtocols
	}

	// 设置协商超时
	deadline := time.Now().Add(defaultNegotiateTimeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := ss.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}
	defer ss.SetDeadline(time.Time{}) // 清除超时

	var selected types.ProtocolID
	var err error

	switch dir {
	case types.DirInbound:
		// 入站侧：从对端提议中选择
		muxer := mss.NewMultistreamMuxer[types.ProtocolID]()
		for _, proto := range u.protocols {
			muxer.AddHandler(proto, nil)
		}

		selected, _, err = muxer.Negotiate(ss)
		if err != nil {
			return nil, fmt.Errorf("inbound negotiation: %w", err)
		}

	case types.DirOutbound:
		// 出站侧：提议协议列表
		selected, err = mss.SelectOneOf(u.protocols, ss)
		if err != nil {
			return nil, fmt.Errorf("outbound negotiation: %w", err)
		}

	default:
		return nil, fmt.Errorf("%w: %s", handler.ErrInvalidDirection, dir)
	}

	log.Debugf("协商完成: %s (%s)", selected, dir)
	return &Stream{Substream: ss, protocol: selected}, nil
}
