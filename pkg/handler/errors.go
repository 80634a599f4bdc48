package handler

import (
	"errors"
)

var (
	// ErrUpgradeDenied 升级被拒绝错误（DeniedUpgrade 永远返回）
	ErrUpgradeDenied = errors.New("protocol upgrade denied")

	// ErrUnknownUpgradeID 未知拨号升级 ID 错误
	//
	// 多路复用器交回的子流或关闭通知携带了队列中不存在的 ID，
	// 属于调用方契约违规，不是正常错误路径。
	ErrUnknownUpgradeID = errors.New("unknown dial upgrade id")

	// ErrNegotiationTimeout 协商超时错误
	ErrNegotiationTimeout = errors.New("negotiation timed out")

	// ErrSubstreamReset 子流被重置错误
	ErrSubstreamReset = errors.New("substream reset")

	// ErrInvalidDirection 无效的子流方向错误
	ErrInvalidDirection = errors.New("invalid substream direction")
)
