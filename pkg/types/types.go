// Package types 定义协商引擎的基础类型
//
// 这是整个模块的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
package types

// ============================================================================
//                              Direction - 子流方向
// ============================================================================

// Direction 子流方向
//
// 由多路复用器在交付子流时标记，并在协商完成后原样传回。
type Direction int

const (
	// DirUnknown 未知方向
	DirUnknown Direction = iota
	// DirInbound 入站子流（被动接收，Listener 侧）
	DirInbound
	// DirOutbound 出站子流（主动请求，Dialer 侧）
	DirOutbound
)

// String 返回方向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirInbound:
		return "inbound"
	case DirOutbound:
		return "outbound"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              UpgradeID - 拨号升级标识
// ============================================================================

// UpgradeID 出站升级请求的唯一标识符
//
// 由协商适配器分配，在适配器生命周期内单调递增、永不复用。
// 多路复用器交回子流或报告出站关闭时必须携带原始 ID。
type UpgradeID uint64
