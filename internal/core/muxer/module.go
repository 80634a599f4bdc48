package muxer

import (
	"go.uber.org/fx"
)

// Module 是 muxer 的 Fx 模块
//
// 提供 *Transport，供上层在装配连接时创建多路复用连接。
var Module = fx.Module("muxer",
	fx.Provide(NewTransport),
)
