package handler

import (
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// DefaultInboundTimeout 默认入站协商超时
	DefaultInboundTimeout = 10 * time.Second

	// DefaultOutboundTimeout 默认出站协商超时
	DefaultOutboundTimeout = 10 * time.Second
)

// config 协商适配器配置
type config struct {
	// inTimeout 入站协商超时
	inTimeout time.Duration

	// outTimeout 出站协商超时
	outTimeout time.Duration

	// clock 内部时钟实现（测试中可注入 mock）
	clock clock.Clock

	// onInboundFailure 入站协商失败的可选诊断回调
	//
	// 入站失败对处理器不可见（没有可报告的关联数据），
	// 默认静默丢弃；回调只用于诊断，不改变处理器可见行为。
	onInboundFailure func(error)
}

// defaultConfig 返回默认配置
func defaultConfig() *config {
	return &config{
		inTimeout:  DefaultInboundTimeout,
		outTimeout: DefaultOutboundTimeout,
		clock:      clock.New(),
	}
}

// Option 定义配置选项函数
type Option func(*config)

// WithInboundTimeout 设置入站协商超时
func WithInboundTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.inTimeout = timeout
	}
}

// WithOutboundTimeout 设置出站协商超时
func WithOutboundTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.outTimeout = timeout
	}
}

// WithClock 设置时钟实现
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

// WithInboundFailureCallback 设置入站协商失败的诊断回调
func WithInboundFailureCallback(cb func(error)) Option {
	return func(c *config) {
		c.onInboundFailure = cb
	}
}
