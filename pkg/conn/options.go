package conn

const (
	// DefaultEventBuffer 默认事件通道容量
	DefaultEventBuffer = 16
	// DefaultInjectBuffer 默认注入通道容量
	DefaultInjectBuffer = 16
)

// config 运行器配置
type config struct {
	eventBuffer  int
	injectBuffer int
}

// defaultConfig 返回默认配置
func defaultConfig() *config {
	return &config{
		eventBuffer:  DefaultEventBuffer,
		injectBuffer: DefaultInjectBuffer,
	}
}

// Option 配置选项函数
type Option func(*config)

// WithEventBuffer 设置事件通道容量
func WithEventBuffer(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.eventBuffer = n
		}
	}
}

// WithInjectBuffer 设置注入通道容量
func WithInjectBuffer(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.injectBuffer = n
		}
	}
}
