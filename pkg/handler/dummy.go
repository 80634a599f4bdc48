package handler

// Dummy 不处理任何协议的占位处理器
//
// 监听协议为 DeniedUpgrade，从不产出事件；
// Shutdown 之后的下一次 Poll 即返回终结。
// 同时是关闭契约的最小参考实现。
type Dummy[TOutput any] struct {
	shuttingDown bool
}

// 确保实现了接口
var _ Handler[struct{}, struct{}, any, struct{}] = (*Dummy[any])(nil)

// NewDummy 创建占位处理器
func NewDummy[TOutput any]() *Dummy[TOutput] {
	return &Dummy[TOutput]{}
}

// ListenProtocol 返回拒绝一切协商的升级
func (d *Dummy[TOutput]) ListenProtocol() Upgrade[TOutput] {
	return DeniedUpgrade[TOutput]{}
}

// InjectFullyNegotiated 忽略（DeniedUpgrade 不会协商成功）
func (d *Dummy[TOutput]) InjectFullyNegotiated(TOutput, Endpoint[struct{}]) {}

// InjectEvent 忽略
func (d *Dummy[TOutput]) InjectEvent(struct{}) {}

// InjectDialUpgradeError 忽略
func (d *Dummy[TOutput]) InjectDialUpgradeError(struct{}, error) {}

// InjectInboundClosed 忽略
func (d *Dummy[TOutput]) InjectInboundClosed() {}

// Shutdown 标记关闭
func (d *Dummy[TOutput]) Shutdown() {
	d.shuttingDown = true
}

// Poll 关闭前报告无事件，关闭后终结
func (d *Dummy[TOutput]) Poll() (Event[TOutput, struct{}, struct{}], bool, error) {
	return Event[TOutput, struct{}, struct{}]{}, d.shuttingDown, nil
}
