package conn

import "errors"

var (
	// ErrRunnerClosed 运行器已关闭
	ErrRunnerClosed = errors.New("conn: runner closed")
)
