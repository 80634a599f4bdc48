package negotiate

import (
	"errors"
)

var (
	// ErrNoProtocols 升级未配置任何协议错误
	ErrNoProtocols = errors.New("no protocols configured")
)
