//go:build !debug

package regions

import "github.com/gogpu/toolpath"

func violated(msg string) { toolpath.Logger().Warn(msg) }
