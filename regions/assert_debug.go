//go:build debug

package regions

func violated(msg string) { panic(msg) }
