//go:build !linux

package socket

// setRecvBuffer and setSendBuffer are no-ops on platforms where this
// module does not carry a raw-syscall tuning path. The options are
// best-effort everywhere, so silently skipping them here is sufficient.
func setRecvBuffer(fd uintptr, bytes int) {}

func setSendBuffer(fd uintptr, bytes int) {}
