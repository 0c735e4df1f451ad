//go:build !linux && !windows

package platform

const nativeBackend = BackendHeadless
