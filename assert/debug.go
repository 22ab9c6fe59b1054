//go:build !release

package assert

const Debug = true
