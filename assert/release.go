//go:build release

package assert

const Debug = false
