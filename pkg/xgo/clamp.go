package xgo

import (
	"golang.org/x/exp/constraints"
)

// Clamp 将 v 限制到 [lo, hi]；lo > hi 时返回 lo
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if lo > hi {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Or 返回 v，v 为零值时返回 def
func Or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
