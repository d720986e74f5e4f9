package pkcaccel

import (
	"math/big"
	"runtime"
)

// ZeroizeBytes overwrites buf with zeros and prevents compiler dead store
// elimination using runtime.KeepAlive (golang/go#33325).
//
// The garbage collector may have copied the data before, so this is best
// effort.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// ZeroizeBig wipes the words backing x and sets x to zero.
func ZeroizeBig(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(words)
	x.SetInt64(0)
}
