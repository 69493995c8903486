// Package hashutil provides deterministic string hashing used to derive
// stable visual attributes (series colours) from names.
//
// Mixing uses the splitmix64 finalizer by Vigna (2014), which provides
// full-avalanche mixing across all 64 bits.
package hashutil

import "hash/fnv"

// Splitmix64 finalizer constants.
const (
	mixShift1 = 30
	mixMul1   = 0xbf58476d1ce4e5b9
	mixShift2 = 27
	mixMul2   = 0x94d049bb133111eb
	mixShift3 = 31
)

// Mix64 applies the splitmix64 finalizer for full-avalanche mixing.
func Mix64(v uint64) uint64 {
	v ^= v >> mixShift1
	v *= mixMul1
	v ^= v >> mixShift2
	v *= mixMul2
	v ^= v >> mixShift3

	return v
}

// FNV64a computes a 64-bit FNV-1a hash of the given data.
func FNV64a(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)

	return h.Sum64()
}

// String hashes s with FNV-1a and mixes the result, so that names that
// differ in a single trailing byte still land far apart.
func String(s string) uint64 {
	return Mix64(FNV64a([]byte(s)))
}

// Bucket maps s onto [0, n). n must be positive.
func Bucket(s string, n int) int {
	return int(String(s) % uint64(n))
}
