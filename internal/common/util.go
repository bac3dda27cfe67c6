// Package common holds small helpers shared by the client packages.
package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it on passwords once they have been sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
