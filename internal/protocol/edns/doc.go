// Package edns owns the EDNS(0) option contract.
//
// Ownership boundary:
// - option header primitives (code + length) over the wire cursor
// - the option code registry and its opaque fallback
// - typed option codecs (Extended DNS Error)
package edns
