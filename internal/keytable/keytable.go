// Package keytable maps input.Key values to native key codes.
//
// Tables are built once and never mutated. Lookups are linear scans; the
// native code space is not assumed to be injective (Win32 reports both shift
// keys as VK_SHIFT, for example).
package keytable

import "github.com/1broseidon/fbwin/input"

// Table holds the native code for every input.Key, indexed by key.
type Table [input.KeyCount]uint32

// Lookup returns every key whose native code equals code.
func (t *Table) Lookup(code uint32) []input.Key {
	var keys []input.Key
	for i, c := range t {
		if c == code {
			keys = append(keys, input.Key(i))
		}
	}
	return keys
}

// Native returns the native code for k, or 0 if k is not a key.
func (t *Table) Native(k input.Key) uint32 {
	if !k.Valid() {
		return 0
	}
	return t[k]
}
