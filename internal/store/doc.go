// Package store owns the two on-disk JSON documents — the user-authoritative
// Configuration and the derived, eventually-consistent State — along with
// the normalisation rules applied on load and on every configuration POST.
//
// Configuration and State are never merged: a failed configuration write
// never touches state.json, and a device poll never mutates config.json.
package store
