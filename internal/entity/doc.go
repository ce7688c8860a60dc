// Package entity resolves a command target — an id, or an
// (address, sub-index) pair — against the current configuration. Resolution
// is pure: it never mutates the configuration and never talks to the
// gateway.
package entity
