package gateway

import "sync"

// AddressLocks is a process-wide registry of per-address mutual-exclusion
// primitives, lazily created on first use. A handler transacting with
// board A holds A's lock from just before writing to the gateway until the
// reply is parsed and derived state updated; locks on different addresses
// are independent, so calls to different addresses run concurrently.
//
// A sparse map with lazy insertion (rather than a fixed 254-slot array) is
// the right shape here since most deployments address a handful of boards.
type AddressLocks struct {
	locks sync.Map // int -> *sync.Mutex
}

// NewAddressLocks creates an empty lock registry.
func NewAddressLocks() *AddressLocks {
	return &AddressLocks{}
}

// mutexFor returns (creating if necessary) the mutex for an address.
func (a *AddressLocks) mutexFor(address int) *sync.Mutex {
	actual, _ := a.locks.LoadOrStore(address, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// Lock acquires the mutex for address, blocking until it is available.
func (a *AddressLocks) Lock(address int) {
	a.mutexFor(address).Lock()
}

// Unlock releases the mutex for address.
func (a *AddressLocks) Unlock(address int) {
	a.mutexFor(address).Unlock()
}

// WithLock runs fn while holding address's lock.
func (a *AddressLocks) WithLock(address int, fn func()) {
	a.Lock(address)
	defer a.Unlock(address)
	fn()
}
