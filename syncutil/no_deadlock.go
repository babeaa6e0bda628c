//go:build !deadlock
// +build !deadlock

package syncutil

import "sync"

// Mutex is a mutual exclusion lock.
type Mutex struct {
	sync.Mutex
}
