//go:build deadlock
// +build deadlock

package syncutil

import (
	"github.com/sasha-s/go-deadlock"
)

// Mutex is a mutual exclusion lock.
type Mutex struct {
	deadlock.Mutex
}
