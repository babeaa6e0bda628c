package arena

import (
	"fmt"
	"unsafe"

	"github.com/jose-ambrosioo/library-management-system/errs"
	atomicutil "go.uber.org/atomic"
)

// DefaultChunkSize is the number of slots reserved by every backing chunk.
const DefaultChunkSize = 256

// no free slot
const nilIndex = -1

/*
Handle is an opaque reference to a slot.
It names the arena that issued it, the slot index plus one, so that the zero value is Nil,
and the generation the slot was stamped with when it was acquired.
A handle kept after its slot was released never matches the slot's generation again,
and a handle issued by another arena never resolves at all.
*/
type Handle struct {
	owner uint32
	slot  uint32
	gen   uint32
}

// Nil is the empty handle. It never refers to a slot.
var Nil Handle

// arena ids, shared by every instantiation of Arena
var lastArenaID = atomicutil.NewUint32(0)

func nextArenaID() uint32 {
	id := lastArenaID.Inc()
	if id == 0 {
		// 0 is reserved for Nil
		id = lastArenaID.Inc()
	}
	return id
}

func (h Handle) index() int {
	return int(h.slot) - 1
}

func (h Handle) generation() uint32 {
	return h.gen
}

// IsNil reports whether h is the empty handle.
func (h Handle) IsNil() bool {
	return h == Nil
}

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d@%d/%d", h.index(), h.gen, h.owner)
}

type slot[T any] struct {
	val  T
	gen  uint32
	live bool
	next int // next slot index on the free list
}

/*
Arena hands out fixed-size slots for values of type T.
Slots are carved out of chunks of chunkSize slots with a bump cursor; released slots are
linked into a LIFO free list and handed out again before the cursor moves.
Chunks are never moved or shrunk, so a *T returned by Get or Acquire stays valid until the
slot is released or the arena is reset.
An Arena is not safe for concurrent use.
*/
type Arena[T any] struct {
	id        uint32
	chunks    [][]slot[T]
	chunkSize int
	maxChunks int // 0 means unlimited

	cursor  int // next unused slot in the last chunk
	free    int // head of the free list
	freeLen int
	live    int

	nextGen uint32
}

// Option configures an Arena.
type Option func(cfg *options)

type options struct {
	chunkSize int
	maxChunks int
}

// WithChunkSize sets the number of slots per chunk. Non-positive values keep the default.
func WithChunkSize(n int) Option {
	return func(cfg *options) {
		if n > 0 {
			cfg.chunkSize = n
		}
	}
}

// WithMaxChunks caps the number of chunks the arena may reserve. Zero means no cap.
func WithMaxChunks(n int) Option {
	return func(cfg *options) {
		if n >= 0 {
			cfg.maxChunks = n
		}
	}
}

// New creates an empty arena. No chunk is reserved until the first Acquire.
func New[T any](opts ...Option) *Arena[T] {
	cfg := options{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Arena[T]{
		id:        nextArenaID(),
		chunkSize: cfg.chunkSize,
		maxChunks: cfg.maxChunks,
		free:      nilIndex,
		nextGen:   1,
	}
}

func (a *Arena[T]) at(index int) *slot[T] {
	return &a.chunks[index/a.chunkSize][index%a.chunkSize]
}

// number of slots ever handed out by the bump cursor
func (a *Arena[T]) bumped() int {
	if len(a.chunks) == 0 {
		return 0
	}
	return (len(a.chunks)-1)*a.chunkSize + a.cursor
}

func (a *Arena[T]) grow() error {
	if a.maxChunks > 0 && len(a.chunks) >= a.maxChunks {
		return errs.ErrSlotsExhausted.FastGenByArgs(len(a.chunks), a.chunkSize)
	}
	a.chunks = append(a.chunks, make([]slot[T], a.chunkSize))
	a.cursor = 0
	return nil
}

/*
Acquire returns a zeroed slot.
The head of the free list is reused first. Otherwise the slot under the bump cursor of the
current chunk is taken, reserving a new chunk when there is none or the current one is used up.
The only failure is running past the configured chunk cap.
*/
func (a *Arena[T]) Acquire() (Handle, *T, error) {
	var index int
	if a.free != nilIndex {
		index = a.free
		s := a.at(index)
		a.free = s.next
		a.freeLen--
	} else {
		if len(a.chunks) == 0 || a.cursor == a.chunkSize {
			if err := a.grow(); err != nil {
				return Nil, nil, err
			}
		}
		index = a.bumped()
		a.cursor++
	}

	s := a.at(index)
	s.next = nilIndex
	s.live = true
	s.gen = a.nextGen
	a.nextGen++
	if a.nextGen == 0 {
		// generation 0 would collide with slots that were never stamped
		a.nextGen = 1
	}
	a.live++
	return Handle{owner: a.id, slot: uint32(index + 1), gen: s.gen}, &s.val, nil
}

// lookup resolves h to its live slot. It reports why a handle does not resolve.
func (a *Arena[T]) lookup(h Handle) (*slot[T], error) {
	index := h.index()
	if h.owner != a.id || index < 0 || index >= a.bumped() {
		return nil, errs.ErrInvalidHandle.FastGenByArgs(h)
	}
	s := a.at(index)
	if !s.live || s.gen != h.generation() {
		return nil, errs.ErrHandleReleased.FastGenByArgs(h)
	}
	return s, nil
}

// Release pushes the slot behind h onto the free list.
// Releasing Nil, a handle of another arena or an already released handle is an error.
func (a *Arena[T]) Release(h Handle) error {
	s, err := a.lookup(h)
	if err != nil {
		return err
	}
	var zero T
	s.val = zero
	s.live = false
	s.next = a.free
	a.free = h.index()
	a.freeLen++
	a.live--
	return nil
}

// Get returns the value stored behind h, or nil if h is not live.
func (a *Arena[T]) Get(h Handle) *T {
	s, err := a.lookup(h)
	if err != nil {
		return nil
	}
	return &s.val
}

// Valid reports whether h refers to a live slot.
func (a *Arena[T]) Valid(h Handle) bool {
	_, err := a.lookup(h)
	return err == nil
}

// Reset drops every chunk and the free list. All outstanding handles become invalid.
func (a *Arena[T]) Reset() {
	a.chunks = nil
	a.cursor = 0
	a.free = nilIndex
	a.freeLen = 0
	a.live = 0
}

// Stats is a point-in-time view of how the arena's slots are partitioned.
type Stats struct {
	ChunkSize int
	Chunks    int
	Live      int // acquired and not yet released
	Free      int // on the free list
	Unused    int // never handed out, left in the current chunk
	SlotBytes uintptr
}

// Capacity is the total number of slots reserved by all chunks.
func (s Stats) Capacity() int {
	return s.Chunks * s.ChunkSize
}

// ReservedBytes approximates the memory held by the chunks, excluding anything the
// stored values point to.
func (s Stats) ReservedBytes() uint64 {
	return uint64(s.Capacity()) * uint64(s.SlotBytes)
}

// Stats reports the current slot partition. Live+Free+Unused always equals Capacity.
func (a *Arena[T]) Stats() Stats {
	st := Stats{
		ChunkSize: a.chunkSize,
		Chunks:    len(a.chunks),
		Live:      a.live,
		Free:      a.freeLen,
		SlotBytes: unsafe.Sizeof(slot[T]{}),
	}
	if len(a.chunks) > 0 {
		st.Unused = a.chunkSize - a.cursor
	}
	return st
}
