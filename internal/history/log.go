// Package history provides the bounded in-process conversation log.
package history

import (
	"sync"

	"github.com/drhelai/helai/internal/domain"
)

// DefaultCapacity is used when NewLog is given a non-positive capacity.
const DefaultCapacity = 500

// Log is a fixed-size ring of chat turns in insertion order. When full,
// appending overwrites the oldest turn.
type Log struct {
	buf  []domain.ChatTurn
	size int
	head int // next write position
	n    int // number of stored turns
	mu   sync.RWMutex
}

// NewLog creates a log holding at most capacity turns.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		buf:  make([]domain.ChatTurn, capacity),
		size: capacity,
	}
}

// Append stores turn and returns the turn that preceded it, if any. Both
// happen under one lock so concurrent callers see a consistent predecessor.
func (l *Log) Append(turn domain.ChatTurn) (prev domain.ChatTurn, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.n > 0 {
		prev, ok = l.buf[(l.head-1+l.size)%l.size], true
	}

	l.buf[l.head] = turn
	l.head = (l.head + 1) % l.size
	if l.n < l.size {
		l.n++
	}
	return prev, ok
}

// Last returns the most recent turn.
func (l *Log) Last() (domain.ChatTurn, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.n == 0 {
		return domain.ChatTurn{}, false
	}
	return l.buf[(l.head-1+l.size)%l.size], true
}

// Recent returns up to limit of the newest turns, oldest first. A
// non-positive limit returns every stored turn.
func (l *Log) Recent(limit int) []domain.ChatTurn {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := l.n
	if limit > 0 && limit < count {
		count = limit
	}

	out := make([]domain.ChatTurn, count)
	start := (l.head - count + l.size) % l.size
	for i := 0; i < count; i++ {
		out[i] = l.buf[(start+i)%l.size]
	}
	return out
}

// Len returns the number of stored turns.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.n
}

// Capacity returns the maximum number of stored turns.
func (l *Log) Capacity() int {
	return l.size
}

// Reset clears the log.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.buf)
	l.head = 0
	l.n = 0
}
