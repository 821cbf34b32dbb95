package tui

import "time"

// MessageKind selects how a status message is styled
type MessageKind int

const (
	KindInfo MessageKind = iota
	KindSuccess
	KindWarning
	KindError
)

const (
	defaultMessageDuration = 1500 * time.Millisecond
	successMessageDuration = time.Second
)

// Message is a status line entry that disappears after its duration
type Message struct {
	Text    string
	Kind    MessageKind
	Created time.Time
	TTL     time.Duration
}

func (m Message) expired(now time.Time) bool {
	return now.Sub(m.Created) >= m.TTL
}

// MessageQueue shows one message at a time in arrival order.
// Messages that expire while waiting are skipped.
type MessageQueue struct {
	now     func() time.Time
	current *Message
	pending []Message
}

// NewMessageQueue creates a queue using clock for expiry; nil means time.Now
func NewMessageQueue(clock func() time.Time) *MessageQueue {
	if clock == nil {
		clock = time.Now
	}
	return &MessageQueue{now: clock}
}

// Push queues a message with the default duration for its kind
func (q *MessageQueue) Push(kind MessageKind, text string) {
	ttl := defaultMessageDuration
	if kind == KindSuccess {
		ttl = successMessageDuration
	}
	q.PushFor(kind, text, ttl)
}

// PushFor queues a message shown for at most ttl after it was pushed
func (q *MessageQueue) PushFor(kind MessageKind, text string, ttl time.Duration) {
	q.pending = append(q.pending, Message{Text: text, Kind: kind, Created: q.now(), TTL: ttl})
}

func (q *MessageQueue) Info(text string)    { q.Push(KindInfo, text) }
func (q *MessageQueue) Success(text string) { q.Push(KindSuccess, text) }
func (q *MessageQueue) Warning(text string) { q.Push(KindWarning, text) }
func (q *MessageQueue) Error(text string)   { q.Push(KindError, text) }

// Current returns the message to display now, advancing past expired ones
func (q *MessageQueue) Current() (Message, bool) {
	now := q.now()
	if q.current != nil && q.current.expired(now) {
		q.current = nil
	}
	for q.current == nil && len(q.pending) > 0 {
		next := q.pending[0]
		q.pending = q.pending[1:]
		if !next.expired(now) {
			q.current = &next
		}
	}
	if q.current == nil {
		return Message{}, false
	}
	return *q.current, true
}

// Clear drops the current message and everything queued
func (q *MessageQueue) Clear() {
	q.current = nil
	q.pending = nil
}

// Len reports how many messages are showing or waiting
func (q *MessageQueue) Len() int {
	n := len(q.pending)
	if q.current != nil {
		n++
	}
	return n
}
