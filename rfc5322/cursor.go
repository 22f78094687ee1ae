package rfc5322

import (
	"errors"
	"unicode/utf8"
)

// EndOfInput is the codepoint reported once the cursor has no more input.
const EndOfInput rune = -1

var (
	ErrInputTooLarge    = errors.New("input too large")
	ErrOutOfBounds      = errors.New("offset out of bounds")
	ErrAcceptEndOfInput = errors.New("accept called at end of input")
)

// Cursor is a codepoint window over an immutable input string. Offsets are
// byte offsets, so a saved offset can always be restored exactly; Cur and
// Peek decode runes. The cursor never reads past the end of the input;
// EndOfInput is the sole end sentinel.
type Cursor struct {
	input string
	ofs   int
	cur   rune
	succ  int
	next  rune
}

// NewCursor positions a new cursor at the start of input. Returns
// ErrInputTooLarge when input is longer than max codepoints.
func NewCursor(input string, max int) (*Cursor, error) {
	if utf8.RuneCountInString(input) > max {
		return nil, ErrInputTooLarge
	}
	c := &Cursor{input: input}
	c.refresh()
	return c, nil
}

// refresh re-derives (cur, succ, next) from the current offset.
func (c *Cursor) refresh() {
	if c.ofs >= len(c.input) {
		c.cur = EndOfInput
		c.succ = len(c.input)
		c.next = EndOfInput
		return
	}
	r, size := utf8.DecodeRuneInString(c.input[c.ofs:])
	c.cur = r
	c.succ = c.ofs + size
	if c.succ >= len(c.input) {
		c.next = EndOfInput
	} else {
		c.next, _ = utf8.DecodeRuneInString(c.input[c.succ:])
	}
}

// Pos returns the current offset.
func (c *Cursor) Pos() int { return c.ofs }

// Cur returns the codepoint at the current offset, or EndOfInput.
func (c *Cursor) Cur() rune { return c.cur }

// Peek returns the codepoint after the current one, or EndOfInput.
func (c *Cursor) Peek() rune { return c.next }

// Jump moves the cursor to offset p. Only offsets previously obtained from
// Pos (or 0 and the input length) are meaningful.
func (c *Cursor) Jump(p int) error {
	if p < 0 || p > len(c.input) {
		return ErrOutOfBounds
	}
	c.ofs = p
	c.refresh()
	return nil
}

// Accept consumes the current codepoint and returns the one that takes its
// place. Fails at end of input.
func (c *Cursor) Accept() (rune, error) {
	if c.cur == EndOfInput {
		return EndOfInput, ErrAcceptEndOfInput
	}
	c.ofs = c.succ
	c.refresh()
	return c.cur, nil
}

// Skip advances while pred holds for the current codepoint and its
// successor, returning the first codepoint that did not match.
func (c *Cursor) Skip(pred func(cur, next rune) bool) rune {
	for c.cur != EndOfInput && pred(c.cur, c.next) {
		c.ofs = c.succ
		c.refresh()
	}
	return c.cur
}

// Slice returns the input text over [a, b). Both offsets must have come
// from Pos.
func (c *Cursor) Slice(a, b int) string {
	return c.input[a:b]
}

// Txn is a scoped save of the cursor offset, the backtracking primitive of
// the grammar. Rollback restores the most recently committed offset
// (initially the offset at Begin) and is intended to be deferred; Commit on
// the success path makes the deferred Rollback a no-op.
type Txn struct {
	c     *Cursor
	saved int
	done  bool
}

// Begin opens a transaction at the current offset.
func (c *Cursor) Begin() *Txn {
	return &Txn{c: c, saved: c.ofs}
}

// Commit keeps everything consumed so far: a later Rollback returns here
// rather than to the transaction start. List productions call it after
// every element, so a trailing malformed element leaves the cursor just
// after the last good one.
func (t *Txn) Commit() {
	t.saved = t.c.ofs
}

// Rollback restores the last committed offset. Only the first call acts.
func (t *Txn) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.c.ofs = t.saved
	t.c.refresh()
}

// accept commits tx and returns v unchanged, to close out a successful
// production in one expression.
func accept[T any](tx *Txn, v T) T {
	tx.Commit()
	return v
}
