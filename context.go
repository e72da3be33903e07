package gocalc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"sync/atomic"
)

var (
	// ErrAborted is returned when evaluation was cancelled.
	ErrAborted = errors.New("gocalc: evaluation aborted")
	// ErrMaxDepth is returned when rewriting did not settle.
	ErrMaxDepth = errors.New("gocalc: maximum evaluation depth exceeded")
)

const maxDepth = 1000

// MessageType is the severity of a queued message.
type MessageType uint8

const (
	MessageInfo MessageType = iota
	MessageWarning
	MessageError
)

func (t MessageType) String() string {
	switch t {
	case MessageWarning:
		return "warning"
	case MessageError:
		return "error"
	}
	return "info"
}

type Message struct {
	Type MessageType
	Text string
}

func (m Message) String() string { return m.Type.String() + ": " + m.Text }

// Context holds the state evaluators share during one evaluation: variable
// and unit registries, the message queue with its temporary scopes, and the
// abort flag. A Context is not safe for concurrent use.
type Context struct {
	done     <-chan struct{}
	aborted  atomic.Bool
	vars     map[string]Expr
	units    map[string]angleUnit
	messages []Message
	scopes   []*MessageScope
	logger   *log.Logger
	depth    int
	overflow bool
	inverse  map[FunctionID][]tableEntry
}

// NewContext returns a Context that aborts when ctx is done.
func NewContext(ctx context.Context) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		done:  ctx.Done(),
		vars:  make(map[string]Expr),
		units: defaultUnits(),
	}
}

// Abort asks the running evaluation to stop at the next check.
func (c *Context) Abort() { c.aborted.Store(true) }

func (c *Context) Aborted() bool {
	if c.aborted.Load() {
		return true
	}
	select {
	case <-c.done:
		c.aborted.Store(true)
		return true
	default:
		return false
	}
}

// SetLogger mirrors every kept message to l.
func (c *Context) SetLogger(l *log.Logger) { c.logger = l }

// ============================================================
// Variables, constants and units
// ============================================================

// SetVariable assigns value to name. A nil value removes the assignment.
func (c *Context) SetVariable(name string, value Expr) {
	if value == nil {
		delete(c.vars, name)
		return
	}
	c.vars[name] = value
}

func (c *Context) Variable(name string) (Expr, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Constant returns the named constant pi, e or euler.
func (c *Context) Constant(name string) (*Sym, bool) {
	if !constantNames[name] {
		return nil, false
	}
	return S(name), true
}

// angleUnit converts one unit of an angle to radians: factor·π, or exactly
// one radian when factor is nil.
type angleUnit struct {
	name   string
	factor *big.Rat
}

func defaultUnits() map[string]angleUnit {
	return map[string]angleUnit{
		"rad": {name: "rad"},
		"deg": {name: "deg", factor: big.NewRat(1, 180)},
		"gra": {name: "gra", factor: big.NewRat(1, 200)},
	}
}

// AngleUnit looks up a unit that measures angles.
func (c *Context) AngleUnit(name string) (*Unit, bool) {
	u, ok := c.units[name]
	if !ok {
		return nil, false
	}
	return U(u.name), true
}

// radians returns the expression equal to one u in radians.
func (u angleUnit) radians() Expr {
	if u.factor == nil {
		return N(1)
	}
	return MulOf(RatOf(u.factor), Pi())
}

// ============================================================
// Messages
// ============================================================

func (c *Context) message(t MessageType, format string, args ...interface{}) {
	m := Message{Type: t, Text: fmt.Sprintf(format, args...)}
	c.messages = append(c.messages, m)
	if len(c.scopes) == 0 && c.logger != nil {
		c.logger.Print(m.String())
	}
}

func (c *Context) Info(format string, args ...interface{}) {
	c.message(MessageInfo, format, args...)
}
func (c *Context) Warn(format string, args ...interface{}) {
	c.message(MessageWarning, format, args...)
}
func (c *Context) Error(format string, args ...interface{}) {
	c.message(MessageError, format, args...)
}

// Messages returns a copy of the queue in insertion order.
func (c *Context) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Context) ClearMessages() { c.messages = c.messages[:0] }

// MessageScope holds back the messages queued after BeginTemporary until
// End decides whether to keep them.
type MessageScope struct {
	c     *Context
	start int
	ended bool
}

// BeginTemporary opens a message scope. Scopes nest; End must be called on
// every scope, typically with defer.
func (c *Context) BeginTemporary() *MessageScope {
	s := &MessageScope{c: c, start: len(c.messages)}
	c.scopes = append(c.scopes, s)
	return s
}

// End closes the scope, keeping or discarding its messages. Inner scopes
// still open are closed with the same decision. Calling End twice has no
// effect.
func (s *MessageScope) End(keep bool) {
	if s.ended {
		return
	}
	c := s.c
	for len(c.scopes) > 0 {
		top := c.scopes[len(c.scopes)-1]
		c.scopes = c.scopes[:len(c.scopes)-1]
		top.ended = true
		if top == s {
			break
		}
	}
	if s.start > len(c.messages) {
		s.start = len(c.messages)
	}
	if !keep {
		c.messages = c.messages[:s.start]
		return
	}
	if len(c.scopes) == 0 && c.logger != nil {
		for _, m := range c.messages[s.start:] {
			c.logger.Print(m.String())
		}
	}
}
