package registry

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"
)

// Env holds the process facilities native operations are allowed to touch.
// Tests swap the fields for buffers and fakes.
type Env struct {
	Stdout io.Writer
	Stdin  *bufio.Reader
	Exit   func(code int)
	Now    func() time.Time
	Sleep  func(d time.Duration)
	Rand   *rand.Rand
}

// DefaultEnv returns an Env wired to the real process.
func DefaultEnv() *Env {
	return &Env{
		Stdout: os.Stdout,
		Stdin:  bufio.NewReader(os.Stdin),
		Exit:   os.Exit,
		Now:    time.Now,
		Sleep:  time.Sleep,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Handler is the Go implementation of a native operation.
type Handler func(ctx context.Context, env *Env, args Args) (any, error)

// RegisteredOperation holds a native operation and the implementation keys
// a registry descriptor may use to refer to it.
type RegisteredOperation struct {
	Name    string
	Aliases []string
	Fn      Handler
}

// Module is the interface that all operation families must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the native operation table for a single provider instance.
type Registry struct {
	Env *Env

	natives map[string]*RegisteredOperation
	aliases map[string]*RegisteredOperation
	order   []string
}

// New creates and initializes a new Registry. A nil env means DefaultEnv.
func New(env *Env) *Registry {
	if env == nil {
		env = DefaultEnv()
	}
	return &Registry{
		Env:     env,
		natives: make(map[string]*RegisteredOperation),
		aliases: make(map[string]*RegisteredOperation),
	}
}

// RegisterOperation adds a native operation under its canonical name and
// all of its aliases.
func (r *Registry) RegisterOperation(op *RegisteredOperation) {
	if op.Fn == nil {
		panic(fmt.Sprintf("native operation '%s' has no handler", op.Name))
	}
	if _, exists := r.natives[op.Name]; exists {
		panic(fmt.Sprintf("native operation with name '%s' already registered", op.Name))
	}
	for _, alias := range op.Aliases {
		if _, exists := r.aliases[alias]; exists {
			panic(fmt.Sprintf("implementation key '%s' already registered", alias))
		}
	}

	slog.Debug("Registering native operation.", "name", op.Name, "aliases", op.Aliases)
	r.natives[op.Name] = op
	r.order = append(r.order, op.Name)
	for _, alias := range op.Aliases {
		r.aliases[alias] = op
	}
}

// Resolve looks up an implementation key. Aliases are matched before
// canonical names.
func (r *Registry) Resolve(key string) (*RegisteredOperation, bool) {
	if op, ok := r.aliases[key]; ok {
		return op, true
	}
	op, ok := r.natives[key]
	return op, ok
}

// Natives returns every registered operation in registration order.
func (r *Registry) Natives() []*RegisteredOperation {
	out := make([]*RegisteredOperation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.natives[name])
	}
	return out
}
