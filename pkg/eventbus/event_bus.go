// Package eventbus dispatches in-process events to handlers selected by
// their parameter types.
package eventbus

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

type EventBus interface {
	Publish(args ...any)
	Subscribe(handler any)
	Unsubscribe(handler any)
	Clear()
	SubscribersCount() int
}

type EventBusWithError interface {
	EventBus
	PublishE(args ...any) error
}

var (
	ErrNoSubscribers        = errors.New("eventbus: no matching subscribers")
	ErrInvalidHandlerReturn = errors.New("eventbus: invalid handler return signature")
	ErrHandlerPanicked      = errors.New("eventbus: handler panicked")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type subscriber struct {
	handler any
	fn      reflect.Value
}

type bus struct {
	log *logrus.Logger

	mu          sync.RWMutex
	subscribers []subscriber
}

// NewEventPublisher returns a bus that is safe for concurrent use. log may be nil.
func NewEventPublisher(log *logrus.Logger) EventBusWithError {
	return &bus{log: log}
}

// MatchSignature reports whether handler can be called with args.
func MatchSignature(handler any, args []any) bool {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func || t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		param := t.In(i)
		if arg == nil {
			switch param.Kind() {
			case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				continue
			default:
				return false
			}
		}
		if !reflect.TypeOf(arg).AssignableTo(param) {
			return false
		}
	}
	return true
}

func (b *bus) matching(args []any) []subscriber {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]subscriber, 0, len(b.subscribers))
	for _, s := range b.subscribers {
		if MatchSignature(s.handler, args) {
			out = append(out, s)
		}
	}
	return out
}

func callArgs(fn reflect.Value, args []any) []reflect.Value {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(fn.Type().In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	return in
}

// call invokes one handler, converting a panic into an error.
func call(s subscriber, args []any) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanicked, s.fn.Type(), r)
		}
	}()
	return s.fn.Call(callArgs(s.fn, args)), nil
}

// Publish delivers args to every matching handler. Panics are logged and do
// not stop the remaining handlers; returned errors are ignored.
func (b *bus) Publish(args ...any) {
	handled := false
	for _, s := range b.matching(args) {
		if _, err := call(s, args); err != nil {
			if b.log != nil {
				b.log.WithField("args", fmt.Sprintf("%v", args)).Error(err.Error())
			}
			continue
		}
		handled = true
	}
	if !handled && b.log != nil {
		b.log.Warnf("eventbus.Publish: no matching subscribers for event with args: %v", args)
	}
}

// PublishE delivers args to every matching handler and joins the errors they
// return or panic with. Handlers must return nothing or a single error.
func (b *bus) PublishE(args ...any) error {
	subs := b.matching(args)
	if len(subs) == 0 {
		return ErrNoSubscribers
	}

	var errs []error
	for _, s := range subs {
		out, err := call(s, args)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		switch {
		case len(out) == 0:
		case len(out) == 1 && out[0].Type() == errorType:
			if !out[0].IsNil() {
				errs = append(errs, out[0].Interface().(error))
			}
		default:
			errs = append(errs, fmt.Errorf("%w: handler %s", ErrInvalidHandlerReturn, s.fn.Type()))
		}
	}
	return stderrors.Join(errs...)
}

func (b *bus) Subscribe(handler any) {
	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func {
		panic("eventbus: handler must be a function")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, subscriber{handler: handler, fn: fn})
}

// Unsubscribe removes the first subscription of handler. Functions are
// compared by code pointer, so distinct closures of the same literal match.
func (b *bus) Unsubscribe(handler any) {
	ptr := reflect.ValueOf(handler)
	if ptr.Kind() != reflect.Func {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subscribers {
		if s.fn.Pointer() == ptr.Pointer() {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

func (b *bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = nil
}

func (b *bus) SubscribersCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
