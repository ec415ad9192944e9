// Package collab holds small external collaborators (a parity check and a
// user lookup) behind seams that tests can replace.
package collab

import (
	"context"
	"errors"
	"fmt"
)

// ParityFunc decides whether n is even.
type ParityFunc func(n int) bool

// IsEven reports whether n is even.
func IsEven(n int) bool { return n%2 == 0 }

// DefaultParity is used by a Greeter without its own ParityFunc.
var DefaultParity ParityFunc = IsEven

// ErrUserNotFound is returned by lookups for an unknown id.
var ErrUserNotFound = errors.New("user not found")

// Profile is the public part of a user.
type Profile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserLookup fetches a profile by id.
type UserLookup interface {
	FetchUser(ctx context.Context, id int) (Profile, error)
}

// LookupFunc adapts a function to UserLookup.
type LookupFunc func(ctx context.Context, id int) (Profile, error)

func (f LookupFunc) FetchUser(ctx context.Context, id int) (Profile, error) { return f(ctx, id) }

// StaticLookup serves profiles from a fixed map.
type StaticLookup map[int]Profile

func (s StaticLookup) FetchUser(ctx context.Context, id int) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	p, ok := s[id]
	if !ok {
		return Profile{}, fmt.Errorf("id %d: %w", id, ErrUserNotFound)
	}
	return p, nil
}

// Greeter builds greetings from looked up profiles.
type Greeter struct {
	Users  UserLookup
	Parity ParityFunc
}

// NewGreeter returns a Greeter. A nil parity uses DefaultParity at call time.
func NewGreeter(users UserLookup, parity ParityFunc) *Greeter {
	return &Greeter{Users: users, Parity: parity}
}

// Greet returns "Hello, <name>", tagged with " (even id)" for even ids.
func (g *Greeter) Greet(ctx context.Context, id int) (string, error) {
	p, err := g.Users.FetchUser(ctx, id)
	if err != nil {
		return "", fmt.Errorf("greet %d: %w", id, err)
	}
	msg := "Hello, " + p.Name
	parity := g.Parity
	if parity == nil {
		parity = DefaultParity
	}
	if parity(id) {
		msg += " (even id)"
	}
	return msg, nil
}
