// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package message

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	gerrors "github.com/tochemey/goactor/errors"
)

// Entry binds a wire id to a message type.
type Entry struct {
	ID   int32
	Type reflect.Type
}

// NewEntry builds an Entry from a prototype value such as new(TestRequest).
func NewEntry(id int32, prototype any) (Entry, error) {
	typ, err := baseType(prototype)
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: id, Type: typ}, nil
}

// table is immutable once published.
type table struct {
	byID        map[int32]reflect.Type
	byType      map[reflect.Type]int32
	fingerprint uint64
}

// Registry is a bijective map between message types and wire ids.
//
// Lookups load the current table with a single atomic read and never lock.
// Writers build a new table and publish it with one atomic store, so a
// reader sees either the old table or the new one, never a partial one.
type Registry struct {
	mu      sync.Mutex
	current atomic.Pointer[table]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.current.Store(newTable(nil))
	return r
}

// Register adds a single id/type pair. Both the id and the type must be new.
func (r *Registry) Register(id int32, prototype any) error {
	entry, err := NewEntry(id, prototype)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.current.Load()
	if existing, ok := old.byID[id]; ok {
		return fmt.Errorf("%w: id=(%d) type=(%s)", gerrors.ErrDuplicateMessageID, id, existing)
	}
	if existing, ok := old.byType[entry.Type]; ok {
		return fmt.Errorf("%w: type=(%s) id=(%d)", gerrors.ErrDuplicateMessageType, entry.Type, existing)
	}

	entries := old.entries()
	entries = append(entries, entry)
	r.current.Store(newTable(entries))
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// process start-up where a registration conflict is a programming error.
func (r *Registry) MustRegister(id int32, prototype any) {
	if err := r.Register(id, prototype); err != nil {
		panic(err)
	}
}

// Reload replaces the whole table. The new table is validated first; on
// error the current table stays in place.
func (r *Registry) Reload(entries []Entry) error {
	seenIDs := make(map[int32]struct{}, len(entries))
	seenTypes := make(map[reflect.Type]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Type == nil {
			return fmt.Errorf("%w: id=(%d) has no type", gerrors.ErrInvalidMessage, entry.ID)
		}
		if _, ok := seenIDs[entry.ID]; ok {
			return fmt.Errorf("%w: id=(%d)", gerrors.ErrDuplicateMessageID, entry.ID)
		}
		if _, ok := seenTypes[entry.Type]; ok {
			return fmt.Errorf("%w: type=(%s)", gerrors.ErrDuplicateMessageType, entry.Type)
		}
		seenIDs[entry.ID] = struct{}{}
		seenTypes[entry.Type] = struct{}{}
	}

	r.mu.Lock()
	r.current.Store(newTable(entries))
	r.mu.Unlock()
	return nil
}

// ResolveID returns the id registered for the type of msg. Pointer and
// value forms of the same type resolve to the same id.
func (r *Registry) ResolveID(msg any) (int32, bool) {
	typ, err := baseType(msg)
	if err != nil {
		return 0, false
	}
	id, ok := r.current.Load().byType[typ]
	return id, ok
}

// ResolveType returns the type registered under id.
func (r *Registry) ResolveType(id int32) (reflect.Type, bool) {
	typ, ok := r.current.Load().byID[id]
	return typ, ok
}

// New returns a pointer to a fresh zero value of the type registered under id.
func (r *Registry) New(id int32) (any, bool) {
	typ, ok := r.ResolveType(id)
	if !ok {
		return nil, false
	}
	return reflect.New(typ).Interface(), true
}

// Entries returns a copy of the current table sorted by id.
func (r *Registry) Entries() []Entry {
	return r.current.Load().entries()
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.current.Load().byID)
}

// Fingerprint hashes the current id/type table. Two processes built with
// the same registrations report the same fingerprint, which makes a
// mismatched deployment visible in the logs.
func (r *Registry) Fingerprint() uint64 {
	return r.current.Load().fingerprint
}

func newTable(entries []Entry) *table {
	t := &table{
		byID:   make(map[int32]reflect.Type, len(entries)),
		byType: make(map[reflect.Type]int32, len(entries)),
	}
	for _, entry := range entries {
		t.byID[entry.ID] = entry.Type
		t.byType[entry.Type] = entry.ID
	}
	t.fingerprint = fingerprint(t.entries())
	return t
}

func (t *table) entries() []Entry {
	entries := make([]Entry, 0, len(t.byID))
	for id, typ := range t.byID {
		entries = append(entries, Entry{ID: id, Type: typ})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return entries
}

func fingerprint(sorted []Entry) uint64 {
	var sb strings.Builder
	for _, entry := range sorted {
		sb.WriteString(strconv.FormatInt(int64(entry.ID), 10))
		sb.WriteByte('=')
		sb.WriteString(TypeName(entry.Type))
		sb.WriteByte(';')
	}
	return xxh3.HashString(sb.String())
}

// TypeName returns the lowercased name of a message type as used in logs
// and fingerprints.
func TypeName(typ reflect.Type) string {
	if typ == nil {
		return ""
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return strings.ToLower(strings.TrimSpace(typ.String()))
}

func baseType(v any) (reflect.Type, error) {
	if v == nil {
		return nil, gerrors.ErrInvalidMessage
	}
	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ, nil
}
