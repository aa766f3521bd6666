// Package jsonstore is the default persistence collaborator: one JSON file
// per entity collection under a data directory, each file a flat list keyed
// by entity id.  Writes go through a temp-file rename so a crash never
// leaves a half-written collection.  The store is a best-effort mirror; the
// in-memory repositories remain the source of truth.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dfquintero/eventia/internal/model"
)

const (
	eventsFile       = "events.json"
	organizersFile   = "organizers.json"
	participantsFile = "participants.json"
	ticketsFile      = "tickets.json"
	paymentsFile     = "payments.json"
	usersFile        = "users.json"
)

// Store mirrors every entity collection to JSON files.
type Store struct {
	mu  sync.Mutex
	dir string

	events       map[string]model.Event
	organizers   map[string]model.Organizer
	participants map[string]model.Participant
	tickets      map[string]model.Ticket
	payments     map[string]model.Payment
	users        map[string]model.User
}

// Open creates the data directory if needed and loads any existing
// collection files.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{
		dir:          dir,
		events:       make(map[string]model.Event),
		organizers:   make(map[string]model.Organizer),
		participants: make(map[string]model.Participant),
		tickets:      make(map[string]model.Ticket),
		payments:     make(map[string]model.Payment),
		users:        make(map[string]model.User),
	}
	if err := loadInto(filepath.Join(dir, eventsFile), s.events, func(e model.Event) string { return e.ID }); err != nil {
		return nil, err
	}
	if err := loadInto(filepath.Join(dir, organizersFile), s.organizers, func(o model.Organizer) string { return o.ID }); err != nil {
		return nil, err
	}
	if err := loadInto(filepath.Join(dir, participantsFile), s.participants, func(p model.Participant) string { return p.ID }); err != nil {
		return nil, err
	}
	if err := loadInto(filepath.Join(dir, ticketsFile), s.tickets, func(t model.Ticket) string { return t.ID }); err != nil {
		return nil, err
	}
	if err := loadInto(filepath.Join(dir, paymentsFile), s.payments, func(p model.Payment) string { return p.ID }); err != nil {
		return nil, err
	}
	if err := loadInto(filepath.Join(dir, usersFile), s.users, func(u model.User) string { return u.ID }); err != nil {
		return nil, err
	}
	return s, nil
}

func loadInto[T any](path string, into map[string]T, key func(T) string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	for _, item := range list {
		into[key(item)] = item
	}
	return nil
}

// flush writes a collection as a sorted flat list via temp-file rename.
func flush[T any](dir, name string, m map[string]T) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]T, 0, len(keys))
	for _, k := range keys {
		list = append(list, m[k])
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
