package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
)

// ErrNotWatchable is returned by Watch when the storage cannot report changes.
var ErrNotWatchable = errors.New("storage does not support watching")

// Store owns the ordered note collection and persists it as a whole on every
// mutation. A Store must be loaded before use.
type Store struct {
	mu       sync.RWMutex
	storage  Storage
	codec    Codec
	logger   *slog.Logger
	now      func() time.Time
	notes    []Note
	nextID   int
	darkMode bool

	subMu       sync.Mutex
	subscribers map[int]chan Event
	nextSub     int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCodec sets the snapshot encoding. Defaults to JSONCodec.
func WithCodec(c Codec) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithStoreLogger sets the logger. Defaults to a discarding logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty Store over storage. Call Load to restore the
// persisted snapshot.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage:     storage,
		codec:       JSONCodec{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
		nextID:      1,
		subscribers: make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the note sequence and the display-mode preference.
// An absent or unreadable snapshot yields an empty store; only storage I/O
// failures are returned. The ID counter never moves backwards on a reload,
// so IDs stay unique for the lifetime of the Store.
func (s *Store) Load(ctx context.Context) error {
	// Held across read and swap so a concurrent mutation cannot be
	// overwritten by an older snapshot.
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.storage.Get(ctx, NotesKey)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var notes []Note
	if ok && len(data) > 0 {
		notes, err = s.codec.Unmarshal(data)
		if err != nil {
			s.logger.Warn("snapshot is corrupt, starting empty", "error", err)
			notes = nil
		}
	}

	mode, ok, err := s.storage.Get(ctx, DarkModeKey)
	if err != nil {
		return fmt.Errorf("failed to read display mode: %w", err)
	}

	s.notes = notes
	s.nextID = max(s.nextID, nextIDFor(notes))
	s.darkMode = ok && strings.TrimSpace(string(mode)) == "true"
	s.logger.Debug("store loaded", "notes", len(notes), "next_id", s.nextID)
	return nil
}

// Add validates the draft and appends a new note with a fresh ID.
// A blank title or content returns a *ValidationError and leaves the store
// unchanged.
func (s *Store) Add(ctx context.Context, d Draft) (Note, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	if err := Validate(d); err != nil {
		return Note{}, err
	}

	color := strings.TrimSpace(d.Color)
	if color == "" {
		color = DefaultColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	n := Note{
		ID:        s.nextID,
		Title:     d.Title,
		Content:   d.Content,
		Color:     color,
		Pinned:    false,
		Tags:      NormalizeTags(d.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := append(slices.Clone(s.notes), n)
	if err := s.persist(ctx, next); err != nil {
		return Note{}, err
	}
	s.notes = next
	s.nextID++

	s.logger.Debug("note added", "id", n.ID)
	s.publish(Event{Type: EventCreate, ID: n.ID, Timestamp: now.Unix()})
	return n.clone(), nil
}

// Delete removes the note with the given ID. The snapshot is persisted
// whether or not the note existed.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := without(s.notes, id)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.notes = next

	if found {
		s.publish(Event{Type: EventDelete, ID: id, Timestamp: s.now().Unix()})
	}
	return nil
}

// DeleteAll clears the collection and resets the ID counter to 1.
func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, nil); err != nil {
		return err
	}
	s.notes = nil
	s.nextID = 1

	s.publish(Event{Type: EventClear, Timestamp: s.now().Unix()})
	return nil
}

// TogglePin flips the pinned flag of the note and bumps its updatedAt.
// It reports false, with no error, when no such note exists.
func (s *Store) TogglePin(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := slices.Clone(s.notes)
	next[i].Pinned = !next[i].Pinned
	next[i].UpdatedAt = s.timestamp()
	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	s.notes = next

	s.publish(Event{Type: EventModify, ID: id, Timestamp: next[i].UpdatedAt.Unix()})
	return true, nil
}

// Edit is a destructive read: it returns the note's editable fields and
// removes the note. Re-adding the draft yields a new note with a new ID and
// createdAt. ok is false when no such note exists.
func (s *Store) Edit(ctx context.Context, id int) (d Draft, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Draft{}, false, nil
	}
	d = s.notes[i].Draft()

	next, _ := without(s.notes, id)
	if err := s.persist(ctx, next); err != nil {
		return Draft{}, false, err
	}
	s.notes = next

	s.publish(Event{Type: EventDelete, ID: id, Timestamp: s.now().Unix()})
	return d, true, nil
}

// Replace swaps the whole collection, as done by an import. IDs must be
// positive and unique. Tags are normalized like Add and Update do.
func (s *Store) Replace(ctx context.Context, notes []Note) error {
	seen := make(map[int]struct{}, len(notes))
	next := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.ID <= 0 {
			return fmt.Errorf("%w: id %d is not positive", ErrInvalidNote, n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidNote, n.ID)
		}
		seen[n.ID] = struct{}{}
		c := n.clone()
		c.Tags = NormalizeTags(c.Tags)
		next = append(next, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.notes = next
	s.nextID = max(s.nextID, nextIDFor(next))

	s.publish(Event{Type: EventReload, Timestamp: s.now().Unix()})
	return nil
}

// Notes returns a copy of the ordered collection.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.clone()
	}
	return out
}

// Get looks up a note by ID.
func (s *Store) Get(id int) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i].clone(), true
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// NextID returns the ID the next Add will assign.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

// DarkMode returns the persisted display-mode preference.
func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// SetDarkMode persists the display-mode preference.
func (s *Store) SetDarkMode(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, DarkModeKey, []byte(strconv.FormatBool(enabled))); err != nil {
		return fmt.Errorf("failed to persist display mode: %w", err)
	}
	s.darkMode = enabled
	return nil
}

// ToggleDarkMode flips the display-mode preference and returns the new value.
func (s *Store) ToggleDarkMode(ctx context.Context) (bool, error) {
	enabled := !s.DarkMode()
	if err := s.SetDarkMode(ctx, enabled); err != nil {
		return !enabled, err
	}
	return enabled, nil
}

// Subscribe registers a listener for store events. Events are dropped for a
// subscriber whose buffer is full. The returned func unsubscribes and closes
// the channel.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

// Watch reloads the snapshot whenever the storage reports an external change
// to it, publishing an EventReload after each reload. It returns immediately;
// the watch stops when ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	w, ok := s.storage.(Watchable)
	if !ok {
		return ErrNotWatchable
	}

	changes, err := w.Watch(ctx, NotesKey)
	if err != nil {
		return fmt.Errorf("failed to watch snapshot: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-changes:
				if !ok {
					return nil
				}
				if err := s.Load(ctx); err != nil {
					s.logger.Error("reload failed", "error", err)
					continue
				}
				s.publish(Event{Type: EventReload, Timestamp: e.Timestamp})
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("watch loop panic", "error", err)
	}))
	return nil
}

func (s *Store) persist(ctx context.Context, notes []Note) error {
	data, err := s.codec.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.storage.Set(ctx, NotesKey, data); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

func (s *Store) publish(e Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- e:
		default:
			s.logger.Debug("subscriber buffer full, dropping event", "event", e.String())
		}
	}
}

// timestamp matches the millisecond precision of ISO-8601 strings written by
// browsers, so snapshots round-trip exactly.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

func without(notes []Note, id int) ([]Note, bool) {
	next := make([]Note, 0, len(notes))
	found := false
	for _, n := range notes {
		if n.ID == id {
			found = true
			continue
		}
		next = append(next, n)
	}
	return next, found
}

func nextIDFor(notes []Note) int {
	highest := 0
	for _, n := range notes {
		highest = max(highest, n.ID)
	}
	return highest + 1
}
