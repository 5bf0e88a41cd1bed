package siteconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"
)

// Logger is the subset of echo's logger the store writes to.
type Logger interface {
	Warnf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// Listener receives the configuration written by a successful Save or Reset.
// Listeners run on the saving goroutine and must not call Save or Reset.
type Listener func(cfg SiteConfig)

type subscriber struct {
	id uint64
	fn Listener
}

// Store is the single owner of the persisted SiteConfig.
type Store struct {
	slot Slot
	key  string
	log  Logger

	// writeMu serializes Save and Reset so each notification carries the
	// value of the write that produced it.
	writeMu sync.Mutex

	subMu  sync.RWMutex
	subs   []subscriber
	nextID uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey sets the slot key the record is stored under (default DefaultKey).
func WithKey(key string) StoreOption {
	return func(s *Store) {
		s.key = key
	}
}

// WithLogger sets the logger used for recovered read failures.
func WithLogger(l Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore returns a Store persisting into slot.
func NewStore(slot Slot, opts ...StoreOption) *Store {
	s := &Store{
		slot: slot,
		key:  DefaultKey,
		log:  log.New("siteconfig"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted configuration merged over the defaults. A
// missing, unreadable or malformed record yields Default(); nothing is
// written back.
func (s *Store) Load(ctx context.Context) SiteConfig {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		s.log.Warnf("siteconfig: read %q: %v; using defaults", s.key, err)
		return Default()
	}
	if !ok {
		return Default()
	}
	cfg, err := mergeWithDefaults(raw)
	if err != nil {
		s.log.Warnf("siteconfig: %v; using defaults", &ParseError{Key: s.key, Err: err})
		return Default()
	}
	return cfg
}

// Save validates cfg and writes it as one record. On a validation failure it
// returns a *ValidationError and leaves the record untouched. Subscribers are
// notified before Save returns.
func (s *Store) Save(ctx context.Context, cfg SiteConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	return s.write(ctx, cfg)
}

// Reset overwrites the record with the defaults and notifies subscribers.
func (s *Store) Reset(ctx context.Context) (SiteConfig, error) {
	cfg := Default()
	if err := s.write(ctx, cfg); err != nil {
		return SiteConfig{}, err
	}
	s.log.Infof("siteconfig: %q reset to defaults", s.key)
	return cfg, nil
}

func (s *Store) write(ctx context.Context, cfg SiteConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode site config: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.slot.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write site config %q: %w", s.key, err)
	}
	s.notify(cfg)
	return nil
}

// Subscribe registers fn for every successful Save and Reset. The returned
// function removes the subscription; calling it more than once is a no-op.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Store) notify(cfg SiteConfig) {
	s.subMu.RLock()
	subs := s.subs
	s.subMu.RUnlock()
	for _, sub := range subs {
		sub.fn(cfg)
	}
}
