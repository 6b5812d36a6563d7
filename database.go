package main

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Sessions are not explicitly destroyed; entries carry a TTL so abandoned
// chats age out of the store instead of accumulating forever.
const sessionTTL = 30 * 24 * time.Hour

// SessionStore keeps one Session per chat id in badger. Get hands out a
// defaulted session for unseen chats without persisting it; only Put writes.
type SessionStore struct {
	db  *badger.DB
	log *zap.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newSessionStore(db *badger.DB, log *zap.Logger) *SessionStore {
	return &SessionStore{
		db:    db,
		log:   log,
		locks: make(map[int64]*sync.Mutex),
	}
}

// Lock serializes event processing per chat id. The bot library runs
// handlers concurrently, so every event must hold its chat's lock across
// the whole load-mutate-persist span.
func (s *SessionStore) Lock(chatID int64) {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[chatID] = l
	}
	s.mu.Unlock()
	l.Lock()
}

func (s *SessionStore) Unlock(chatID int64) {
	s.mu.Lock()
	l := s.locks[chatID]
	s.mu.Unlock()
	if l != nil {
		l.Unlock()
	}
}

func sessionKey(chatID int64) []byte {
	return []byte(fmt.Sprintf("session:%d", chatID))
}

// defaultSession is a fresh session with the calendar pointed at the
// current real-world month.
func defaultSession() Session {
	now := time.Now()
	return Session{
		CalendarYear:  now.Year(),
		CalendarMonth: int(now.Month()) - 1,
	}
}

// Get returns the stored session for chatID, or a fresh default. A read
// failure degrades to the default so one broken record cannot wedge a chat.
func (s *SessionStore) Get(chatID int64) Session {
	var session Session
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(chatID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &session); err != nil {
				return err
			}
			found = true
			return nil
		})
	})

	if err != nil && err != badger.ErrKeyNotFound {
		s.log.Warn("could not read session, using default",
			zap.Int64("chat_id", chatID), zap.Error(err))
	}
	if !found {
		return defaultSession()
	}
	return session
}

func (s *SessionStore) Put(chatID int64, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(chatID), data).WithTTL(sessionTTL)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
