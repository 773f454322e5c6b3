// Package session owns the bookmark list and settings for the lifetime of
// the process. State is loaded once, every mutation is written back in
// full, and a change listener is notified so the grid can re-render.
package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/storage"
)

// Session is the only mutation surface for bookmarks and settings.
type Session struct {
	mu       sync.Mutex
	storage  storage.Storage
	store    *model.Store
	log      zerolog.Logger
	onChange func()
}

// Open loads state from st. A load failure is logged and the session
// starts from defaults; it never prevents startup.
func Open(st storage.Storage, log zerolog.Logger) *Session {
	s := &Session{
		storage: st,
		store:   model.NewStore(),
		log:     log,
	}
	s.load()
	return s
}

func (s *Session) load() {
	if s.storage == nil {
		return
	}
	loaded, err := s.storage.Load()
	if err != nil {
		s.log.Error().Err(err).Msg("load failed, continuing with defaults")
		return
	}
	loaded.Normalize()
	s.store = loaded
	s.log.Debug().
		Int("bookmarks", len(loaded.Bookmarks)).
		Int("columns", loaded.Settings.Columns).
		Msg("state loaded")
}

// save writes the whole state. Failures are logged and returned; the
// in-memory state stays as it is.
func (s *Session) save() error {
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Save(s.store); err != nil {
		s.log.Error().Err(err).Msg("save failed, changes are not durable")
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// OnChange registers fn to be called after every mutation.
// Only one listener is kept; nil removes it.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// commit persists and then notifies the listener. It must be called with
// s.mu held and releases it before the listener runs.
func (s *Session) commit() error {
	err := s.save()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
	return err
}

// Bookmarks returns a copy of the ordered bookmark list.
func (s *Session) Bookmarks() []model.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Bookmark, len(s.store.Bookmarks))
	copy(out, s.store.Bookmarks)
	return out
}

// Bookmark returns the bookmark with the given ID.
func (s *Session) Bookmark(id string) (model.Bookmark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.store.GetBookmarkByID(id)
	if b == nil {
		return model.Bookmark{}, false
	}
	return *b, true
}

// Len returns the number of bookmarks.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store.Bookmarks)
}

// Settings returns the current settings.
func (s *Session) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Settings
}

// Snapshot returns a deep copy of the whole state.
func (s *Session) Snapshot() *model.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clone()
}

// Add appends a new bookmark and persists. The returned error is non-nil
// only when the bookmark was rejected or the save failed; in the latter
// case the bookmark is still part of the session.
func (s *Session) Add(params model.NewBookmarkParams) (model.Bookmark, error) {
	params.URL = strings.TrimSpace(params.URL)
	if params.URL == "" {
		return model.Bookmark{}, ErrEmptyURL
	}
	params.Title = model.ResolveTitle(params.Title, "", params.URL)

	b := model.NewBookmark(params)

	s.mu.Lock()
	s.store.Append(b)
	s.log.Info().Str("id", b.ID).Str("url", b.URL).Bool("image", b.HasImage()).Msg("bookmark added")
	return b, s.commit()
}

// Delete removes the bookmark with the given ID.
func (s *Session) Delete(id string) (model.Bookmark, error) {
	s.mu.Lock()
	removed, err := s.store.Remove(id)
	if err != nil {
		s.mu.Unlock()
		return model.Bookmark{}, err
	}
	s.log.Info().Str("id", removed.ID).Str("url", removed.URL).Msg("bookmark deleted")
	return removed, s.commit()
}

// DeleteAt removes the bookmark at the given position.
func (s *Session) DeleteAt(index int) (model.Bookmark, error) {
	s.mu.Lock()
	removed, err := s.store.RemoveAt(index)
	if err != nil {
		s.mu.Unlock()
		return model.Bookmark{}, err
	}
	s.log.Info().Int("index", index).Str("id", removed.ID).Msg("bookmark deleted")
	return removed, s.commit()
}

// UpdateSettings sets the column count. Out-of-range values return
// model.ErrColumnsOutOfRange and leave settings and storage untouched.
func (s *Session) UpdateSettings(columns int) error {
	s.mu.Lock()
	if err := s.store.SetColumns(columns); err != nil {
		s.mu.Unlock()
		return err
	}
	s.log.Info().Int("columns", columns).Msg("settings updated")
	return s.commit()
}

// SetImage replaces a bookmark's thumbnail.
func (s *Session) SetImage(id, image string) error {
	s.mu.Lock()
	if err := s.store.SetImage(id, image); err != nil {
		s.mu.Unlock()
		return err
	}
	return s.commit()
}

// Import merges bookmarks whose URL is not yet present and persists once.
func (s *Session) Import(bookmarks []model.Bookmark) (added, skipped int, err error) {
	s.mu.Lock()
	added, skipped = s.store.ImportMerge(bookmarks)
	if added == 0 {
		s.mu.Unlock()
		return 0, skipped, nil
	}
	s.log.Info().Int("added", added).Int("skipped", skipped).Msg("bookmarks imported")
	return added, skipped, s.commit()
}
