package model

import (
	"errors"
	"fmt"
)

var (
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrIndexOutOfRange   = errors.New("bookmark index out of range")
	ErrColumnsOutOfRange = fmt.Errorf("columns must be between %d and %d", MinColumns, MaxColumns)
)

// Store holds the ordered bookmark list and the grid settings.
type Store struct {
	Bookmarks []Bookmark `json:"bookmarks"`
	Settings  Settings   `json:"settings"`
}

// NewStore creates an empty Store with default settings.
func NewStore() *Store {
	return &Store{
		Bookmarks: []Bookmark{},
		Settings:  DefaultSettings(),
	}
}

// Append adds b to the end of the list.
func (s *Store) Append(b Bookmark) {
	s.Bookmarks = append(s.Bookmarks, b)
}

// RemoveAt deletes the bookmark at index and returns it.
func (s *Store) RemoveAt(index int) (Bookmark, error) {
	if index < 0 || index >= len(s.Bookmarks) {
		return Bookmark{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.Bookmarks))
	}
	removed := s.Bookmarks[index]
	s.Bookmarks = append(s.Bookmarks[:index:index], s.Bookmarks[index+1:]...)
	return removed, nil
}

// Remove deletes the bookmark with the given ID and returns it.
func (s *Store) Remove(id string) (Bookmark, error) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	return s.RemoveAt(idx)
}

// IndexOf returns the position of the bookmark with the given ID, or -1.
func (s *Store) IndexOf(id string) int {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return i
		}
	}
	return -1
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id string) *Bookmark {
	if i := s.IndexOf(id); i >= 0 {
		return &s.Bookmarks[i]
	}
	return nil
}

// SetImage replaces the thumbnail of the bookmark with the given ID.
func (s *Store) SetImage(id, image string) error {
	b := s.GetBookmarkByID(id)
	if b == nil {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	b.Image = image
	return nil
}

// SetColumns updates the column count. Out-of-range values leave the
// settings untouched.
func (s *Store) SetColumns(columns int) error {
	if !ValidColumns(columns) {
		return ErrColumnsOutOfRange
	}
	s.Settings.Columns = columns
	return nil
}

// HasBookmarkURL checks if a bookmark with the given URL already exists.
func (s *Store) HasBookmarkURL(url string) bool {
	for _, b := range s.Bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

// ImportMerge appends bookmarks whose URL is not already present.
// Returns the number added and skipped.
func (s *Store) ImportMerge(bookmarks []Bookmark) (added, skipped int) {
	for _, b := range bookmarks {
		if s.HasBookmarkURL(b.URL) {
			skipped++
			continue
		}
		if b.ID == "" {
			b.ID = GenerateID()
		}
		s.Append(b)
		added++
	}
	return added, skipped
}

// Normalize repairs data loaded from disk: missing IDs are assigned and
// an invalid column count falls back to the default.
func (s *Store) Normalize() {
	if s.Bookmarks == nil {
		s.Bookmarks = []Bookmark{}
	}
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == "" {
			s.Bookmarks[i].ID = GenerateID()
		}
	}
	if !ValidColumns(s.Settings.Columns) {
		s.Settings.Columns = DefaultColumns
	}
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		Bookmarks: make([]Bookmark, len(s.Bookmarks)),
		Settings:  s.Settings,
	}
	copy(c.Bookmarks, s.Bookmarks)
	return c
}
