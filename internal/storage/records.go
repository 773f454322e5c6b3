package storage

import (
	"encoding/json"
	"fmt"

	"github.com/nikbrunner/tabgrid/internal/model"
)

// Top-level keys of the persisted state.
const (
	KeyBookmarks = "bookmarks"
	KeySettings  = "settings"
)

// encodeRecords serializes the store into its two top-level records.
func encodeRecords(store *model.Store) (map[string]json.RawMessage, error) {
	bookmarks := store.Bookmarks
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}

	bm, err := json.Marshal(bookmarks)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeyBookmarks, err)
	}
	st, err := json.Marshal(store.Settings)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeySettings, err)
	}

	return map[string]json.RawMessage{
		KeyBookmarks: bm,
		KeySettings:  st,
	}, nil
}

// decodeRecords builds a store from whatever records are present.
// Missing records keep their defaults; settings are decoded on top of
// the defaults so fields added later are filled in.
func decodeRecords(records map[string]json.RawMessage) (*model.Store, error) {
	store := model.NewStore()

	if raw, ok := records[KeyBookmarks]; ok && len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &store.Bookmarks); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyBookmarks, err)
		}
	}

	if raw, ok := records[KeySettings]; ok && len(raw) > 0 && string(raw) != "null" {
		settings := model.DefaultSettings()
		if err := json.Unmarshal(raw, &settings); err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeySettings, err)
		}
		store.Settings = settings
	}

	store.Normalize()
	return store, nil
}
