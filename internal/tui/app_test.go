package tui_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/tabgrid/internal/model"
	"github.com/nikbrunner/tabgrid/internal/search"
	"github.com/nikbrunner/tabgrid/internal/session"
	"github.com/nikbrunner/tabgrid/internal/storage"
	"github.com/nikbrunner/tabgrid/internal/tui"
)

const testImage = "data:image/jpeg;base64,AAAA"

// fakeThumbnailer returns canned results and records what was asked for.
type fakeThumbnailer struct {
	icon   string
	image  string
	title  string
	icons  []string
	images []string
	titles []string
}

func (f *fakeThumbnailer) FetchImage(_ context.Context, imageURL string) string {
	f.images = append(f.images, imageURL)
	return f.image
}

func (f *fakeThumbnailer) SiteIcon(_ context.Context, siteURL string) string {
	f.icons = append(f.icons, siteURL)
	return f.icon
}

func (f *fakeThumbnailer) PageTitle(_ context.Context, pageURL string) string {
	f.titles = append(f.titles, pageURL)
	return f.title
}

// newSession returns a JSON-backed session seeded with n bookmarks.
func newSession(t *testing.T, n, columns int) *session.Session {
	t.Helper()
	s := session.Open(storage.NewJSONStorage(filepath.Join(t.TempDir(), "tabgrid.json")), zerolog.Nop())
	for i := 0; i < n; i++ {
		_, err := s.Add(model.NewBookmarkParams{
			URL:   fmt.Sprintf("https://site%d.example.com", i),
			Title: fmt.Sprintf("Site %d", i),
		})
		if err != nil {
			t.Fatalf("seed bookmark %d: %v", i, err)
		}
	}
	if err := s.UpdateSettings(columns); err != nil {
		t.Fatalf("seed settings: %v", err)
	}
	return s
}

type testEnv struct {
	app    tui.App
	sess   *session.Session
	thumbs *fakeThumbnailer
	opened []string
	copied []string
}

func newTestEnv(t *testing.T, n, columns int) *testEnv {
	t.Helper()
	env := &testEnv{
		sess:   newSession(t, n, columns),
		thumbs: &fakeThumbnailer{},
	}
	env.app = tui.NewApp(tui.AppParams{
		Session: env.sess,
		Images:  env.thumbs,
		Search: search.NewDelegator("", func(u string) error {
			env.opened = append(env.opened, u)
			return nil
		}, zerolog.Nop()),
		Open: func(u string) error {
			env.opened = append(env.opened, u)
			return nil
		},
		Copy: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
		Logger: zerolog.Nop(),
	}).WithDimensions(100, 30)
	return env
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the app and returns the command it produced.
func (e *testEnv) send(msg tea.Msg) tea.Cmd {
	updated, cmd := e.app.Update(msg)
	e.app = updated.(tui.App)
	return cmd
}

// press sends each key in order, discarding commands.
func (e *testEnv) press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		e.send(k)
	}
}

// run executes cmd and feeds the resulting messages back into the app.
// Commands produced by those messages are not run.
func (e *testEnv) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			e.run(c)
		}
		return
	}
	if msg != nil {
		e.send(msg)
	}
}

func TestApp_Navigation_HL(t *testing.T) {
	env := newTestEnv(t, 3, 5)

	env.press(runes("l"))
	if env.app.Cursor() != 1 {
		t.Errorf("after l, expected cursor 1, got %d", env.app.Cursor())
	}

	env.press(runes("l"), runes("l"))
	if env.app.Cursor() != 2 {
		t.Errorf("l at last card should stay at 2, got %d", env.app.Cursor())
	}

	env.press(runes("h"), runes("h"), runes("h"))
	if env.app.Cursor() != 0 {
		t.Errorf("h at first card should stay at 0, got %d", env.app.Cursor())
	}
}

func TestApp_Navigation_JK_MovesByRow(t *testing.T) {
	env := newTestEnv(t, 7, 3)

	env.press(runes("j"))
	if env.app.Cursor() != 3 {
		t.Errorf("after j, expected cursor 3, got %d", env.app.Cursor())
	}

	env.press(runes("j"))
	if env.app.Cursor() != 6 {
		t.Errorf("after jj, expected cursor 6, got %d", env.app.Cursor())
	}

	// No card below: stays put
	env.press(runes("j"))
	if env.app.Cursor() != 6 {
		t.Errorf("j on last row should stay at 6, got %d", env.app.Cursor())
	}

	env.press(runes("k"))
	if env.app.Cursor() != 3 {
		t.Errorf("after k, expected cursor 3, got %d", env.app.Cursor())
	}

	env.press(runes("l"), runes("l"), runes("j"))
	if env.app.Cursor() != 5 {
		t.Errorf("j into a partial row should stay at 5, got %d", env.app.Cursor())
	}
}

func TestApp_Navigation_GG_G(t *testing.T) {
	env := newTestEnv(t, 9, 4)

	env.press(runes("G"))
	if env.app.Cursor() != 8 {
		t.Errorf("after G, expected cursor 8, got %d", env.app.Cursor())
	}

	env.press(runes("g"))
	if env.app.Cursor() != 8 {
		t.Errorf("single g should not move, got %d", env.app.Cursor())
	}

	env.press(runes("g"))
	if env.app.Cursor() != 0 {
		t.Errorf("after gg, expected cursor 0, got %d", env.app.Cursor())
	}
}

func TestApp_EmptySession(t *testing.T) {
	env := newTestEnv(t, 0, 5)

	env.press(runes("l"), runes("j"), runes("G"), runes("d"))
	if env.app.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", env.app.Cursor())
	}
	if env.app.Mode() != tui.ModeNormal {
		t.Errorf("delete on empty grid should not open confirm, got mode %d", env.app.Mode())
	}
	if _, ok := env.app.Selected(); ok {
		t.Error("expected no selection")
	}
}

func TestApp_OpenSelected(t *testing.T) {
	env := newTestEnv(t, 2, 5)

	env.press(runes("l"))
	env.run(env.send(tea.KeyMsg{Type: tea.KeyEnter}))

	if len(env.opened) != 1 || env.opened[0] != "https://site1.example.com" {
		t.Errorf("expected site1 to open, got %v", env.opened)
	}
}

func TestApp_OpenFailureShowsMessage(t *testing.T) {
	env := newTestEnv(t, 1, 5)
	env.app = tui.NewApp(tui.AppParams{
		Session: env.sess,
		Open:    func(string) error { return errors.New("no browser") },
		Logger:  zerolog.Nop(),
	})

	env.run(env.send(runes("o")))

	if env.app.Message() != "Could not open https://site0.example.com" {
		t.Errorf("unexpected message %q", env.app.Message())
	}
}

func TestApp_YankURL(t *testing.T) {
	env := newTestEnv(t, 2, 5)

	env.press(runes("l"), runes("y"))

	if len(env.copied) != 1 || env.copied[0] != "https://site1.example.com" {
		t.Errorf("expected site1 URL copied, got %v", env.copied)
	}
	if env.app.Message() != "Copied https://site1.example.com" {
		t.Errorf("unexpected message %q", env.app.Message())
	}
}

func TestApp_Add_SubmitWithImage(t *testing.T) {
	env := newTestEnv(t, 1, 5)
	env.thumbs.icon = testImage
	env.thumbs.title = "Fetched Title"

	env.press(runes("a"))
	if env.app.Mode() != tui.ModeAdd {
		t.Fatalf("expected ModeAdd, got %d", env.app.Mode())
	}

	env.press(runes("https://new.example.com"))
	env.run(env.send(tea.KeyMsg{Type: tea.KeyTab}))

	if len(env.thumbs.icons) != 1 || env.thumbs.icons[0] != "https://new.example.com" {
		t.Errorf("expected site icon lookup on URL blur, got %v", env.thumbs.icons)
	}
	form := env.app.AddForm()
	if form.Form.Image() != testImage {
		t.Errorf("expected preview image to be set")
	}
	if got := form.Inputs[tui.FieldTitle].Value(); got != "Fetched Title" {
		t.Errorf("expected fetched title in input, got %q", got)
	}

	env.press(tea.KeyMsg{Type: tea.KeyEnter})

	if env.app.Mode() != tui.ModeNormal {
		t.Errorf("expected modal to close, got mode %d", env.app.Mode())
	}
	if env.sess.Len() != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", env.sess.Len())
	}
	added := env.sess.Bookmarks()[1]
	if added.Title != "Fetched Title" || added.Image != testImage {
		t.Errorf("unexpected bookmark %+v", added)
	}
	if env.app.Cursor() != 1 {
		t.Errorf("expected cursor on the new card, got %d", env.app.Cursor())
	}
}

func TestApp_Add_TypedTitleIsKept(t *testing.T) {
	env := newTestEnv(t, 0, 5)
	env.thumbs.title = "Fetched Title"

	env.press(runes("a"), runes("https://new.example.com"))
	// Leave the URL field, type a title, then let the lookup land
	cmd := env.send(tea.KeyMsg{Type: tea.KeyTab})
	env.press(runes("Mine"))
	env.run(cmd)

	if got := env.app.AddForm().Inputs[tui.FieldTitle].Value(); got != "Mine" {
		t.Errorf("typed title should win, got %q", got)
	}
}

func TestApp_Add_RequiresConfirmationWithoutImage(t *testing.T) {
	env := newTestEnv(t, 0, 5)

	env.press(runes("a"), runes("https://plain.example.com"))
	env.run(env.send(tea.KeyMsg{Type: tea.KeyTab}))

	env.press(tea.KeyMsg{Type: tea.KeyEnter})
	if env.app.Mode() != tui.ModeAdd {
		t.Fatalf("first Enter without image should keep modal open, got mode %d", env.app.Mode())
	}
	if !env.app.AddForm().Form.Warned() {
		t.Error("expected missing-image warning")
	}
	if env.sess.Len() != 0 {
		t.Errorf("nothing should be saved yet, got %d", env.sess.Len())
	}

	env.press(tea.KeyMsg{Type: tea.KeyEnter})
	if env.app.Mode() != tui.ModeNormal {
		t.Errorf("second Enter should save, got mode %d", env.app.Mode())
	}
	if env.sess.Len() != 1 {
		t.Fatalf("expected 1 bookmark, got %d", env.sess.Len())
	}
	if b := env.sess.Bookmarks()[0]; b.Title != "plain.example.com" || b.HasImage() {
		t.Errorf("unexpected bookmark %+v", b)
	}
}

func TestApp_Add_EmptyURLRejected(t *testing.T) {
	env := newTestEnv(t, 0, 5)

	env.press(runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	if env.app.Mode() != tui.ModeAdd {
		t.Errorf("expected modal to stay open, got mode %d", env.app.Mode())
	}
	if env.app.Message() != "URL is required" {
		t.Errorf("unexpected message %q", env.app.Message())
	}
	if env.sess.Len() != 0 {
		t.Errorf("expected no bookmarks, got %d", env.sess.Len())
	}
}

func TestApp_Add_CancelDropsLateResults(t *testing.T) {
	env := newTestEnv(t, 0, 5)
	env.thumbs.icon = testImage

	env.press(runes("a"), runes("https://slow.example.com"))
	pending := env.send(tea.KeyMsg{Type: tea.KeyTab})

	env.press(tea.KeyMsg{Type: tea.KeyEsc})
	if env.app.Mode() != tui.ModeNormal {
		t.Fatalf("expected Esc to close modal, got mode %d", env.app.Mode())
	}

	env.press(runes("a"))
	env.run(pending)

	if env.app.AddForm().Form.Image() != "" {
		t.Error("result from a closed dialog must not reach the new one")
	}
}

func TestApp_Add_SkipsIconWhenImageURLSet(t *testing.T) {
	env := newTestEnv(t, 0, 5)
	env.thumbs.title = "T"

	env.press(runes("a"), runes("https://x.example.com"))
	// Fill the image URL field first, then come back and leave URL
	env.press(tea.KeyMsg{Type: tea.KeyShiftTab})
	env.press(runes("https://x.example.com/pic.png"))
	env.press(tea.KeyMsg{Type: tea.KeyTab})
	env.run(env.send(tea.KeyMsg{Type: tea.KeyTab}))

	if len(env.thumbs.icons) != 0 {
		t.Errorf("site icon should not be fetched when an image URL is set, got %v", env.thumbs.icons)
	}
}

func TestApp_Add_FetchImageAction(t *testing.T) {
	env := newTestEnv(t, 0, 5)
	env.thumbs.image = testImage

	env.press(runes("a"), runes("https://x.example.com"))
	env.press(tea.KeyMsg{Type: tea.KeyShiftTab}, runes("https://x.example.com/pic.png"))
	env.run(env.send(tea.KeyMsg{Type: tea.KeyCtrlF}))

	if len(env.thumbs.images) != 1 || env.thumbs.images[0] != "https://x.example.com/pic.png" {
		t.Errorf("expected the image URL to be fetched, got %v", env.thumbs.images)
	}
	if env.app.AddForm().Form.Image() != testImage {
		t.Error("expected preview to be set")
	}

	// A failed fetch clears the preview
	env.thumbs.image = ""
	env.run(env.send(tea.KeyMsg{Type: tea.KeyCtrlF}))

	if env.app.AddForm().Form.Image() != "" {
		t.Error("failed fetch should clear the preview")
	}
	if env.app.Message() != "No image found" {
		t.Errorf("unexpected message %q", env.app.Message())
	}
}

func TestApp_Add_FetchImageFallsBackToSiteIcon(t *testing.T) {
	env := newTestEnv(t, 0, 5)
	env.thumbs.icon = testImage

	env.press(runes("a"), runes("https://x.example.com"))
	env.run(env.send(tea.KeyMsg{Type: tea.KeyCtrlF}))

	if len(env.thumbs.icons) != 1 || len(env.thumbs.images) != 0 {
		t.Errorf("expected a site icon lookup, got icons=%v images=%v", env.thumbs.icons, env.thumbs.images)
	}
	if env.app.AddForm().Form.Image() != testImage {
		t.Error("expected preview to be set")
	}
}

func TestApp_Delete_Confirm(t *testing.T) {
	env := newTestEnv(t, 3, 5)

	env.press(runes("l"), runes("d"))
	if env.app.Mode() != tui.ModeConfirmDelete {
		t.Fatalf("expected ModeConfirmDelete, got %d", env.app.Mode())
	}

	env.press(tea.KeyMsg{Type: tea.KeyEnter})

	if env.app.Mode() != tui.ModeNormal {
		t.Errorf("expected ModeNormal, got %d", env.app.Mode())
	}
	bookmarks := env.sess.Bookmarks()
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}
	if bookmarks[0].Title != "Site 0" || bookmarks[1].Title != "Site 2" {
		t.Errorf("wrong bookmark removed: %v", bookmarks)
	}
	if env.app.Message() != "Deleted Site 1" {
		t.Errorf("unexpected message %q", env.app.Message())
	}
}

func TestApp_Delete_Cancel(t *testing.T) {
	env := newTestEnv(t, 2, 5)

	env.press(runes("d"), tea.KeyMsg{Type: tea.KeyEsc})

	if env.app.Mode() != tui.ModeNormal {
		t.Errorf("expected ModeNormal, got %d", env.app.Mode())
	}
	if env.sess.Len() != 2 {
		t.Errorf("expected nothing deleted, got %d", env.sess.Len())
	}
}

func TestApp_Delete_LastCardMovesCursor(t *testing.T) {
	env := newTestEnv(t, 3, 5)

	env.press(runes("G"), runes("d"), tea.KeyMsg{Type: tea.KeyEnter})

	if env.app.Cursor() != 1 {
		t.Errorf("expected cursor clamped to 1, got %d", env.app.Cursor())
	}
}

func backspaces(n int) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, n)
	for i := range keys {
		keys[i] = tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return keys
}

func TestApp_Settings_ValidColumns(t *testing.T) {
	env := newTestEnv(t, 2, 5)

	env.press(runes(","))
	if env.app.Mode() != tui.ModeSettings {
		t.Fatalf("expected ModeSettings, got %d", env.app.Mode())
	}
	env.press(backspaces(3)...)
	env.press(runes("12"), tea.KeyMsg{Type: tea.KeyEnter})

	if env.app.Mode() != tui.ModeNormal {
		t.Errorf("expected ModeNormal, got %d", env.app.Mode())
	}
	if env.app.Columns() != 12 {
		t.Errorf("expected 12 columns, got %d", env.app.Columns())
	}
	if env.sess.Settings().Columns != 12 {
		t.Errorf("expected persisted 12 columns, got %d", env.sess.Settings().Columns)
	}
}

func TestApp_Settings_InvalidKeepsDialogOpen(t *testing.T) {
	for _, input := range []string{"0", "31", "ab", ""} {
		t.Run(input, func(t *testing.T) {
			env := newTestEnv(t, 2, 5)

			env.press(runes(","))
			env.press(backspaces(3)...)
			if input != "" {
				env.press(runes(input))
			}
			env.press(tea.KeyMsg{Type: tea.KeyEnter})

			if env.app.Mode() != tui.ModeSettings {
				t.Errorf("expected dialog to stay open, got mode %d", env.app.Mode())
			}
			if env.sess.Settings().Columns != 5 {
				t.Errorf("settings should be unchanged, got %d", env.sess.Settings().Columns)
			}
		})
	}
}

func TestApp_Filter(t *testing.T) {
	env := newTestEnv(t, 0, 5)
	for _, b := range []model.NewBookmarkParams{
		{URL: "https://github.com", Title: "GitHub"},
		{URL: "https://go.dev/doc", Title: "Go Docs"},
		{URL: "https://news.ycombinator.com", Title: "Hacker News"},
	} {
		if _, err := env.sess.Add(b); err != nil {
			t.Fatal(err)
		}
	}
	env.send(tui.StoreChangedMsg{})

	env.press(runes("/"), runes("hack"))
	if env.app.Mode() != tui.ModeFilter {
		t.Fatalf("expected ModeFilter, got %d", env.app.Mode())
	}
	cards := env.app.Cards()
	if len(cards) != 1 || cards[0].Bookmark.Title != "Hacker News" {
		t.Fatalf("expected only Hacker News, got %v", cards)
	}
	if cards[0].Index != 2 {
		t.Errorf("card should keep its list position, got %d", cards[0].Index)
	}

	env.press(tea.KeyMsg{Type: tea.KeyEnter})
	if env.app.Mode() != tui.ModeNormal || len(env.app.Cards()) != 1 {
		t.Errorf("Enter should keep the filter applied")
	}

	env.press(tea.KeyMsg{Type: tea.KeyEsc})
	if len(env.app.Cards()) != 3 {
		t.Errorf("Esc should clear the filter, got %d cards", len(env.app.Cards()))
	}
}

func TestApp_WebSearch(t *testing.T) {
	env := newTestEnv(t, 0, 5)

	env.press(runes("s"))
	if env.app.Mode() != tui.ModeWebSearch {
		t.Fatalf("expected ModeWebSearch, got %d", env.app.Mode())
	}
	env.press(runes("go generics"))
	env.run(env.send(tea.KeyMsg{Type: tea.KeyEnter}))

	if len(env.opened) != 1 || env.opened[0] != "https://duckduckgo.com/?q=go+generics" {
		t.Errorf("unexpected search URL %v", env.opened)
	}
	if env.sess.Len() != 0 {
		t.Error("web search must not change bookmarks")
	}
}

func TestApp_RefreshCardIcon(t *testing.T) {
	env := newTestEnv(t, 2, 5)
	env.thumbs.icon = testImage

	env.press(runes("l"))
	env.run(env.send(runes("r")))

	b := env.sess.Bookmarks()[1]
	if b.Image != testImage {
		t.Error("expected icon stored on the selected bookmark")
	}
	if !env.app.Cards()[1].Bookmark.HasImage() {
		t.Error("expected card to show the new image")
	}
}

func TestApp_StoreChangedRefreshesCards(t *testing.T) {
	env := newTestEnv(t, 1, 5)

	if _, err := env.sess.Add(model.NewBookmarkParams{URL: "https://late.example.com"}); err != nil {
		t.Fatal(err)
	}
	if len(env.app.Cards()) != 1 {
		t.Fatalf("cards should not change before the message, got %d", len(env.app.Cards()))
	}

	env.send(tui.StoreChangedMsg{})

	if len(env.app.Cards()) != 2 {
		t.Errorf("expected 2 cards after StoreChangedMsg, got %d", len(env.app.Cards()))
	}
}

func TestApp_HelpToggle(t *testing.T) {
	env := newTestEnv(t, 1, 5)

	env.press(runes("?"))
	if env.app.Mode() != tui.ModeHelp {
		t.Fatalf("expected ModeHelp, got %d", env.app.Mode())
	}
	env.press(tea.KeyMsg{Type: tea.KeyEsc})
	if env.app.Mode() != tui.ModeNormal {
		t.Errorf("expected ModeNormal, got %d", env.app.Mode())
	}
}

func TestApp_Quit(t *testing.T) {
	env := newTestEnv(t, 1, 5)

	cmd := env.send(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
