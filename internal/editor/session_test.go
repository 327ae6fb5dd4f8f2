package editor_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kyz7/portfolio/internal/assets"
	"github.com/Kyz7/portfolio/internal/cards"
	"github.com/Kyz7/portfolio/internal/editor"
	"github.com/Kyz7/portfolio/internal/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// appDoer drives the Fiber app in-process, no listener.
type appDoer struct {
	app *fiber.App
}

func (d appDoer) Do(req *http.Request) (*http.Response, error) {
	return d.app.Test(req, -1)
}

func newTestSession(t *testing.T) *editor.Session {
	t.Helper()
	app := testutils.SetupTestApp(t)
	s := editor.NewSession(appDoer{app: app}, "http://portfolio.test")
	assert.NoError(t, s.Load())
	return s
}

// serverCards reloads the persisted sequence through a fresh session, so
// assertions see what actually reached the store.
func serverCards(t *testing.T, s *editor.Session) []cards.Card {
	t.Helper()
	assert.NoError(t, s.Load())
	return s.Cards()
}

func assertIndicesBound(t *testing.T, s *editor.Session) {
	t.Helper()
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, i, s.BoundIndex(i), "slot %d holds a stale index attribute", i)
	}
}

func TestSessionAddAndPersist(t *testing.T) {
	s := newTestSession(t)

	assert.NoError(t, s.AddCard(cards.WidthRegular))
	assert.NoError(t, s.AddCard(cards.WidthWide))
	assertIndicesBound(t, s)

	persisted := serverCards(t, s)
	assert.Len(t, persisted, 2)
	assert.Equal(t, "Card title", persisted[0].Title)
	assert.Equal(t, "Click to edit description text.", persisted[0].Description)
	assert.True(t, persisted[0].Media.IsEmpty())
	assert.Equal(t, cards.WidthWide, persisted[1].Width)
}

func TestSessionAttachTransitions(t *testing.T) {
	s := newTestSession(t)
	assert.NoError(t, s.AddCard(cards.WidthRegular))

	t.Run("First file makes single media", func(t *testing.T) {
		err := s.AttachFiles(0, []editor.File{
			{Name: "a.jpg", ContentType: "image/jpeg", Content: []byte("img-a")},
		})
		assert.NoError(t, err)

		card, err := s.Card(0)
		assert.NoError(t, err)
		assert.Equal(t, "image", card.Media.Type())

		path, _ := card.Media.Single()
		assert.Equal(t, "/assets/images/a.jpg", path)
	})

	t.Run("Second file promotes to carousel with original first", func(t *testing.T) {
		err := s.AttachFiles(0, []editor.File{
			{Name: "b.png", ContentType: "image/png", Content: []byte("img-b")},
		})
		assert.NoError(t, err)

		card, _ := s.Card(0)
		assert.True(t, card.Media.IsCarousel())
		assert.Equal(t, []string{"/assets/images/a.jpg", "/assets/images/b.png"}, card.Media.Items())
	})

	t.Run("Transitions reached the store", func(t *testing.T) {
		persisted := serverCards(t, s)
		assert.True(t, persisted[0].Media.IsCarousel())
		assert.Equal(t, 2, persisted[0].Media.Len())
	})
}

func TestSessionAttachVideo(t *testing.T) {
	s := newTestSession(t)
	assert.NoError(t, s.AddCard(cards.WidthRegular))

	err := s.AttachFiles(0, []editor.File{
		{Name: "demo.mp4", ContentType: "video/mp4", Content: []byte("vid")},
	})
	assert.NoError(t, err)

	card, _ := s.Card(0)
	assert.Equal(t, "video", card.Media.Type())
}

func TestSessionAttachReusesExistingVariant(t *testing.T) {
	app := testutils.SetupTestApp(t)
	testutils.SeedAsset(t, "", "photo-1699999999.jpg", []byte("old"))

	s := editor.NewSession(appDoer{app: app}, "http://portfolio.test")
	assert.NoError(t, s.Load())
	assert.NoError(t, s.AddCard(cards.WidthRegular))

	err := s.AttachFiles(0, []editor.File{
		{Name: "photo.jpg", ContentType: "image/jpeg", Content: []byte("new")},
	})
	assert.NoError(t, err)

	card, _ := s.Card(0)
	path, _ := card.Media.Single()
	assert.Equal(t, "/assets/images/photo-1699999999.jpg", path, "stored variant is reused, not re-uploaded")

	_, statErr := os.Stat(filepath.Join(assets.DefaultManager().Root(), "photo.jpg"))
	assert.True(t, os.IsNotExist(statErr), "no duplicate upload should be written")
}

func TestSessionRemoveMedia(t *testing.T) {
	s := newTestSession(t)
	assert.NoError(t, s.AddCard(cards.WidthRegular))
	assert.NoError(t, s.AttachFiles(0, []editor.File{
		{Name: "1.jpg", ContentType: "image/jpeg", Content: []byte("1")},
		{Name: "2.jpg", ContentType: "image/jpeg", Content: []byte("2")},
		{Name: "3.jpg", ContentType: "image/jpeg", Content: []byte("3")},
	}))

	t.Run("Carousel over two items drops the current slide and clamps", func(t *testing.T) {
		s.SetCurrentSlide(0, 2)
		assert.NoError(t, s.RemoveMedia(0))

		card, _ := s.Card(0)
		assert.True(t, card.Media.IsCarousel())
		assert.Equal(t, []string{"/assets/images/1.jpg", "/assets/images/2.jpg"}, card.Media.Items())
		assert.Equal(t, 1, s.CurrentSlide(0), "current slide clamps to the new max")
	})

	t.Run("Two-item carousel demotes to single image", func(t *testing.T) {
		s.SetCurrentSlide(0, 0)
		assert.NoError(t, s.RemoveMedia(0))

		card, _ := s.Card(0)
		assert.Equal(t, "image", card.Media.Type())
		path, _ := card.Media.Single()
		assert.Equal(t, "/assets/images/2.jpg", path)
	})

	t.Run("Single demotes to empty", func(t *testing.T) {
		assert.NoError(t, s.RemoveMedia(0))

		card, _ := s.Card(0)
		assert.True(t, card.Media.IsEmpty())
		assert.Equal(t, 1, s.Len(), "the card itself survives")
	})

	t.Run("Empty media deletes the card", func(t *testing.T) {
		assert.NoError(t, s.RemoveMedia(0))
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, serverCards(t, s))
	})
}

func TestSessionDeleteOnEmptyShiftsLaterCards(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 3; i++ {
		assert.NoError(t, s.AddCard(cards.WidthRegular))
	}
	assert.NoError(t, s.EditTitle(0, "first"))
	assert.NoError(t, s.EditTitle(1, "second"))
	assert.NoError(t, s.EditTitle(2, "third"))

	// Delete action on a card with no media removes the card, not media.
	assert.NoError(t, s.RemoveMedia(1))

	assert.Equal(t, 2, s.Len())
	assertIndicesBound(t, s)

	persisted := serverCards(t, s)
	assert.Equal(t, "first", persisted[0].Title)
	assert.Equal(t, "third", persisted[1].Title)
}

func TestSessionDuplicate(t *testing.T) {
	s := newTestSession(t)
	assert.NoError(t, s.AddCard(cards.WidthRegular))
	assert.NoError(t, s.EditTitle(0, "origin"))
	assert.NoError(t, s.AttachFiles(0, []editor.File{
		{Name: "x.jpg", ContentType: "image/jpeg", Content: []byte("x")},
		{Name: "y.jpg", ContentType: "image/jpeg", Content: []byte("y")},
	}))
	assert.NoError(t, s.AddCard(cards.WidthWide))

	assert.NoError(t, s.DuplicateCard(0))
	assert.Equal(t, 3, s.Len())
	assertIndicesBound(t, s)

	copyCard, _ := s.Card(1)
	assert.Equal(t, "origin", copyCard.Title)
	assert.Equal(t, 2, copyCard.Media.Len())

	// The copy's media must be independent of the source's.
	assert.NoError(t, s.RemoveMedia(1))
	sourceCard, _ := s.Card(0)
	assert.Equal(t, 2, sourceCard.Media.Len())
}

func TestSessionReorder(t *testing.T) {
	s := newTestSession(t)
	for _, title := range []string{"a", "b", "c"} {
		assert.NoError(t, s.AddCard(cards.WidthRegular))
		assert.NoError(t, s.EditTitle(s.Len()-1, title))
	}

	assert.NoError(t, s.Reorder(0, 2))
	assertIndicesBound(t, s)

	persisted := serverCards(t, s)
	titles := []string{persisted[0].Title, persisted[1].Title, persisted[2].Title}
	assert.Equal(t, []string{"b", "c", "a"}, titles)
}

func TestSessionEditText(t *testing.T) {
	s := newTestSession(t)
	assert.NoError(t, s.AddCard(cards.WidthRegular))

	assert.NoError(t, s.EditTitle(0, "  Robot Arm  "))
	assert.NoError(t, s.EditDescription(0, "6-axis build log"))
	assert.NoError(t, s.EditTag(0, "Project"))

	persisted := serverCards(t, s)
	assert.Equal(t, "Robot Arm", persisted[0].Title, "edited text is trimmed")
	assert.Equal(t, "6-axis build log", persisted[0].Description)
	assert.Equal(t, "Project", persisted[0].Tag)
}

func TestSessionOutOfRange(t *testing.T) {
	s := newTestSession(t)

	assert.Error(t, s.RemoveCard(0))
	assert.Error(t, s.DuplicateCard(-1))
	assert.Error(t, s.EditTitle(5, "x"))
	assert.Error(t, s.RemoveMedia(0))
}
