// Package editor holds the client-side mutation model of the card grid: an
// in-memory mirror of the server's card sequence plus the operations the
// editing UI performs on it. Every mutation ends with a full-sequence save to
// the server; there is no batching, no debounce and no per-field diffing, so
// each discrete action is one network write.
package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/Kyz7/portfolio/internal/cards"
)

// Doer executes one HTTP request. Tests drive a Fiber app through this seam;
// production use passes *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// File is one user-picked file to attach to a card.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

type slot struct {
	card cards.Card
	// index is the value bound to the slot's data-card-index attributes.
	// It is re-derived for every slot after any structural change, because
	// attribute sync is a full re-scan, not incremental patching.
	index        int
	currentSlide int
}

// Session mirrors the saved card sequence and applies editor mutations to it.
// Overlapping saves from rapid interactions are not serialized; each one
// carries the complete current sequence, so the state self-heals on the next
// action regardless of response arrival order.
type Session struct {
	client Doer
	base   string
	slots  []*slot
}

func NewSession(client Doer, baseURL string) *Session {
	return &Session{
		client: client,
		base:   strings.TrimSuffix(baseURL, "/"),
	}
}

// Load replaces the mirror with the server's current sequence.
func (s *Session) Load() error {
	req, err := http.NewRequest(http.MethodGet, s.base+"/api/cards", nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("load cards: unexpected status %d", resp.StatusCode)
	}

	var sequence []cards.Card
	if err := json.NewDecoder(resp.Body).Decode(&sequence); err != nil {
		return err
	}

	s.slots = make([]*slot, 0, len(sequence))
	for _, card := range sequence {
		s.slots = append(s.slots, &slot{card: card})
	}
	s.renumber()
	return nil
}

func (s *Session) Len() int {
	return len(s.slots)
}

// Card returns a copy of the card at position i.
func (s *Session) Card(i int) (cards.Card, error) {
	if i < 0 || i >= len(s.slots) {
		return cards.Card{}, fmt.Errorf("card index %d out of range", i)
	}
	return s.slots[i].card.Clone(), nil
}

// BoundIndex returns the data-card-index value currently bound to slot i.
func (s *Session) BoundIndex(i int) int {
	return s.slots[i].index
}

// CurrentSlide returns the carousel position tracked for slot i.
func (s *Session) CurrentSlide(i int) int {
	return s.slots[i].currentSlide
}

// Cards snapshots the full sequence in display order.
func (s *Session) Cards() []cards.Card {
	sequence := make([]cards.Card, len(s.slots))
	for i, sl := range s.slots {
		sequence[i] = sl.card.Clone()
	}
	return sequence
}

// AddCard appends a card with placeholder text and no media.
func (s *Session) AddCard(width cards.Width) error {
	s.slots = append(s.slots, &slot{card: cards.Card{
		Title:       "Card title",
		Description: "Click to edit description text.",
		Width:       width,
		Media:       cards.EmptyMedia(),
	}})
	s.renumber()
	return s.save()
}

// RemoveCard deletes the card at i and renumbers every remaining slot.
func (s *Session) RemoveCard(i int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("card index %d out of range", i)
	}
	s.slots = append(s.slots[:i], s.slots[i+1:]...)
	s.renumber()
	return s.save()
}

// DuplicateCard clones the full field set of the card at i, deep-copying
// carousel media, and splices the copy right after the source.
func (s *Session) DuplicateCard(i int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("card index %d out of range", i)
	}
	copied := &slot{card: s.slots[i].card.Clone()}
	s.slots = append(s.slots, nil)
	copy(s.slots[i+2:], s.slots[i+1:])
	s.slots[i+1] = copied
	s.renumber()
	return s.save()
}

// Reorder moves the card at oldPos to newPos, as a completed drag-reorder.
func (s *Session) Reorder(oldPos, newPos int) error {
	if oldPos < 0 || oldPos >= len(s.slots) || newPos < 0 || newPos >= len(s.slots) {
		return fmt.Errorf("reorder %d -> %d out of range", oldPos, newPos)
	}
	moved := s.slots[oldPos]
	s.slots = append(s.slots[:oldPos], s.slots[oldPos+1:]...)
	s.slots = append(s.slots, nil)
	copy(s.slots[newPos+1:], s.slots[newPos:])
	s.slots[newPos] = moved
	s.renumber()
	return s.save()
}

func (s *Session) EditTitle(i int, text string) error {
	return s.editText(i, func(c *cards.Card) { c.Title = strings.TrimSpace(text) })
}

func (s *Session) EditDescription(i int, text string) error {
	return s.editText(i, func(c *cards.Card) { c.Description = strings.TrimSpace(text) })
}

func (s *Session) EditTag(i int, text string) error {
	return s.editText(i, func(c *cards.Card) { c.Tag = strings.TrimSpace(text) })
}

func (s *Session) editText(i int, apply func(*cards.Card)) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("card index %d out of range", i)
	}
	apply(&s.slots[i].card)
	return s.save()
}

// SetCurrentSlide tracks client-side carousel navigation; it is not persisted.
func (s *Session) SetCurrentSlide(i, n int) {
	if i < 0 || i >= len(s.slots) {
		return
	}
	max := s.slots[i].card.Media.Len() - 1
	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}
	s.slots[i].currentSlide = n
}

// AttachFiles uploads the picked files one at a time and attaches the
// resulting paths to the card at i. Each file is first checked against the
// server so an already-stored variant is reused instead of re-uploaded. A
// file that fails mid-batch stops the batch but does not roll back files
// already uploaded.
func (s *Session) AttachFiles(i int, files []File) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("card index %d out of range", i)
	}
	if len(files) == 0 {
		return nil
	}

	items := make([]cards.Item, 0, len(files))
	for _, f := range files {
		exists, path, err := s.checkFile(f.Name)
		if err != nil {
			return err
		}
		if !exists {
			path, err = s.upload(f)
			if err != nil {
				return err
			}
		}
		items = append(items, cards.Item{Path: path, Video: isVideoFile(f)})
	}

	s.slots[i].card.Media = s.slots[i].card.Media.Attach(items...)
	return s.save()
}

// RemoveMedia is the single delete action on a card's media zone. On a
// carousel it removes the current slide, narrowing to a single image when one
// item remains; on single media it clears to empty; on an already-empty card
// it deletes the card itself and renumbers the rest.
func (s *Session) RemoveMedia(i int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("card index %d out of range", i)
	}
	sl := s.slots[i]

	next, removed := sl.card.Media.RemoveSlide(sl.currentSlide)
	if !removed {
		return s.RemoveCard(i)
	}

	sl.card.Media = next
	if max := next.Len() - 1; sl.currentSlide > max {
		if max < 0 {
			max = 0
		}
		sl.currentSlide = max
	}
	return s.save()
}

// renumber re-derives every slot's index-bound attributes from its current
// array position. Called after every structural change, for all slots, not
// just the ones past the change point.
func (s *Session) renumber() {
	for i, sl := range s.slots {
		sl.index = i
	}
}

// save pushes the complete current sequence. No retry: a failed save is
// terminal for that action and the next mutation resubmits everything anyway.
func (s *Session) save() error {
	body, err := json.Marshal(s.Cards())
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, s.base+"/api/save-cards", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save cards: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (s *Session) checkFile(filename string) (bool, string, error) {
	body, err := json.Marshal(map[string]string{"filename": filename})
	if err != nil {
		return false, "", err
	}
	req, err := http.NewRequest(http.MethodPost, s.base+"/api/check-file", bytes.NewReader(body))
	if err != nil {
		return false, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, "", fmt.Errorf("check file: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Exists bool   `json:"exists"`
		Path   string `json:"path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, "", err
	}
	return result.Exists, result.Path, nil
}

func (s *Session) upload(f File) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, f.Name))
	header.Set("Content-Type", fileContentType(f))
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(f.Content); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.base+"/api/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload %s: unexpected status %d", f.Name, resp.StatusCode)
	}

	var result struct {
		Success  bool   `json:"success"`
		Path     string `json:"path"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}
	if !result.Success {
		return "", fmt.Errorf("upload %s: server reported failure", f.Name)
	}
	return result.Path, nil
}

func isVideoFile(f File) bool {
	if f.ContentType != "" {
		return strings.HasPrefix(f.ContentType, "video/")
	}
	return cards.IsVideoPath(f.Name)
}

func fileContentType(f File) string {
	if f.ContentType != "" {
		return f.ContentType
	}
	if byExt := mime.TypeByExtension(filepath.Ext(f.Name)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
