package cards

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

type Width string

const (
	WidthRegular   Width = "regular"
	WidthWide      Width = "wide"
	WidthInvisible Width = "invisible"
)

// Card is one tile in the gallery grid. The ordered card sequence is the
// single source of truth for display order; a card's array position at save
// time is its identity for that session, there is no persistent ID.
type Card struct {
	Title       string
	Description string
	Tag         string
	Width       Width
	Media       Media
	// Folder marks a project card whose media is an asset subdirectory
	// fetched on demand instead of the inline Media fields.
	Folder string
}

// Clone returns a copy safe to splice elsewhere in the sequence. The media
// item list is copied, not shared.
func (c Card) Clone() Card {
	c.Media = c.Media.clone()
	return c
}

// Media is the tagged media state of a card: empty, a single image or video,
// or a carousel of items. The wire format stays media: null|string|array plus
// a mediaType discriminator, but in memory the variant is explicit so the
// narrowing rules can't be bypassed.
type Media struct {
	kind  string // "" | "image" | "video" | "carousel"
	items []string
}

// Item is one attachable media file.
type Item struct {
	Path  string
	Video bool
}

func EmptyMedia() Media {
	return Media{}
}

func SingleMedia(path, mediaType string) Media {
	if path == "" {
		return Media{}
	}
	if mediaType != "video" {
		mediaType = "image"
	}
	return Media{kind: mediaType, items: []string{path}}
}

func CarouselMedia(paths []string) Media {
	if len(paths) == 0 {
		return Media{}
	}
	return Media{kind: "carousel", items: append([]string(nil), paths...)}
}

func (m Media) IsEmpty() bool    { return m.kind == "" }
func (m Media) IsCarousel() bool { return m.kind == "carousel" }
func (m Media) Len() int         { return len(m.items) }

// Type returns the wire mediaType: "image", "video", "carousel" or "" when
// the media is empty.
func (m Media) Type() string { return m.kind }

// Single returns the path of single image or video media.
func (m Media) Single() (string, bool) {
	if m.kind == "image" || m.kind == "video" {
		return m.items[0], true
	}
	return "", false
}

// Items returns a copy of the media paths, in slide order.
func (m Media) Items() []string {
	if m.items == nil {
		return nil
	}
	return append([]string(nil), m.items...)
}

// Attach adds files to the media, following the editor transitions: one file
// on empty media makes a single, several make a carousel, and attaching to an
// existing single promotes it to a carousel with the original item first.
func (m Media) Attach(items ...Item) Media {
	if len(items) == 0 {
		return m
	}
	paths := m.Items()
	for _, it := range items {
		paths = append(paths, it.Path)
	}
	if len(paths) == 1 {
		mediaType := "image"
		if items[0].Video {
			mediaType = "video"
		}
		return SingleMedia(paths[0], mediaType)
	}
	return CarouselMedia(paths)
}

// RemoveSlide drops the slide at i, clamped to the valid range. A carousel
// left with one item narrows to single image media holding a bare string, a
// single clears to empty. The bool reports whether anything was removed;
// false means the media was already empty and the caller should treat the
// action as a card delete instead.
func (m Media) RemoveSlide(i int) (Media, bool) {
	switch m.kind {
	case "":
		return m, false
	case "carousel":
		if len(m.items) <= 1 {
			return Media{}, true
		}
		if i < 0 {
			i = 0
		}
		if i > len(m.items)-1 {
			i = len(m.items) - 1
		}
		rest := make([]string, 0, len(m.items)-1)
		rest = append(rest, m.items[:i]...)
		rest = append(rest, m.items[i+1:]...)
		if len(rest) == 1 {
			return SingleMedia(rest[0], "image"), true
		}
		return Media{kind: "carousel", items: rest}, true
	default:
		return Media{}, true
	}
}

func (m Media) clone() Media {
	if m.items != nil {
		m.items = append([]string(nil), m.items...)
	}
	return m
}

var videoExts = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".mov":  {},
}

// IsVideoPath reports whether a media path has a video extension.
func IsVideoPath(path string) bool {
	_, ok := videoExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

type cardJSON struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tag         string          `json:"tag"`
	Width       Width           `json:"width"`
	Media       json.RawMessage `json:"media"`
	MediaType   *string         `json:"mediaType"`
	Folder      string          `json:"folder,omitempty"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	out := cardJSON{
		Title:       c.Title,
		Description: c.Description,
		Tag:         c.Tag,
		Width:       c.Width,
		Media:       json.RawMessage("null"),
		Folder:      c.Folder,
	}
	if !c.Media.IsEmpty() {
		var value interface{}
		if c.Media.IsCarousel() {
			value = c.Media.items
		} else {
			value = c.Media.items[0]
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out.Media = raw
		mediaType := c.Media.kind
		out.MediaType = &mediaType
	}
	return json.Marshal(out)
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var in cardJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	media, err := mediaFromJSON(in.Media, in.MediaType)
	if err != nil {
		return err
	}
	c.Title = in.Title
	c.Description = in.Description
	c.Tag = in.Tag
	c.Width = in.Width
	c.Media = media
	c.Folder = in.Folder
	return nil
}

func mediaFromJSON(raw json.RawMessage, mediaType *string) (Media, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Media{}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return CarouselMedia(list), nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return Media{}, err
	}
	if single == "" {
		return Media{}, nil
	}
	// Legacy data may carry a bare path without a mediaType; classify by
	// extension the way the renderer would.
	switch {
	case mediaType != nil && *mediaType == "video":
		return SingleMedia(single, "video"), nil
	case mediaType != nil && *mediaType == "image":
		return SingleMedia(single, "image"), nil
	case IsVideoPath(single):
		return SingleMedia(single, "video"), nil
	default:
		return SingleMedia(single, "image"), nil
	}
}
