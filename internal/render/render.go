// Package render maps card records to grid markup. The live editor page and
// the static build both go through Card so the two call sites emit
// byte-identical fragments for the same record.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/Kyz7/portfolio/internal/cards"
)

var tagClasses = map[string]string{
	"SKILL":      "card__tag--skill",
	"PROJECT":    "card__tag--project",
	"PERSONAL":   "card__tag--personal",
	"EXPERIENCE": "card__tag--experience",
	"EXPERIMENT": "card__tag--experiment",
}

// Grid renders the whole ordered sequence. Index-bound attributes are derived
// from array position here, every time, never patched incrementally.
func Grid(sequence []cards.Card) string {
	fragments := make([]string, len(sequence))
	for i, card := range sequence {
		fragments[i] = Card(card, i)
	}
	return strings.Join(fragments, "\n")
}

// Card renders one tile. Title, description and tag text are sanitized when
// saved and injected as-is; attribute values are escaped here.
func Card(c cards.Card, index int) string {
	class := "card"
	switch c.Width {
	case cards.WidthWide:
		class += " card--wide"
	case cards.WidthInvisible:
		class += " card--invisible"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s" data-card-index="%d"`, class, index)
	if c.Tag != "" {
		fmt.Fprintf(&b, ` data-category="%s"`, html.EscapeString(strings.ToLower(c.Tag)))
	}
	if c.Folder != "" {
		fmt.Fprintf(&b, ` data-folder="%s"`, html.EscapeString(c.Folder))
	}
	b.WriteString(">\n")

	b.WriteString(mediaHTML(c.Media, index))

	title := c.Title
	if title == "" {
		title = "Card title"
	}

	b.WriteString(`  <div class="card__content">` + "\n")
	b.WriteString(`    <div class="card__header">` + "\n")
	fmt.Fprintf(&b, `      <h3 class="card__title" data-card-index="%d">%s</h3>`+"\n", index, title)
	fmt.Fprintf(&b, `      <span class="%s" data-card-index="%d">%s</span>`+"\n", tagClass(c.Tag), index, c.Tag)
	b.WriteString(`    </div>` + "\n")
	fmt.Fprintf(&b, `    <p class="card__description" data-card-index="%d">%s</p>`+"\n", index, c.Description)
	b.WriteString(`  </div>` + "\n")
	b.WriteString(`</div>`)

	return b.String()
}

// tagClass resolves the styling class case-insensitively; unrecognized tags
// fall back to the default style but keep their original-case display text.
func tagClass(tag string) string {
	t := strings.ToUpper(strings.TrimSpace(tag))
	if t == "" {
		return "card__tag card__tag--empty"
	}
	if class, ok := tagClasses[t]; ok {
		return "card__tag " + class
	}
	return "card__tag"
}

func mediaHTML(m cards.Media, index int) string {
	var b strings.Builder

	switch {
	case m.IsCarousel():
		items := m.Items()
		fmt.Fprintf(&b, `  <div class="card__image card__image--carousel" data-card-index="%d" data-current-slide="0" data-total-slides="%d">`+"\n", index, len(items))
		b.WriteString(`    <div class="carousel__track" style="transform: translateX(0px);">` + "\n")
		for _, item := range items {
			if cards.IsVideoPath(item) {
				fmt.Fprintf(&b, `      <div class="carousel__slide"><video src="%s" autoplay loop muted playsinline></video></div>`+"\n", html.EscapeString(item))
			} else {
				fmt.Fprintf(&b, `      <div class="carousel__slide"><img src="%s" alt=""></div>`+"\n", html.EscapeString(item))
			}
		}
		b.WriteString(`    </div>` + "\n")
		b.WriteString(`  </div>` + "\n")

	case m.Type() == "video":
		path, _ := m.Single()
		fmt.Fprintf(&b, `  <div class="card__image" data-card-index="%d"><video src="%s" autoplay loop muted playsinline></video></div>`+"\n", index, html.EscapeString(path))

	case !m.IsEmpty():
		path, _ := m.Single()
		if cards.IsVideoPath(path) {
			fmt.Fprintf(&b, `  <div class="card__image" data-card-index="%d"><video src="%s" autoplay loop muted playsinline></video></div>`+"\n", index, html.EscapeString(path))
		} else {
			fmt.Fprintf(&b, `  <div class="card__image" data-card-index="%d"><img src="%s" alt=""></div>`+"\n", index, html.EscapeString(path))
		}

	default:
		fmt.Fprintf(&b, `  <div class="card__image" data-card-index="%d"></div>`+"\n", index)
	}

	return b.String()
}
