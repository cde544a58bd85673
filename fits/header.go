package fits

import (
	"fmt"
	"strings"

	"github.com/astrogo/fitsio"
)

// Header is an ordered list of FITS header cards. Keywords are stored upper
// case. Commentary keywords (COMMENT, HISTORY, blank) may repeat; all other
// keywords are unique and Set updates them in place.
type Header struct {
	cards []fitsio.Card
	index map[string]int
}

// NewHeader returns a header holding a copy of cards.
func NewHeader(cards ...fitsio.Card) *Header {
	h := &Header{index: make(map[string]int, len(cards))}
	for _, c := range cards {
		h.append(c)
	}
	return h
}

func isCommentary(key string) bool {
	return key == "" || key == "COMMENT" || key == "HISTORY"
}

func normKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

func (h *Header) append(c fitsio.Card) {
	c.Name = normKey(c.Name)
	if !isCommentary(c.Name) {
		if i, ok := h.index[c.Name]; ok {
			h.cards[i] = c
			return
		}
		h.index[c.Name] = len(h.cards)
	}
	h.cards = append(h.cards, c)
}

// Len returns the number of cards.
func (h *Header) Len() int { return len(h.cards) }

// Keys returns the card keywords in order.
func (h *Header) Keys() []string {
	keys := make([]string, len(h.cards))
	for i, c := range h.cards {
		keys[i] = c.Name
	}
	return keys
}

// Cards returns a copy of the cards in order.
func (h *Header) Cards() []fitsio.Card {
	return append([]fitsio.Card(nil), h.cards...)
}

// Card returns the card for key.
func (h *Header) Card(key string) (fitsio.Card, bool) {
	key = normKey(key)
	if i, ok := h.index[key]; ok {
		return h.cards[i], true
	}
	if isCommentary(key) {
		for _, c := range h.cards {
			if c.Name == key {
				return c, true
			}
		}
	}
	return fitsio.Card{}, false
}

// Has reports whether key is present.
func (h *Header) Has(key string) bool {
	_, ok := h.Card(key)
	return ok
}

// Get returns the raw value of key.
func (h *Header) Get(key string) (any, bool) {
	c, ok := h.Card(key)
	if !ok {
		return nil, false
	}
	return c.Value, true
}

// Set updates the value of key, keeping its comment, or appends a new card.
func (h *Header) Set(key string, value any) {
	key = normKey(key)
	if i, ok := h.index[key]; ok && !isCommentary(key) {
		h.cards[i].Value = value
		return
	}
	h.append(fitsio.Card{Name: key, Value: value})
}

// SetCard inserts or replaces a full card.
func (h *Header) SetCard(c fitsio.Card) { h.append(c) }

// Delete removes every card named key.
func (h *Header) Delete(key string) {
	key = normKey(key)
	kept := h.cards[:0]
	for _, c := range h.cards {
		if c.Name != key {
			kept = append(kept, c)
		}
	}
	h.cards = kept
	h.reindex()
}

func (h *Header) reindex() {
	h.index = make(map[string]int, len(h.cards))
	for i, c := range h.cards {
		if !isCommentary(c.Name) {
			h.index[c.Name] = i
		}
	}
}

// String returns the value of key as a string. Values read from files are
// already trimmed of trailing blanks.
func (h *Header) String(key string) (string, bool) {
	v, ok := h.Get(key)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return strings.TrimRight(s, " "), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(s), true
	}
}

// Float returns the numeric value of key.
func (h *Header) Float(key string) (float64, bool) {
	v, ok := h.Get(key)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Int returns the integer value of key. Float values are truncated.
func (h *Header) Int(key string) (int, bool) {
	v, ok := h.Get(key)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case int32:
		return int(x), true
	}
	f, ok := toFloat(v)
	return int(f), ok
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	return NewHeader(h.cards...)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case uint8:
		return float64(x), true
	default:
		return 0, false
	}
}

// Nth returns prefix with n appended, e.g. Nth("CTYPE", 3) == "CTYPE3".
func Nth(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}
