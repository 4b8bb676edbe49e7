// Package textcmp provides the line comparison rule used across the sorter.
// Default is raw byte order; an optional BCP-47 locale switches to Unicode
// collation
package textcmp

import (
	"bytes"
	"sync"

	perr "pipesort/internal/platform/errors"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer compares two lines and reports <0, 0 or >0.
// Implementations must be safe for concurrent use: every worker in the
// tree shares one Comparer
type Comparer interface {
	Compare(a, b []byte) int
}

// Bytes is plain lexicographic byte comparison, the default rule
type Bytes struct{}

// Compare reports the byte order of a and b
func (Bytes) Compare(a, b []byte) int { return bytes.Compare(a, b) }

// Collated compares lines with a Unicode collator for one locale.
// Collators are stateful and not concurrency safe, so fresh ones are pooled
type Collated struct {
	tag  language.Tag
	pool sync.Pool
}

// NewCollated builds a Collated comparer for a BCP-47 tag like "de" or "sv-SE"
func NewCollated(tag string) (*Collated, error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "invalid collation locale %q", tag)
	}
	c := &Collated{tag: lang}
	c.pool.New = func() any { return collate.New(lang) }
	return c, nil
}

// Compare reports the collation order of a and b
func (c *Collated) Compare(a, b []byte) int {
	col := c.pool.Get().(*collate.Collator)
	n := col.Compare(a, b)
	c.pool.Put(col)
	return n
}

// Tag returns the locale this comparer collates for
func (c *Collated) Tag() language.Tag { return c.tag }

// ForLocale returns the comparer for a locale string; empty means byte order
func ForLocale(locale string) (Comparer, error) {
	if locale == "" {
		return Bytes{}, nil
	}
	return NewCollated(locale)
}
