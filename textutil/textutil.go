// Package textutil holds small text helpers shared by the clipboard
// resolver and the host cache layer.
package textutil

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fnv1aHash computes the 32-bit FNV-1a hash of the trimmed input. It keys
// synthetic dedup URLs and cache filenames, so it only needs to be stable
// across runs of this client.
func Fnv1aHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.TrimSpace(s)))
	return h.Sum32()
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases, strips diacritics, and squeezes everything else to
// hyphens.
func Slug(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))

	// Decompose and drop combining marks.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if decomposed, _, err := transform.String(t, s); err == nil {
		s = decomposed
	}

	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SafeFilename derives a filesystem-safe name from arbitrary text: a
// truncated slug suffixed with the content hash for uniqueness.
func SafeFilename(s string) string {
	hash := fmt.Sprintf("%d", Fnv1aHash(s))
	slug := Slug(s)
	max := 240 - len(hash)
	if len(slug) > max {
		slug = slug[:max]
	}
	return slug + "-" + hash
}
