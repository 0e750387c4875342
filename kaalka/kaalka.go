// Package kaalka implements the language's reversible keyed text
// transformation. It is a repeating-key shift over printable ASCII and is
// not meant to be cryptographically strong.
package kaalka

import (
	stderrors "errors"
	"strings"
)

const (
	first = ' '
	last  = '~'
	span  = last - first + 1
)

var ErrEmptyKey = stderrors.New("key must not be empty")

func printable(r rune) bool {
	return r >= first && r <= last
}

func shift(text, key string, dir int) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	k := []rune(key)
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for _, r := range text {
		if !printable(r) {
			b.WriteRune(r)
			continue
		}

		off := int(k[i%len(k)]) % span
		i++

		n := (int(r-first) + dir*off) % span
		if n < 0 {
			n += span
		}
		b.WriteRune(first + rune(n))
	}

	return b.String(), nil
}

// Encrypt shifts each printable character of text forward by the matching
// key character. Other characters are copied and consume no key position.
func Encrypt(text, key string) (string, error) {
	return shift(text, key, 1)
}

// Decrypt undoes Encrypt with the same key.
func Decrypt(text, key string) (string, error) {
	return shift(text, key, -1)
}
