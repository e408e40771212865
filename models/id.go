package models

import (
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "0123456789abcdef"
	idLength   = 24
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID returns a random 24 character hex identifier.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// LooksLikeID reports whether s has the shape of an identifier issued by NewID.
func LooksLikeID(s string) bool {
	return idPattern.MatchString(s)
}
