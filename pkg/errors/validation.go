package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// sequenceAlphabet lists the residue letters accepted in a sequence:
// the four RNA bases, T for DNA input, the IUPAC ambiguity codes, and the
// gap or blank characters used for residues without an identity.
const sequenceAlphabet = "ACGUTRYSWKMBDHVN-. "

// ValidateSequence checks that seq only contains residue letters.
// Lower-case letters are accepted; callers normalise case themselves.
func ValidateSequence(seq string) error {
	for i, r := range seq {
		if !strings.ContainsRune(sequenceAlphabet, unicode.ToUpper(r)) {
			return New(ErrCodeInvalidSequence, "invalid residue %q at position %d", r, i)
		}
	}
	return nil
}

// ValidateSequenceLength checks that a supplied sequence matches the
// structure length. An empty sequence means "no identities" and always passes.
func ValidateSequenceLength(seq string, n int) error {
	if seq == "" {
		return nil
	}
	if len(seq) != n {
		return New(ErrCodeSequenceLengthMismatch,
			"sequence has %d residues but structure has %d", len(seq), n)
	}
	return nil
}

// ValidatePath validates a user supplied output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateDrawingID checks that id is a UUID issued by the drawing API.
func ValidateDrawingID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDrawingID, "drawing id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidDrawingID, err, "malformed drawing id %q", id)
	}
	return nil
}
