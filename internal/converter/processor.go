package converter

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/mush1e/drunken-diver/internal/diver"
)

// Digest selects which bytes the diver walks over.
type Digest int

const (
	// DigestRaw walks the input itself, read lazily.
	DigestRaw Digest = iota
	DigestSHA256
	DigestSHA512
)

func (d Digest) String() string {
	switch d {
	case DigestRaw:
		return "raw"
	case DigestSHA256:
		return "sha256"
	case DigestSHA512:
		return "sha512"
	}
	return fmt.Sprintf("Digest(%d)", int(d))
}

func ParseDigest(s string) (Digest, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw":
		return DigestRaw, nil
	case "sha256":
		return DigestSHA256, nil
	case "sha512":
		return DigestSHA512, nil
	}
	return 0, fmt.Errorf("converter: unknown digest %q (want raw, sha256 or sha512)", s)
}

// Source turns r into the byte stream for a dive. Hashed digests consume
// all of r up front; raw reads it as the dive asks for bytes.
func Source(r io.Reader, d Digest) (io.ByteReader, error) {
	var h hash.Hash
	switch d {
	case DigestRaw:
		if br, ok := r.(io.ByteReader); ok {
			return br, nil
		}
		return bufio.NewReader(r), nil
	case DigestSHA256:
		h = sha256.New()
	case DigestSHA512:
		h = sha512.New()
	default:
		return nil, fmt.Errorf("converter: unknown digest %v", d)
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("converter: hashing input: %w", err)
	}
	return bytes.NewReader(h.Sum(nil)), nil
}

type Options struct {
	Width  int
	Digest Digest
	// MaxUpload bounds the size of an uploaded file in bytes.
	MaxUpload int64
}

// Render walks the whole input and returns the finished route.
func Render(r io.Reader, opts Options) (*diver.Route, error) {
	src, err := Source(r, opts.Digest)
	if err != nil {
		return nil, err
	}
	d, err := diver.NewDive(src, opts.Width)
	if err != nil {
		return nil, fmt.Errorf("converter: %w", err)
	}
	rt, err := diver.NewRoute(d)
	if err != nil {
		return nil, fmt.Errorf("converter: reading input: %w", err)
	}
	return rt, nil
}
