package core

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// Payload encodings carried in RenderedDigest.Encoding.
const (
	EncodingIdentity = "identity"
	EncodingZstd     = "zstd+base64"
)

// ErrUnknownEncoding is returned by DecodeHTML for an unsupported encoding.
var ErrUnknownEncoding = errors.New("payload: unknown encoding")

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

// codec returns the shared zstd encoder and decoder. EncodeAll and DecodeAll
// are safe for concurrent use.
func codec() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	})
	return encoder, decoder, codecErr
}

// EncodeHTML returns the wire form of html. Payloads longer than threshold
// bytes are zstd-compressed and base64-encoded; a threshold of zero or less
// disables compression.
func EncodeHTML(html string, threshold int) (body, encoding string, err error) {
	if threshold <= 0 || len(html) <= threshold {
		return html, EncodingIdentity, nil
	}

	enc, _, err := codec()
	if err != nil {
		return "", "", fmt.Errorf("payload: zstd init: %w", err)
	}
	compressed := enc.EncodeAll([]byte(html), nil)
	return base64.StdEncoding.EncodeToString(compressed), EncodingZstd, nil
}

// DecodeHTML reverses EncodeHTML.
func DecodeHTML(body, encoding string) (string, error) {
	switch encoding {
	case "", EncodingIdentity:
		return body, nil
	case EncodingZstd:
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return "", fmt.Errorf("payload: base64: %w", err)
		}
		_, dec, err := codec()
		if err != nil {
			return "", fmt.Errorf("payload: zstd init: %w", err)
		}
		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return "", fmt.Errorf("payload: zstd decompression failed: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownEncoding, encoding)
	}
}

// ContentHash returns the hex BLAKE2b-256 digest of html. It identifies a
// rendering independently of its wire encoding.
func ContentHash(html string) string {
	sum := blake2b.Sum256([]byte(html))
	return hex.EncodeToString(sum[:])
}
