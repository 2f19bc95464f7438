// Package share encodes a generator's parameters into a compact URL-safe
// token and decodes it back.
//
// A token is the base64url (unpadded) encoding of a msgpack envelope
// holding a format version, the generator kind and the msgpack-encoded
// parameter model. Decoding rejects unknown kinds and versions, then
// normalizes the parameters so a hand-crafted token cannot smuggle
// out-of-range values into a serializer.
//
//	token, err := share.Encode(gradient.Default())
//	g, err := share.Decode(token)
package share

import (
	"encoding/base64"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
)

// Version is the current envelope version.
const Version = 1

// MaxTokenLength bounds the accepted token size.
const MaxTokenLength = 16 << 10

type envelope struct {
	Version int                `msgpack:"v"`
	Kind    string             `msgpack:"k"`
	Params  msgpack.RawMessage `msgpack:"p"`
}

var encoding = base64.RawURLEncoding

// Encode returns the share token for g.
func Encode(g generator.Generator) (string, error) {
	params, err := msgpack.Marshal(g)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode %s parameters", g.Kind())
	}
	data, err := msgpack.Marshal(envelope{Version: Version, Kind: g.Kind(), Params: params})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode share envelope")
	}
	return encoding.EncodeToString(data), nil
}

// Decode parses token into the generator it describes.
func Decode(token string) (generator.Generator, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeInvalidToken, "share token is empty")
	}
	if len(token) > MaxTokenLength {
		return nil, errors.New(errors.ErrCodeInvalidToken, "share token longer than %d bytes", MaxTokenLength)
	}
	data, err := encoding.DecodeString(token)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidToken, err, "share token is not base64url")
	}

	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidToken, err, "malformed share token")
	}
	if env.Version != Version {
		return nil, errors.New(errors.ErrCodeInvalidToken, "unsupported share token version %d", env.Version)
	}

	g, err := registry.New(env.Kind)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidToken, err, "share token kind")
	}
	if err := msgpack.Unmarshal(env.Params, g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidToken, err, "malformed %s parameters", env.Kind)
	}
	if n, ok := g.(generator.Normalizer); ok {
		n.Normalize()
	}
	return g, nil
}
