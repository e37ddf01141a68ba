package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidDataURL is returned when a payload is neither a data URL nor
// plain base64.
var ErrInvalidDataURL = errors.New("invalid base64 payload")

// DecodeDataURL decodes a base64 payload that may carry a
// "data:<mime>;base64," prefix. Data URLs without the ";base64" marker are
// rejected. The returned media type is empty when the payload had no prefix.
func DecodeDataURL(payload string) (mediaType string, data []byte, err error) {
	encoded := strings.TrimSpace(payload)

	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		header, body, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, ErrInvalidDataURL
		}
		params := strings.Split(header, ";")
		if !slices.Contains(params[1:], "base64") {
			return "", nil, fmt.Errorf("%w: data url is not base64 encoded", ErrInvalidDataURL)
		}
		mediaType = params[0]
		encoded = body
	}

	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// some browsers strip the padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return "", nil, errors.Join(ErrInvalidDataURL, err)
		}
	}

	return mediaType, data, nil
}
