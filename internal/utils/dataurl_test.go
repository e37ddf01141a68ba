package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantType  string
		wantData  string
		wantError bool
	}{
		{
			name:     "data url with media type",
			payload:  "data:application/pdf;base64,JVBERi0xLjQ=",
			wantType: "application/pdf",
			wantData: "%PDF-1.4",
		},
		{
			name:     "plain base64",
			payload:  "aGVsbG8=",
			wantData: "hello",
		},
		{
			name:     "missing padding",
			payload:  "aGVsbG8",
			wantData: "hello",
		},
		{
			name:      "data url without comma",
			payload:   "data:image/png;base64",
			wantError: true,
		},
		{
			name:      "percent-encoded data url",
			payload:   "data:text/plain,hello%20world",
			wantError: true,
		},
		{
			name:      "charset parameter before base64",
			payload:   "data:text/plain;charset=utf-8,aGVsbG8=",
			wantError: true,
		},
		{
			name:     "base64 after other parameters",
			payload:  "data:text/plain;charset=utf-8;base64,aGVsbG8=",
			wantType: "text/plain",
			wantData: "hello",
		},
		{
			name:     "empty media type",
			payload:  "data:;base64,aGVsbG8=",
			wantData: "hello",
		},
		{
			name:      "not base64",
			payload:   "data:image/png;base64,@@@",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mediaType, data, err := DecodeDataURL(tt.payload)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDataURL))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, mediaType)
			assert.Equal(t, tt.wantData, string(data))
		})
	}
}
