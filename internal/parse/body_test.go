package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		raw         string
		expected    map[string]string
		expectErr   bool
	}{
		{
			name:        "JSON strings",
			contentType: "application/json",
			raw:         `{"temp":"24","mode":"cool"}`,
			expected:    map[string]string{"temp": "24", "mode": "cool"},
		},
		{
			name:        "JSON numbers keep their text",
			contentType: "application/json; charset=utf-8",
			raw:         `{"temp":24.5,"vol":3}`,
			expected:    map[string]string{"temp": "24.5", "vol": "3"},
		},
		{
			name:        "JSON null is dropped",
			contentType: "application/json",
			raw:         `{"button":null,"temp":"22"}`,
			expected:    map[string]string{"temp": "22"},
		},
		{
			name:        "JSON nested value rejected",
			contentType: "application/json",
			raw:         `{"temp":{"v":1}}`,
			expectErr:   true,
		},
		{
			name:        "form encoded",
			contentType: "application/x-www-form-urlencoded",
			raw:         "button=on&extra=a&extra=b",
			expected:    map[string]string{"button": "on", "extra": "a"},
		},
		{
			name:        "unknown content type falls back to JSON",
			contentType: "text/plain",
			raw:         `{"button":"off"}`,
			expected:    map[string]string{"button": "off"},
		},
		{
			name:        "unknown content type that is not JSON",
			contentType: "text/plain",
			raw:         "button=off",
			expectErr:   true,
		},
		{
			name:        "empty body",
			contentType: "",
			raw:         "  ",
			expected:    map[string]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := Body(tc.contentType, []byte(tc.raw))
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, params)
		})
	}
}

func TestBody_UnsupportedContentTypeError(t *testing.T) {
	_, err := Body("text/plain", []byte("not json"))
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}
