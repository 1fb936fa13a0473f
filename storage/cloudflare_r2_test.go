package storage

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base string
		key  string
		want string
	}{
		{"https://cdn.example.com", "results/final/a.json", "https://cdn.example.com/results/final/a.json"},
		{"https://cdn.example.com/", "/results/a.json", "https://cdn.example.com/results/a.json"},
		{"https://cdn.example.com/arena", "results/a.json", "https://cdn.example.com/arena/results/a.json"},
		{"https://cdn.example.com/arena/", "", ""},
	}
	for _, tt := range tests {
		base, err := url.Parse(tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, PublicURL(base, tt.key), tt.base+" + "+tt.key)
	}
	assert.Equal(t, "", PublicURL(nil, "a"))
}

func TestNewCloudflareR2Uploader_RequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	assert.ErrorIs(t, err, ErrInvalidR2Config)
}
