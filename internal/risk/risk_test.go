package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Detect(t *testing.T) {
	detector, err := NewDetector()
	require.NoError(t, err)

	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "clean files",
			files:    []string{"main.go", "README.md", "internal/cli/root.go"},
			expected: nil,
		},
		{
			name:     "dotenv",
			files:    []string{"main.go", ".env"},
			expected: []string{".env"},
		},
		{
			name:     "nested dotenv",
			files:    []string{"deploy/prod/.env"},
			expected: []string{"deploy/prod/.env"},
		},
		{
			name:     "credentials and keys",
			files:    []string{"credentials.json", "deploy/ssh_key", "app.go"},
			expected: []string{"credentials.json", "deploy/ssh_key"},
		},
		{
			name:     "secrets files",
			files:    []string{"secrets.yaml", "secret.yml", "config/secrets.toml"},
			expected: []string{"secrets.yaml", "secret.yml", "config/secrets.toml"},
		},
		{
			name:     "env sample is still flagged",
			files:    []string{"example.env"},
			expected: []string{"example.env"},
		},
		{
			name:     "no files",
			files:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.Detect(tt.files))
		})
	}
}

func TestDetector_ExtraPatterns(t *testing.T) {
	detector, err := NewDetector(`\.pem$`)
	require.NoError(t, err)

	risky := detector.Detect([]string{"server.pem", "main.go", ".env"})
	assert.Equal(t, []string{"server.pem", ".env"}, risky)
}

func TestNewDetector_InvalidPattern(t *testing.T) {
	_, err := NewDetector(`([unclosed`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid risk pattern")
}

func TestDetector_ReportsFileOnce(t *testing.T) {
	// secrets.yaml matches both the credentials-style and secrets patterns
	detector, err := NewDetector(`secrets.*`)
	require.NoError(t, err)

	risky := detector.Detect([]string{"secrets.yaml"})
	assert.Equal(t, []string{"secrets.yaml"}, risky)
}
