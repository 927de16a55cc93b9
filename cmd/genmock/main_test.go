package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCases_MatchesCheckedInFixture(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("..", "..", "data", "mock", "prediction_requests.json"))
	require.NoError(t, err)

	got, err := encode(buildCases(30, 426))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got), "regenerate with: go run ./cmd/genmock")
}

func TestBuildCases_Labels(t *testing.T) {
	cases := buildCases(10, 1)
	require.Len(t, cases, 10+len(invalidCases()))

	for _, c := range cases[:10] {
		assert.Empty(t, c.ExpectedKind, c.Key)
		n := len(c.Request.Readings)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 10)
	}
	for _, c := range cases[10:] {
		assert.NotEmpty(t, c.ExpectedKind, c.Key)
		assert.NotEqual(t, "unknown", c.ExpectedKind, c.Key)
	}
}

func TestGenerateValid_EncodesOddReadingsAsStrings(t *testing.T) {
	data, err := encode(generateValid(1, 426))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"air": 25.3`)
	assert.Contains(t, string(data), `"air": "27.8"`)
}
