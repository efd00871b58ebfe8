package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleCSV is a small water usage extract with two years, two states, both
// sectors and the national aggregate rows.
const SampleCSV = `Date,State,Sector,Water Consumed
2020,Selangor,Domestic,100
2020,Selangor,Non-Domestic,50
2020,Johor,Domestic,80
2020,Johor,Non-Domestic,20
2020,Malaysia,Domestic,180
2020,Malaysia,Non-Domestic,70
2021,Selangor,Domestic,110
2021,Selangor,Non-Domestic,60
2021,Johor,Domestic,90
2021,Johor,Non-Domestic,30
2021,Malaysia,Domestic,200
2021,Malaysia,Non-Domestic,90
`

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteSampleCSV writes SampleCSV to a temp file and returns its path.
func WriteSampleCSV(t testing.TB) string {
	t.Helper()
	return WriteFile(t, "Water_Usage.csv", SampleCSV)
}
