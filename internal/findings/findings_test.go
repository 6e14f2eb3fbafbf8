package findings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexatransit/logocheck/internal/problem"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Check:     "routes picto",
		Kind:      problem.KindMismatch,
		Agency:    "A1",
		URL:       "https://hexatransit.fr/datasets/gtfs/A1.zip",
		Message:   "1 missing line_id(s) not found in routes.txt: [9, 10]",
	}
}

func TestAppend_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "findings.csv")
	require.NoError(t, Append(path, []Entry{testEntry()}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A1", entries[0].Agency)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > len(Header))
	assert.Equal(t, Header+"\n", string(data[:len(Header)+1]))
}

func TestAppend_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.csv")
	require.NoError(t, Append(path, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Check = "assets"
	e2.Kind = problem.KindMissingAsset
	require.NoError(t, Append(path, []Entry{e2}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "routes picto", entries[0].Check)
	assert.Equal(t, problem.KindMissingAsset, entries[1].Kind)
}

func TestRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.csv")
	original := testEntry()
	require.NoError(t, Append(path, []Entry{original}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	got.Timestamp = original.Timestamp
	assert.Equal(t, original, got)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "findings.csv"))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.csv")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\n"), 0o644))

	entries, err := Read(path)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestFromProblems(t *testing.T) {
	problems := []problem.Problem{
		{Kind: problem.KindParse, Source: "logo/a/trafic.json", Message: "Failed to load"},
		{Kind: problem.KindTransport, Agency: "B2", URL: "https://x.test/B2.zip", Message: "timeout"},
	}
	entries := FromProblems("routes trafic", testTime, problems)
	require.Len(t, entries, 2)
	assert.Equal(t, "logo/a/trafic.json", entries[0].Source)
	assert.Equal(t, "routes trafic", entries[1].Check)
	assert.Equal(t, "B2", entries[1].Agency)
	assert.True(t, testTime.Equal(entries[1].Timestamp))
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 7 fields")
}

func TestTimestampFormat(t *testing.T) {
	e := testEntry()
	e.Timestamp = time.Date(2025, 1, 15, 11, 30, 0, 0, time.FixedZone("CET", 3600))
	row := MarshalEntry(e)
	assert.Equal(t, "2025-01-15T10:30:00Z", row[0])
}
