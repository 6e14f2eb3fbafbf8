package syntax

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexatransit/logocheck/internal/bom"
	"github.com/hexatransit/logocheck/internal/console"
	"github.com/hexatransit/logocheck/internal/problem"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newChecker(t *testing.T, strict bool) (*Checker, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	c, err := NewChecker(console.New(&out, true), console.New(&errOut, true), strict)
	require.NoError(t, err)
	return c, &out, &errOut
}

func TestCheckTree_AllValid(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "trafic.json"), `{"companyId":"A1","lines":[[{"lineId":"10"}]]}`)
	writeFile(t, filepath.Join(root, "a", "lines_picto.csv"), "agency_id;line_id;logoPath\nA1;10;a.png\n")

	c, out, errOut := newChecker(t, false)
	var problems problem.List
	assert.True(t, c.CheckTree(root, &problems))
	assert.True(t, problems.Empty())
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "is valid JSON")
	assert.Contains(t, out.String(), "parsed as CSV with delimiter ';' (2 rows)")
}

func TestCheckTree_InvalidFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "trafic.json"), `{"companyId":`)
	writeFile(t, filepath.Join(root, "a", "lines_picto.csv"), "")
	writeFile(t, filepath.Join(root, "b", "lines_picto.csv"), "agency_id;line_id\nA1;10;extra\n")

	c, _, errOut := newChecker(t, false)
	var problems problem.List
	assert.False(t, c.CheckTree(root, &problems))
	assert.Equal(t, 3, problems.Len())

	text := errOut.String()
	assert.Contains(t, text, "ERROR: Invalid JSON in")
	assert.Contains(t, text, filepath.Join(root, "a", "lines_picto.csv")+" is empty")
	assert.Contains(t, text, "ERROR: Failed to parse CSV")
}

func TestCheckTree_NoFiles(t *testing.T) {
	root := t.TempDir()
	c, _, errOut := newChecker(t, false)
	var problems problem.List
	assert.False(t, c.CheckTree(root, &problems))
	assert.Equal(t, 2, problems.Len())
	assert.Contains(t, errOut.String(), "No trafic.json files found under")
	assert.Contains(t, errOut.String(), "No lines_picto.csv files found under")
}

func TestCheckJSON_Strict(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good", "trafic.json")
	bad := filepath.Join(root, "bad", "trafic.json")
	list := filepath.Join(root, "list", "trafic.json")
	writeFile(t, good, `{"companyId":"A1","lines":[[{"lineId":10}]]}`)
	writeFile(t, bad, `{"companyId":"A1","lines":[{"lineId":"10"}]}`)
	writeFile(t, list, `[{"companyId":"A1","lines":[]},{"companyId":"B2","lines":[[{"lineId":"1"}]]}]`)

	strict, _, _ := newChecker(t, true)
	assert.NoError(t, strict.CheckJSON(good))
	assert.NoError(t, strict.CheckJSON(list))

	err := strict.CheckJSON(bad)
	require.Error(t, err)
	assert.Equal(t, problem.KindStructure, kindOf(err))
	assert.Contains(t, err.Error(), "does not match the trafic schema")

	lenient, _, _ := newChecker(t, false)
	assert.NoError(t, lenient.CheckJSON(bad))
}

func TestCountCSVRows(t *testing.T) {
	n, err := CountCSVRows(strings.NewReader("a;b\n1;2\n3;4\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = CountCSVRows(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestCheckJSON_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trafic.json")
	writeFile(t, path, "{\"companyId\":\"A\xff\",\"lines\":[]}")

	c, out, errOut := newChecker(t, false)
	err := c.CheckJSON(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, bom.ErrInvalidUTF8)
	assert.Equal(t, problem.KindParse, kindOf(err))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "ERROR: Invalid JSON in "+path+": invalid UTF-8")
}

func TestCheckCSV_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines_picto.csv")
	writeFile(t, path, "agency_id;line_id\nA\xfe;10\n")

	c, out, errOut := newChecker(t, false)
	err := c.CheckCSV(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, bom.ErrInvalidUTF8)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "ERROR: Failed to parse CSV "+path+": invalid UTF-8")
}

func TestCheckCSV_ByteOrderMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines_picto.csv")
	writeFile(t, path, "\uFEFFagency_id;line_id\nA1;10\n")

	c, out, _ := newChecker(t, false)
	require.NoError(t, c.CheckCSV(path))
	assert.Contains(t, out.String(), "(2 rows)")

	n, err := CountCSVRows(strings.NewReader("\uFEFF\"a\";b\n1;2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCheckTree_MissingKindNamesRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "trafic.json"), `{}`)

	c, _, _ := newChecker(t, false)
	var problems problem.List
	assert.False(t, c.CheckTree(root, &problems))
	require.Equal(t, 1, problems.Len())
	assert.Equal(t, root, problems.Items()[0].Source)
	assert.Equal(t, "No lines_picto.csv files found under "+root, problems.Items()[0].Message)
}
