package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/supernotes/pkg/core"
)

type cli struct {
	t      *testing.T
	data   string
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	return &cli{
		t:      t,
		data:   filepath.Join(dir, "notes"),
		config: filepath.Join(dir, "config.yaml"),
	}
}

func (c *cli) runWithInput(stdin string, args ...string) (string, string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", c.config, "--data", c.data}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (c *cli) run(args ...string) string {
	c.t.Helper()
	out, _, err := c.runWithInput("", args...)
	require.NoError(c.t, err, "supernotes %s", strings.Join(args, " "))
	return out
}

func (c *cli) notes() []core.Note {
	c.t.Helper()
	var notes []core.Note
	require.NoError(c.t, json.Unmarshal([]byte(c.run("list", "--json")), &notes))
	return notes
}

func TestCLI_AddListPin(t *testing.T) {
	c := newCLI(t)

	assert.Equal(t, "Note #1 added.\n", c.run("add", "-t", "Banana", "-c", "yellow", "--tags", "fruit, food"))
	assert.Equal(t, "Note #2 added.\n", c.run("add", "-t", "apple", "-c", "red"))
	assert.Equal(t, "Note #2 pinned.\n", c.run("pin", "2"))

	notes := c.notes()
	require.Len(t, notes, 2)
	assert.Equal(t, 2, notes[0].ID, "pinned notes come first")
	assert.Equal(t, []string{"fruit", "food"}, notes[1].Tags)

	out := c.run("list")
	assert.Less(t, strings.Index(out, "apple"), strings.Index(out, "Banana"))
	assert.Contains(t, out, "#fruit #food")

	assert.Equal(t, "Note #9 not found.\n", c.run("pin", "9"))
}

func TestCLI_AddRejectsBlankFields(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.runWithInput("", "add", "-t", "  ")
	require.Error(t, err)
	assert.Equal(t, "please provide title and content", err.Error())
	assert.Empty(t, c.notes())
}

func TestCLI_AddFromStdin(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.runWithInput("line one\nline two\n", "add", "-t", "Piped", "-c", "-")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", c.notes()[0].Content)
}

func TestCLI_ListFilters(t *testing.T) {
	c := newCLI(t)
	c.run("add", "-t", "Standup", "-c", "daily", "--tags", "work/meetings")
	c.run("add", "-t", "Groceries", "-c", "milk", "--tags", "home")
	c.run("add", "-t", "Review", "-c", "read PR", "--tags", "work")

	var notes []core.Note
	require.NoError(t, json.Unmarshal([]byte(c.run("list", "--json", "--tag", "home")), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)

	require.NoError(t, json.Unmarshal([]byte(c.run("list", "--json", "--tag", "work/*", "--glob")), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Standup", notes[0].Title)

	require.NoError(t, json.Unmarshal([]byte(c.run("list", "--json", "--sort", "title")), &notes))
	assert.Equal(t, []string{"Groceries", "Review", "Standup"}, titles(notes))

	require.NoError(t, json.Unmarshal([]byte(c.run("search", "--json", "MILK")), &notes))
	assert.Equal(t, []string{"Groceries"}, titles(notes))

	require.NoError(t, json.Unmarshal([]byte(c.run("list", "--json", "--filter", "pinned")), &notes))
	assert.Empty(t, notes)

	_, _, err := c.runWithInput("", "list", "--sort", "sideways")
	assert.Error(t, err)
}

func TestCLI_Show(t *testing.T) {
	c := newCLI(t)
	c.run("add", "-t", "Doc", "-c", "**bold** <b>")

	assert.Equal(t, "<strong>bold</strong> &lt;b&gt;\n", c.run("show", "1", "--html"))
	assert.Equal(t, "**bold** <b>\n", c.run("show", "1", "--raw"))
	assert.Contains(t, c.run("show", "1"), "Doc")

	_, _, err := c.runWithInput("", "show", "7")
	assert.EqualError(t, err, "note #7 not found")

	_, _, err = c.runWithInput("", "show", "abc")
	assert.Error(t, err)
}

func TestCLI_Edit(t *testing.T) {
	c := newCLI(t)
	c.run("add", "-t", "Draft", "-c", "v1", "--tags", "a,b")
	c.run("add", "-t", "Other", "-c", "x")

	assert.Equal(t, "Note #1 saved as #3.\n", c.run("edit", "1", "-c", "v2", "--add-tag", "c", "--remove-tag", "a"))

	notes := c.notes()
	require.Len(t, notes, 2)
	edited := notes[1]
	assert.Equal(t, 3, edited.ID)
	assert.Equal(t, "Draft", edited.Title)
	assert.Equal(t, "v2", edited.Content)
	assert.Equal(t, []string{"b", "c"}, edited.Tags)

	// A blank title is rejected without losing the note.
	_, _, err := c.runWithInput("", "edit", "3", "-t", "")
	require.Error(t, err)
	assert.Len(t, c.notes(), 2)
}

func TestCLI_DeleteAndClear(t *testing.T) {
	c := newCLI(t)
	c.run("add", "-t", "One", "-c", "1")
	c.run("add", "-t", "Two", "-c", "2")

	assert.Equal(t, "Note #1 deleted.\n", c.run("delete", "1"))
	assert.Equal(t, "Note #1 deleted.\n", c.run("delete", "1"))
	assert.Len(t, c.notes(), 1)

	out, _, err := c.runWithInput("n\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Len(t, c.notes(), 1)

	out, _, err = c.runWithInput("y\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "All notes deleted.")
	assert.Empty(t, c.notes())

	assert.Equal(t, "Note #1 added.\n", c.run("add", "-t", "Fresh", "-c", "start"))
}

func TestCLI_Theme(t *testing.T) {
	c := newCLI(t)

	assert.Equal(t, "light\n", c.run("theme"))
	assert.Equal(t, "dark\n", c.run("theme", "toggle"))
	assert.Equal(t, "dark\n", c.run("theme"))
	assert.Equal(t, "light\n", c.run("theme", "light"))
}

func TestCLI_ExportImport(t *testing.T) {
	c := newCLI(t)
	c.run("add", "-t", "Todo", "-c", "ship it", "--tags", "work")
	c.run("add", "-t", "Idea", "-c", "rewrite")
	c.run("pin", "2")

	md := c.run("export", "-f", "md", "-o", "-")
	assert.Equal(t, "# Todo\n\nTags: work\n\nship it\n\n---\n\n# Idea\n\nrewrite\n\n---\n", md)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "backup.json")
	assert.Equal(t, "Exported 2 notes to "+jsonPath+"\n", c.run("export", "-f", "json", "-o", jsonPath))

	pdfPath := filepath.Join(dir, "notes.pdf")
	c.run("export", "-f", "pdf", "-o", pdfPath)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	txt := c.run("export", "-f", "txt", "-o", "-")
	assert.Contains(t, txt, "My Notes Export")

	_, _, err = c.runWithInput("", "export", "-f", "docx")
	assert.Error(t, err)

	before := c.notes()
	c.run("clear", "--yes")
	assert.Equal(t, "Imported 2 notes.\n", c.run("import", jsonPath))
	assert.Equal(t, before, c.notes())

	assert.Equal(t, "Note #3 added.\n", c.run("add", "-t", "Next", "-c", "id continues"))
}

func TestCLI_ImportInputCodec(t *testing.T) {
	c := newCLI(t)
	c.run("add", "-t", "Todo", "-c", "ship it", "--tags", "work")

	backup := filepath.Join(t.TempDir(), "backup.data")
	c.run("export", "-f", "json", "-o", backup)

	_, _, err := c.runWithInput("", "import", backup)
	assert.Error(t, err)

	// The notebook codec and the input codec are chosen independently.
	assert.Equal(t, "Imported 1 notes.\n", c.run("--codec", "yaml", "import", "--input-codec", "json", backup))
	_, err = os.Stat(filepath.Join(c.data, "notes.yaml"))
	require.NoError(t, err)

	out := c.run("--codec", "yaml", "list", "--json")
	var notes []core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Todo", notes[0].Title)
}

func TestCLI_Status(t *testing.T) {
	c := newCLI(t)
	c.run("add", "-t", "One", "-c", "1")

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(c.run("status")), &status))
	assert.EqualValues(t, 1, status["store"]["notes"])
	assert.Equal(t, "fs", status["store"]["storage_type"])
	assert.Contains(t, status, "fs")
}

func TestCLI_SQLiteAdapter(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.runWithInput("", "--adapter", "sqlite", "add", "-t", "Db", "-c", "row")
	require.NoError(t, err)

	out, _, err := c.runWithInput("", "--adapter", "sqlite", "list", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Db"`)
	assert.FileExists(t, filepath.Join(c.data, "supernotes.db"))
}

func TestCLI_Toolbar(t *testing.T) {
	c := newCLI(t)

	out, stderr, err := c.runWithInput("make this bold", "toolbar", "bold", "--start", "10", "--end", "14")
	require.NoError(t, err)
	assert.Equal(t, "make this **bold**", out)
	assert.Equal(t, "selection 10:18\n", stderr)
}

func TestCLI_ConfigAndVersion(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.run("config"), "adapter: fs")
	c.run("config", "init")
	assert.FileExists(t, c.config)

	assert.True(t, strings.HasPrefix(c.run("version"), "supernotes version "))
}

func titles(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
