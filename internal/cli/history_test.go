package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qbool/internal/ir"
	"github.com/roach88/qbool/internal/store"
	"github.com/roach88/qbool/internal/translate"
)

// seedHistory records one success and one failure with fixed IDs.
func seedHistory(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "history.db")

	st, err := store.Open(db, store.WithIDGenerator(store.NewFixedGenerator("id-ok", "id-err")))
	require.NoError(t, err)
	defer st.Close()

	doc, err := translate.ParseAndTranslate("+ham")
	require.NoError(t, err)
	_, err = st.Record(t.Context(), "+ham", doc, nil)
	require.NoError(t, err)

	_, err = translate.ParseAndTranslate(`"ham`)
	require.Error(t, err)
	_, err = st.Record(t.Context(), `"ham`, nil, err)
	require.NoError(t, err)

	return db
}

func historyOptions(format, db string) *RootOptions {
	opts := testRootOptions(format)
	opts.Database = db
	return opts
}

func TestHistory_ListText(t *testing.T) {
	db := seedHistory(t)

	stdout, _, err := execute(t, NewHistoryCommand(historyOptions("text", db)), "")
	require.NoError(t, err)

	doc, err := translate.ParseAndTranslate("+ham")
	require.NoError(t, err)
	hash := ir.MustDocumentHash(doc)

	assert.Equal(t,
		"id-err  error  "+strings.Repeat(" ", 12)+"  "+`"\"ham"`+"\n"+
			"id-ok  ok     "+hash[:12]+"  "+`"+ham"`+"\n",
		stdout)
}

func TestHistory_ListJSONLimit(t *testing.T) {
	db := seedHistory(t)

	stdout, _, err := execute(t, NewHistoryCommand(historyOptions("json", db)), "", "--limit", "1")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			ID    string `json:"id"`
			Error string `json:"error"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "id-err", resp.Data[0].ID)
	assert.Contains(t, resp.Data[0].Error, "expected closing quote")
}

func TestHistory_ListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	stdout, _, err := execute(t, NewHistoryCommand(historyOptions("text", db)), "")
	require.NoError(t, err)
	assert.Equal(t, "No translations recorded.\n", stdout)
}

func TestHistory_NegativeLimit(t *testing.T) {
	_, _, err := execute(t, NewHistoryCommand(historyOptions("text", "unused.db")), "", "--limit", "-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistory_Show(t *testing.T) {
	db := seedHistory(t)
	opts := historyOptions("text", db)
	opts.Config.Indent = false

	stdout, _, err := execute(t, NewHistoryCommand(opts), "", "show", "id-ok")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ID:      id-ok\n")
	assert.Contains(t, stdout, "Input:   \"+ham\"\n")
	assert.Contains(t, stdout, `{"query":{"bool":{"must":[{"match":{"title":{"query":"ham"}}}]}}}`)

	stdout, _, err = execute(t, NewHistoryCommand(opts), "", "show", "id-err")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Error:   syntax error at offset 4")
}

func TestHistory_ShowNotFound(t *testing.T) {
	db := seedHistory(t)

	stdout, _, err := execute(t, NewHistoryCommand(historyOptions("text", db)), "", "show", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E402]")
}

func TestHistory_NoDatabase(t *testing.T) {
	stdout, _, err := execute(t, NewHistoryCommand(testRootOptions("text")), "")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E401]")
}
