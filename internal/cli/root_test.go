package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "qbool", cmd.Use)
	assert.Contains(t, cmd.Long, "bool queries")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"translate", "parse", "test", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}

	show, _, err := cmd.Find([]string{"history", "show"})
	require.NoError(t, err)
	assert.Equal(t, "show", show.Name())
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("db"))
}

func TestTranslateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	translateCmd, _, err := cmd.Find([]string{"translate"})
	require.NoError(t, err)

	outputFlag := translateCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	require.NotNil(t, translateCmd.Flags().Lookup("stdin"))
	require.NotNil(t, translateCmd.Flags().Lookup("record"))
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	require.NotNil(t, testCmd.Flags().Lookup("filter"))
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	limitFlag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := execute(t, NewRootCommand(), "", "--format", "invalid", "translate", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestConfigFile_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbool.cue")
	require.NoError(t, os.WriteFile(path, []byte("format: \"json\"\nindent: false\n"), 0644))

	stdout, _, err := execute(t, NewRootCommand(), "", "--config", path, "translate", "+ham")
	require.NoError(t, err)
	assert.Equal(t,
		`{"status":"ok","data":{"query":{"bool":{"must":[{"match":{"title":{"query":"ham"}}}]}}}}`+"\n",
		stdout)
}

func TestConfigFile_FlagOverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbool.cue")
	require.NoError(t, os.WriteFile(path, []byte("format: \"json\"\nindent: false\n"), 0644))

	stdout, _, err := execute(t, NewRootCommand(), "", "--config", path, "--format", "text", "translate", "+ham")
	require.NoError(t, err)
	assert.Equal(t, `{"query":{"bool":{"must":[{"match":{"title":{"query":"ham"}}}]}}}`+"\n", stdout)
}

func TestConfigFile_MaxQueryLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbool.cue")
	require.NoError(t, os.WriteFile(path, []byte("max_query_length: 3\n"), 0644))

	stdout, _, err := execute(t, NewRootCommand(), "", "--config", path, "translate", "abcdef")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E202]")
}

func TestConfigFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbool.cue")
	require.NoError(t, os.WriteFile(path, []byte("colour: \"red\"\n"), 0644))

	stdout, _, err := execute(t, NewRootCommand(), "", "--config", path, "translate", "a")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, stdout, "Error [E301]")
}

func TestConfigFile_Missing(t *testing.T) {
	_, _, err := execute(t, NewRootCommand(), "", "--config", filepath.Join(t.TempDir(), "nope.cue"), "translate", "a")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, NewRootCommand(), "", "-v", "translate", "the +cat in the -hat")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "overwritten")
	assert.Contains(t, stderr, "query aggregated")
	assert.Contains(t, stderr, "overwritten by a later should segment: the")
}
