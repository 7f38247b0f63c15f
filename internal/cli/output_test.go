package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"query": "+ham"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]interface{}{"query": "+ham"}, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeTooLong, "query too long", nil)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E202", resp.Error.Code)
	assert.Equal(t, "query too long", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := SyntaxDetails{Offset: 5, Expected: "term", Found: "end of input"}
	require.NoError(t, formatter.Error(ErrCodeSyntax, "syntax error", details))

	assert.JSONEq(t, `{
		"status": "error",
		"error": {
			"code": "E201",
			"message": "syntax error",
			"details": {"offset": 5, "expected": "term", "found": "end of input"}
		}
	}`, buf.String())
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success("No translations recorded."))
	assert.Equal(t, "No translations recorded.\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Error(ErrCodeStore, "no history database configured", "ignored"))
	assert.Equal(t, "Error [E401]: no history database configured\n", buf.String())
}

func TestOutputFormatter_TextErrorVerboseDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	require.NoError(t, formatter.Error(ErrCodeSyntax, "syntax error", SyntaxDetails{Offset: 1, Expected: "term"}))
	assert.Contains(t, buf.String(), "Error [E201]: syntax error\n")
	assert.Contains(t, buf.String(), "Details: {1 term }")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	quiet := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}
	quiet.VerboseLog("overwritten: %s", "cat")
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())

	loud := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut, Verbose: true}
	loud.VerboseLog("overwritten: %s", "cat")
	assert.Empty(t, out.String())
	assert.Equal(t, "overwritten: cat\n", errOut.String())
}

func TestOutputFormatter_GetErrWriterFallback(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Writer: buf}
	assert.Same(t, buf, formatter.GetErrWriter())
}

func TestExitError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewExitError(ExitCommandError, "scenarios directory not found: x")
		assert.Equal(t, "scenarios directory not found: x", err.Error())
		assert.Nil(t, err.Unwrap())
		assert.False(t, IsReported(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WrapExitError(ExitCommandError, "failed to find scenarios", cause)
		assert.Equal(t, "failed to find scenarios: permission denied", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("reported", func(t *testing.T) {
		err := reportedExitError(ExitFailure, "E201: syntax error")
		assert.True(t, IsReported(err))
	})
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"exit failure", NewExitError(ExitFailure, "x"), ExitFailure},
		{"command error", NewExitError(ExitCommandError, "x"), ExitCommandError},
		{"plain error", errors.New("x"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}
