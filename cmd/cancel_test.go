package cmd_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/w-h-a/cancelrun/api/cancellation"
	"github.com/w-h-a/cancelrun/cmd"
	"github.com/w-h-a/cancelrun/internal/cancel/clients/api/fake"
)

const (
	githubRunID      = "45166321"
	githubRunAttempt = "1"
)

// clearInputs keeps inputs exported by a surrounding CI job out of the test.
func clearInputs(t *testing.T) {
	for _, name := range []string{
		"currents-api-url", "bearer-token", "github-run-id", "github-run-attempt",
		"retries", "min-timeout", "max-timeout", "factor", "request-timeout",
	} {
		t.Setenv("INPUT_"+strings.ToUpper(name), "")
		t.Setenv("CANCELRUN_"+strings.ToUpper(strings.ReplaceAll(name, "-", "_")), "")
	}
	t.Setenv("RUNNER_DEBUG", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}

	app := cmd.NewApp()
	app.Writer = buf
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"cancelrun"}, args...))

	return buf.String(), err
}

func fastArgs(url string) []string {
	return []string{
		"--currents-api-url", url,
		"--bearer-token", "bearer-token",
		"--github-run-id", githubRunID,
		"--github-run-attempt", githubRunAttempt,
		"--min-timeout", "1ms",
		"--max-timeout", "2ms",
	}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	if err == nil {
		return 0
	}

	exitErr, ok := err.(cli.ExitCoder)
	require.True(t, ok, "expected an exit error, got %v", err)

	return exitErr.ExitCode()
}

func TestCancelRun_RequiredInputs(t *testing.T) {
	srv := fake.NewServer(fake.JSON(http.StatusOK, map[string]any{"status": "OK"}))
	defer srv.Close()

	all := fastArgs(srv.URL())

	tests := []struct {
		missing string
		args    []string
	}{
		{"currents-api-url", all[2:]},
		{"bearer-token", append(append([]string{}, all[:2]...), all[4:]...)},
		{"github-run-id", append(append([]string{}, all[:4]...), all[6:]...)},
		{"github-run-attempt", append(append([]string{}, all[:6]...), all[8:]...)},
	}

	for _, tt := range tests {
		t.Run(tt.missing, func(t *testing.T) {
			clearInputs(t)

			out, err := run(t, tt.args...)

			assert.Equal(t, 1, exitCode(t, err))
			assert.Contains(t, out, "::error::Input required and not supplied: "+tt.missing+"\n")
		})
	}

	assert.Empty(t, srv.Calls())
}

func TestCancelRun_InputsFromEnvironment(t *testing.T) {
	// Arrange
	clearInputs(t)

	srv := fake.NewServer(fake.JSON(http.StatusOK, map[string]any{"status": "OK"}))
	defer srv.Close()

	t.Setenv("INPUT_CURRENTS-API-URL", srv.URL())
	t.Setenv("INPUT_BEARER-TOKEN", "env-token")
	t.Setenv("INPUT_GITHUB-RUN-ID", githubRunID)
	t.Setenv("INPUT_GITHUB-RUN-ATTEMPT", githubRunAttempt)

	// Act
	out, err := run(t)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "The run was successfully canceled!")

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer env-token", calls[0].Header.Get("Authorization"))
	assert.Equal(t, &cancellation.Request{GithubRunID: githubRunID, GithubRunAttempt: githubRunAttempt}, calls[0].Request)
}

func TestCancelRun_InvalidURL(t *testing.T) {
	// Arrange
	clearInputs(t)

	srv := fake.NewServer(fake.JSON(http.StatusOK, map[string]any{"status": "OK"}))
	defer srv.Close()

	args := fastArgs(srv.URL())
	args[1] = "bad url"

	// Act
	out, err := run(t, args...)

	// Assert
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out, "::error::Input is not valid: currents-api-url")
	assert.Empty(t, srv.Calls())
}

func TestCancelRun_NotFound(t *testing.T) {
	// Arrange
	clearInputs(t)

	srv := fake.NewServer(fake.JSON(http.StatusNotFound, map[string]any{}))
	defer srv.Close()

	// Act
	out, err := run(t, fastArgs(srv.URL())...)

	// Assert
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out, "::error::Resource not found\n")
	assert.NotContains(t, out, "Attempt 1 failed")
	assert.Len(t, srv.Calls(), 1)
}

func TestCancelRun_RetriesOnServerError(t *testing.T) {
	// Arrange
	clearInputs(t)

	srv := fake.NewServer(fake.Empty(http.StatusInternalServerError))
	defer srv.Close()

	// Act
	out, err := run(t, fastArgs(srv.URL())...)

	// Assert
	assert.Equal(t, 1, exitCode(t, err))
	assert.Len(t, srv.Calls(), 4)
	assert.Contains(t, out, "Attempt 4 failed. There are 0 retries left.")
	assert.Contains(t, out, "::error::Failed request: (500)\n")
}

func TestCancelRun_SuccessWithDebug(t *testing.T) {
	// Arrange
	clearInputs(t)
	t.Setenv("RUNNER_DEBUG", "1")

	result := cancellation.Result{
		Status: cancellation.OK,
		Data: &cancellation.RunCancellation{
			Actor:            "api",
			CanceledAt:       "Mon Jan 01 2024",
			Reason:           "api call",
			GithubRunID:      githubRunID,
			GithubRunAttempt: githubRunAttempt,
		},
	}

	srv := fake.NewServer(fake.JSON(http.StatusOK, result))
	defer srv.Close()

	// Act
	out, err := run(t, append([]string{"cancel"}, fastArgs(srv.URL())...)...)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Calling the Currents API...\n")
	assert.Contains(t, out, "GitHub run id: 45166321\n")
	assert.Contains(t, out, "GitHub run attempt: 1\n")
	assert.Contains(t, out, "::debug::")
	assert.Contains(t, out, `"reason":"api call"`)
	assert.True(t, strings.HasSuffix(out, "The run was successfully canceled!\n"))
}

func TestCancelRun_NonBooleanRunnerDebugIsOff(t *testing.T) {
	// Arrange
	clearInputs(t)
	t.Setenv("RUNNER_DEBUG", "yes")

	srv := fake.NewServer(fake.JSON(http.StatusOK, map[string]any{"status": "OK"}))
	defer srv.Close()

	// Act
	out, err := run(t, fastArgs(srv.URL())...)

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, out, "Incorrect Usage")
	assert.NotContains(t, out, "::debug::")
	assert.Contains(t, out, "The run was successfully canceled!\n")
	assert.Len(t, srv.Calls(), 1)
}

func TestCancelRun_MalformedTypedInputs(t *testing.T) {
	srv := fake.NewServer(fake.JSON(http.StatusOK, map[string]any{"status": "OK"}))
	defer srv.Close()

	t.Run("retries from the environment", func(t *testing.T) {
		// Arrange
		clearInputs(t)
		t.Setenv("INPUT_RETRIES", "abc")

		// Act
		out, err := run(t, fastArgs(srv.URL())...)

		// Assert
		assert.Equal(t, 1, exitCode(t, err))
		assert.NotContains(t, out, "Incorrect Usage")
		assert.Contains(t, out, "::error::Input is not valid: retries: must be a whole number\n")
	})

	t.Run("min-timeout from a flag", func(t *testing.T) {
		// Arrange
		clearInputs(t)
		args := fastArgs(srv.URL())
		args[9] = "soon"

		// Act
		out, err := run(t, args...)

		// Assert
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, out, "::error::Input is not valid: min-timeout: ")
	})

	assert.Empty(t, srv.Calls())
}

func TestCancelRun_UnsupportedLogFormat(t *testing.T) {
	// Arrange
	clearInputs(t)

	// Act
	_, err := run(t, "--log-format", "xml")

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "unsupported log format: xml")
}
