package command

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/site-tools/node-deploy/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunnerMockLogger is a simple mock implementation of Logger for testing
type RunnerMockLogger struct{}

func (m *RunnerMockLogger) Debugf(format string, args ...interface{}) {}
func (m *RunnerMockLogger) Infof(format string, args ...interface{})  {}
func (m *RunnerMockLogger) Warnf(format string, args ...interface{})  {}
func (m *RunnerMockLogger) Errorf(format string, args ...interface{}) {}

type logEntry struct {
	level   string
	message string
}

// RecordingLogger captures log entries for assertions on the logging contract
type RecordingLogger struct {
	entries []logEntry
}

func (l *RecordingLogger) record(level, format string, args ...interface{}) {
	l.entries = append(l.entries, logEntry{level: level, message: fmt.Sprintf(format, args...)})
}

func (l *RecordingLogger) Debugf(format string, args ...interface{}) { l.record("debug", format, args...) }
func (l *RecordingLogger) Infof(format string, args ...interface{})  { l.record("info", format, args...) }
func (l *RecordingLogger) Warnf(format string, args ...interface{})  { l.record("warn", format, args...) }
func (l *RecordingLogger) Errorf(format string, args ...interface{}) { l.record("error", format, args...) }

// indexOf returns the position of the first entry at the given level whose
// message contains substr, or -1
func (l *RecordingLogger) indexOf(level, substr string) int {
	for i, entry := range l.entries {
		if entry.level == level && strings.Contains(entry.message, substr) {
			return i
		}
	}
	return -1
}

func (l *RecordingLogger) messagesAt(level string) string {
	var messages []string
	for _, entry := range l.entries {
		if entry.level == level {
			messages = append(messages, entry.message)
		}
	}
	return strings.Join(messages, "\n")
}

// echoSpec returns a platform-specific spec that prints "hello" and exits zero
func echoSpec() Spec {
	if runtime.GOOS == "windows" {
		return Spec{Name: "C:\\Windows\\System32\\cmd.exe", Args: []string{"/c", "echo", "hello"}}
	}
	return Spec{Name: "/bin/echo", Args: []string{"hello"}}
}

// failingSpec returns a platform-specific spec that exits with the given code
func failingSpec(code string) Spec {
	if runtime.GOOS == "windows" {
		return Spec{Name: "C:\\Windows\\System32\\cmd.exe", Args: []string{"/c", "exit", code}}
	}
	return Spec{Name: "/bin/sh", Args: []string{"-c", "exit " + code}}
}

func TestRun_Success(t *testing.T) {
	runner := NewRunner(&RunnerMockLogger{})

	result, err := runner.Run(context.Background(), echoSpec())

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "hello")
	assert.Empty(t, result.Stderr)
}

func TestRun_NonZeroExit(t *testing.T) {
	runner := NewRunner(&RunnerMockLogger{})

	result, err := runner.Run(context.Background(), failingSpec("3"))

	require.Error(t, err)
	assert.True(t, errors.IsCommandError(err))
	assert.Equal(t, 3, result.ExitCode)
}

func TestRun_StderrCaptured(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stderr redirection test uses a POSIX shell")
	}

	runner := NewRunner(&RunnerMockLogger{})

	result, err := runner.Run(context.Background(), Spec{
		Name: "/bin/sh",
		Args: []string{"-c", "echo oops >&2; exit 1"},
	})

	require.Error(t, err)
	assert.True(t, errors.IsCommandError(err))
	assert.Contains(t, result.Stderr, "oops")
}

func TestRun_MissingExecutable(t *testing.T) {
	runner := NewRunner(&RunnerMockLogger{})

	_, err := runner.Run(context.Background(), Spec{Name: "definitely-not-a-real-binary-12345"})

	require.Error(t, err)
	assert.True(t, errors.IsProcessError(err))
}

func TestRun_NilContext(t *testing.T) {
	runner := NewRunner(&RunnerMockLogger{})

	//lint:ignore SA1012 nil context is the case under test
	_, err := runner.Run(nil, echoSpec())

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRun_WorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("working directory test uses a POSIX shell")
	}

	dir := t.TempDir()
	runner := NewRunner(&RunnerMockLogger{})

	result, err := runner.Run(context.Background(), Spec{
		Name:             "/bin/sh",
		Args:             []string{"-c", "pwd"},
		WorkingDirectory: dir,
	})

	require.NoError(t, err)
	assert.Contains(t, result.Stdout, dir)
}

func TestRun_LogsInvocationBeforeAndResultAfter(t *testing.T) {
	logger := &RecordingLogger{}
	runner := NewRunner(logger)
	spec := echoSpec()

	_, err := runner.Run(context.Background(), spec)
	require.NoError(t, err)

	executingIdx := logger.indexOf("info", "Executing command: "+spec.CommandLine())
	successIdx := logger.indexOf("info", "Command executed successfully")
	require.NotEqual(t, -1, executingIdx, "invocation must be logged with the full command line")
	require.NotEqual(t, -1, successIdx, "success must be logged after execution")
	assert.Less(t, executingIdx, successIdx)
	assert.Empty(t, logger.messagesAt("error"))
}

func TestRun_LogsCapturedOutputOnFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("output capture test uses a POSIX shell")
	}

	logger := &RecordingLogger{}
	runner := NewRunner(logger)
	spec := Spec{
		Name: "/bin/sh",
		Args: []string{"-c", "echo partial progress; echo boom >&2; exit 2"},
	}

	_, err := runner.Run(context.Background(), spec)
	require.Error(t, err)

	errorMessages := logger.messagesAt("error")
	assert.Contains(t, errorMessages, "Command failed: "+spec.CommandLine())
	assert.Contains(t, errorMessages, "partial progress")
	assert.Contains(t, errorMessages, "boom")

	// the invocation itself was still logged before execution
	assert.NotEqual(t, -1, logger.indexOf("info", "Executing command: "+spec.CommandLine()))
}

func TestProbe(t *testing.T) {
	runner := NewRunner(&RunnerMockLogger{})

	assert.True(t, runner.Probe(context.Background(), echoSpec()))
	assert.False(t, runner.Probe(context.Background(), failingSpec("1")))
	assert.False(t, runner.Probe(context.Background(), Spec{Name: "definitely-not-a-real-binary-12345"}))
}

func TestValidateSpec(t *testing.T) {
	tests := []struct {
		name        string
		spec        Spec
		expectError bool
	}{
		{
			name:        "valid spec",
			spec:        Spec{Name: "git", Args: []string{"--version"}},
			expectError: false,
		},
		{
			name:        "missing name",
			spec:        Spec{Args: []string{"--version"}},
			expectError: true,
		},
		{
			name:        "invalid environment variable",
			spec:        Spec{Name: "git", Environment: []string{"NO_EQUALS_SIGN"}},
			expectError: true,
		},
		{
			name:        "nonexistent working directory",
			spec:        Spec{Name: "git", WorkingDirectory: "/definitely/not/a/real/dir"},
			expectError: true,
		},
		{
			name:        "valid environment variable",
			spec:        Spec{Name: "git", Environment: []string{"KEY=value"}},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpec(tt.spec)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSpec_CommandLine(t *testing.T) {
	spec := Spec{Name: "pm2", Args: []string{"start", "npm run start", "--name", "my-app"}}
	assert.Equal(t, "pm2 start npm run start --name my-app", spec.CommandLine())
}
