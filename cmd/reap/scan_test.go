package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func resetScanFlags() {
	format = "terminal"
	policyPath = ""
	watchMode = false
	retainPublic = true
	configPath = ""
	timeout = 30 * time.Second
}

func TestRunScan_JSONFormatReportsUnreferencedFunction(t *testing.T) {
	cliLogger = zap.NewNop()
	resetScanFlags()
	defer resetScanFlags()

	dir := t.TempDir()
	writeFixture(t, dir, "main.go", `package main

func main() {}
`)
	writeFixture(t, dir, "dead.go", `package main

func dead() {}
`)

	format = "json"
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, runScan(cmd, []string{dir}))
	assert.Contains(t, buf.String(), "dead")
}

func TestRunScan_TerminalFormatNoFindingsMessage(t *testing.T) {
	cliLogger = zap.NewNop()
	resetScanFlags()
	defer resetScanFlags()

	dir := t.TempDir()
	writeFixture(t, dir, "main.go", `package main

func main() {
	used()
}

func used() {}
`)

	format = "terminal"
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, runScan(cmd, []string{dir}))
	assert.Contains(t, buf.String(), "no dead code found")
}
