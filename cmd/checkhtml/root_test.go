package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body><p>hi</p></body></html>`

func TestRoot_DefaultPaths(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", `<html><body><h1>Title</h1><ul class="nav"><li><a href="/">Home</a></li></ul></body></html>`)
	writeFile(t, dir, "checks.json", `["img[alt]", "h1", ".nav a"]`)

	code, stdout, stderr := execute(t)

	require.Equal(t, 0, code, stderr)
	want := "{\n" +
		"    \".nav a\": true,\n" +
		"    \"h1\": true,\n" +
		"    \"img[alt]\": false\n" +
		"}\n"
	assert.Equal(t, want, stdout)
}

func TestRoot_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		checks string
		want   string
	}{
		{name: "present", checks: `["p"]`, want: "{\n    \"p\": true\n}\n"},
		{name: "absent", checks: `["span"]`, want: "{\n    \"span\": false\n}\n"},
		{name: "empty", checks: `[]`, want: "{}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := workdir(t)
			htmlPath := writeFile(t, dir, "page.html", page)
			checksPath := writeFile(t, dir, "c.json", tt.checks)

			code, stdout, stderr := execute(t, "--checks", checksPath, "--file", htmlPath)

			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRoot_ShortFlags(t *testing.T) {
	dir := workdir(t)
	htmlPath := writeFile(t, dir, "page.html", page)
	checksPath := writeFile(t, dir, "c.json", `["p"]`)

	code, stdout, _ := execute(t, "-c", checksPath, "-f", htmlPath)

	require.Equal(t, 0, code)
	assert.Equal(t, "{\n    \"p\": true\n}\n", stdout)
}

func TestRoot_Idempotent(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)
	writeFile(t, dir, "checks.json", `["p", "span", "body > p"]`)

	_, first, _ := execute(t)
	_, second, _ := execute(t)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestRoot_MissingChecksFile(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)

	code, stdout, stderr := execute(t, "--checks", "nope.json")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout, "no JSON output on failure")
	assert.Equal(t, "nope.json does not exist. Exiting.\n", stderr)
}

func TestRoot_MissingHTMLFile(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "checks.json", `["p"]`)

	code, stdout, stderr := execute(t)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "index.html does not exist. Exiting.\n", stderr)
}

func TestRoot_MalformedChecks(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)
	writeFile(t, dir, "checks.json", `{"p": true}`)

	code, stdout, stderr := execute(t)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: malformed checks file checks.json")
}

func TestRoot_InvalidSelector(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)
	writeFile(t, dir, "checks.json", `["p", "a[href"]`)

	code, stdout, stderr := execute(t)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `invalid selector "a[href"`)
}

func TestRoot_MarkdownFormat(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)
	writeFile(t, dir, "checks.json", `["p", "span"]`)

	code, stdout, stderr := execute(t, "--format", "markdown")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "# HTML Check Report")
	assert.Contains(t, stdout, "1 of 2 checks present.")
}

func TestRoot_UnknownFormat(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)
	writeFile(t, dir, "checks.json", `["p"]`)

	code, stdout, stderr := execute(t, "--format", "xml")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unknown output format")
}

func TestRoot_RemotePage(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<div id="x"></div>`))
	}))
	defer server.Close()

	dir := workdir(t)
	writeFile(t, dir, "checks.json", `["#x", "#y"]`)
	tmpDir := t.TempDir()
	t.Setenv("CHECKHTML_TEMP_DIR", tmpDir)

	code, stdout, stderr := execute(t, "--url", server.URL)

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "{\n    \"#x\": true,\n    \"#y\": false\n}\n", stdout)
	assert.Equal(t, 1, requests)

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file should be removed")

	// The remote pipeline never looks at the local default file.
	_, err = os.Stat(filepath.Join(dir, "index.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestRoot_RemoteFailureExitsNonZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	target := server.URL
	server.Close()

	dir := workdir(t)
	writeFile(t, dir, "checks.json", `["p"]`)

	code, stdout, stderr := execute(t, "-u", target)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: fetch error for "+target)
}

func TestRoot_RemoteHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	dir := workdir(t)
	writeFile(t, dir, "checks.json", `["p"]`)

	code, stdout, stderr := execute(t, "--url", server.URL)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "HTTP status 410")
}

func TestRoot_RemoteChecksGuardedBeforeFetch(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
	}))
	defer server.Close()

	workdir(t)

	code, _, stderr := execute(t, "--url", server.URL)

	assert.Equal(t, 1, code)
	assert.Equal(t, "checks.json does not exist. Exiting.\n", stderr)
	assert.Zero(t, requests)
}

func TestRoot_FileAndURLAreExclusive(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)
	writeFile(t, dir, "checks.json", `["p"]`)

	code, stdout, stderr := execute(t, "--file", "index.html", "--url", "http://example.com")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "none of the others can be")
}

func TestRoot_UnexpectedArgument(t *testing.T) {
	workdir(t)

	code, _, stderr := execute(t, "index.html")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)
	writeFile(t, dir, "checks.json", `["p"]`)
	t.Setenv("CHECKHTML_TIMEOUT", "0s")

	code, stdout, stderr := execute(t)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "config error")
}

func TestRoot_ConfigFileFlag(t *testing.T) {
	dir := workdir(t)
	writeFile(t, dir, "index.html", page)
	writeFile(t, dir, "checks.json", `["p"]`)
	configPath := writeFile(t, dir, "config.yml", "environment: staging\n")

	code, _, stderr := execute(t, "--config", configPath)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Environment")
}

func TestPipelineFor(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want pipeline
	}{
		{name: "no flags", args: []string{}, want: localPipeline},
		{name: "file flag", args: []string{"--file", "a.html"}, want: localPipeline},
		{name: "url flag", args: []string{"--url", "http://example.com"}, want: remotePipeline},
		{name: "empty url flag", args: []string{"--url="}, want: remotePipeline},
		{name: "short url flag", args: []string{"-u", "http://example.com"}, want: remotePipeline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			var got pipeline
			cmd.RunE = func(cmd *cobra.Command, _ []string) error {
				got = pipelineFor(cmd)
				return nil
			}
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoot_URLHelpMentionsEmptyValue(t *testing.T) {
	flag := newRootCmd().Flags().Lookup("url")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "--url=")
	assert.Equal(t, defaultURL, flag.DefValue)
}

func TestRoot_EmptyURLSelectsRemotePipeline(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--url="}))

	assert.Equal(t, remotePipeline, pipelineFor(cmd))
	value, err := cmd.Flags().GetString("url")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRoot_RegisteredSubcommands(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"validate-checks", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRoot_SubcommandFlagsAreNotShared(t *testing.T) {
	first, _, err := newRootCmd().Find([]string{"validate-checks"})
	require.NoError(t, err)
	require.NoError(t, first.ParseFlags([]string{"--checks", "mine.json"}))

	second, _, err := newRootCmd().Find([]string{"validate-checks"})
	require.NoError(t, err)
	assert.False(t, second.Flags().Changed("checks"))
	value, err := second.Flags().GetString("checks")
	require.NoError(t, err)
	assert.Equal(t, defaultChecksFile, value)
}
