package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:02,500\n你好，世界\nHello, world\n\n" +
	"2\n00:00:03,000 --> 00:00:04,000\n<i>Goodbye</i>\n"

// stubFFmpeg answers -version and -filters like a real build and otherwise
// writes a 20000-byte file at its last argument.
const stubFFmpeg = `#!/bin/sh
case "$*" in
*-version*) echo "ffmpeg version 6.1-stub"; exit 0 ;;
*-filters*)
	echo " ... ass               V->V       Render ASS subtitles onto input video using the libass library."
	echo " ... subtitles         V->V       Render text subtitles onto input video using the libass library."
	exit 0 ;;
esac
for last in "$@"; do :; done
head -c 20000 /dev/zero > "$last"
`

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"SUBMERGE_FFMPEG", "SUBMERGE_FFPROBE", "SUBMERGE_WORK_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(base)

	ffmpeg := filepath.Join(base, "ffmpeg")
	if err := os.WriteFile(ffmpeg, []byte(stubFFmpeg), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		outputDir:  filepath.Join(base, "out"),
	}
	content := fmt.Sprintf(`[paths]
work_dir = %q
output_dir = %q
log_dir = %q

[ffmpeg]
ffmpeg_binary = %q
ffprobe_binary = %q

[logging]
level = "error"
`, filepath.Join(base, "work"), env.outputDir, filepath.Join(base, "logs"), ffmpeg, filepath.Join(base, "missing-ffprobe"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(e.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func (e *cliTestEnv) writeInputs(t *testing.T, prefix string) (string, string) {
	t.Helper()
	video := e.writeFile(t, prefix+".mp4", bytes.Repeat([]byte{0x01}, 4096))
	subs := e.writeFile(t, prefix+".srt", []byte(sampleSRT))
	return video, subs
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func requireSize(t *testing.T, path string, size int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() != size {
		t.Fatalf("%s size = %d, want %d", path, info.Size(), size)
	}
}
