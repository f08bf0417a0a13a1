// Package clipboardx wraps system clipboard access for the prompt host.
// The system clipboard is tried first, then common clipboard tools by name;
// writes also emit OSC 52 so copies survive SSH sessions, and an in-process
// fallback keeps copy/paste working on headless systems with no clipboard
// tooling at all.
package clipboardx

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

var internalClipboard string

type tool struct {
	name string
	args []string
}

var writeTools = []tool{
	{name: "wl-copy"},
	{name: "xclip", args: []string{"-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--input"}},
	{name: "pbcopy"},
	{name: "clip.exe"},
}

var readTools = []tool{
	{name: "wl-paste", args: []string{"--no-newline"}},
	{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--output"}},
	{name: "pbpaste"},
	{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
}

func Write(text string) bool {
	internalClipboard = text
	ok := false

	if err := clipboard.WriteAll(text); err == nil {
		ok = true
	}
	if writeWithTools(text) {
		ok = true
	}
	if writeOSC52(text) {
		ok = true
	}
	return ok
}

func Read() string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text
	}
	if text, ok := readWithTools(); ok && text != "" {
		return text
	}
	return internalClipboard
}

func writeWithTools(text string) bool {
	ok := false
	for _, t := range writeTools {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		cmd := exec.Command(t.name, t.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

func readWithTools() (string, bool) {
	for _, t := range readTools {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		out, err := exec.Command(t.name, t.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

func writeOSC52(text string) bool {
	if text == "" {
		return false
	}
	if fi, err := os.Stdout.Stat(); err != nil || (fi.Mode()&os.ModeCharDevice) == 0 {
		return false
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stdout, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}
