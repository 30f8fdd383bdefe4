package loop

import (
	"bufio"
	"bytes"
	"image"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	appconfig "github.com/tomz197/fruitslice/internal/config"
)

func TestRunQuitShowsFinalScreenAndReleases(t *testing.T) {
	sizes := 0
	termSize := func() (int, int, error) {
		sizes++
		if sizes == 1 {
			return 80, 24, nil
		}
		return 100, 30, nil
	}
	cues := &fakeCues{}
	var out bytes.Buffer

	start := time.Now()
	err := Run(bufio.NewReader(strings.NewReader("q")), &out, appconfig.Classic(), log.New(io.Discard), TerminalOptions{
		TermSizeFunc:    termSize,
		Cues:            cues,
		GameOverDisplay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d := time.Since(start); d > 2*time.Second {
		t.Errorf("Run took %v, want the short final screen", d)
	}

	got := out.String()
	if !strings.Contains(got, "Final Score: 0") {
		t.Error("final score not rendered")
	}
	if !strings.Contains(got, "\033[?1003h") || !strings.Contains(got, "\033[?1003l") {
		t.Error("mouse reporting not enabled and disabled again")
	}
	if !strings.Contains(got, "\033[?25h") {
		t.Error("cursor not shown again")
	}
	// Start, resize and the end of the final screen each clear the terminal.
	if n := strings.Count(got, "\033[2J"); n < 3 {
		t.Errorf("screen cleared %d times, want at least 3", n)
	}
	// Row 30 only exists after the resize to 100x30.
	if !strings.Contains(got, "\033[30;1H") {
		t.Error("final screen not drawn at the resized height")
	}
	if !cues.closed {
		t.Error("cues not released")
	}
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	termSize := func() (int, int, error) { return 40, 12, nil }
	cues := &fakeCues{}
	var out bytes.Buffer

	err := Run(bufio.NewReader(strings.NewReader("")), &out, appconfig.Dual(), log.New(io.Discard), TerminalOptions{
		TermSizeFunc:    termSize,
		Cues:            cues,
		GameOverDisplay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Final Score: 0") {
		t.Error("final score not rendered")
	}
	if !cues.closed {
		t.Error("cues not released")
	}
}

func TestNewSessionLogsSpawnOdds(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	settings := appconfig.Classic()
	detectors, err := Detectors(settings)
	if err != nil {
		t.Fatalf("Detectors: %v", err)
	}
	_, err = NewSession(Options{
		Settings:  settings,
		Camera:    &fakeCamera{frame: image.NewGray(image.Rect(0, 0, 4, 4))},
		Detectors: detectors,
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"spawn odds", "bomb_start=", "bomb_end=", "watermelon_end="} {
		if !strings.Contains(got, want) {
			t.Errorf("log %q does not contain %q", got, want)
		}
	}
}
