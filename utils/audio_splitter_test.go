package utils

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const testSampleRate = 1000

// writeTestWAV writes a mono 16-bit sine tone of the given length and
// returns its samples.
func writeTestWAV(t *testing.T, path string, seconds float64) []int {
	t.Helper()

	frames := int(seconds * testSampleRate)
	data := make([]int, frames)
	for i := range data {
		data[i] = int(8000 * math.Sin(2*math.Pi*440*float64(i)/testSampleRate))
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create WAV file: %v", err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, testSampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: testSampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		t.Fatalf("Failed to write WAV data: %v", err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("Failed to close WAV encoder: %v", err)
	}
	return data
}

func TestSplitAudio(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "talk.wav")
	writeTestWAV(t, source, 65)

	outDir := t.TempDir()
	windows, err := SplitAudio(source, 30*time.Second, outDir)
	if err != nil {
		t.Fatalf("SplitAudio failed: %v", err)
	}

	want := []struct{ start, end float64 }{{0, 30}, {30, 60}, {60, 65}}
	if len(windows) != len(want) {
		t.Fatalf("Expected %d windows, got %d", len(want), len(windows))
	}

	for i, w := range windows {
		if w.Index != i {
			t.Errorf("Window %d: expected index %d, got %d", i, i, w.Index)
		}
		if w.Start != want[i].start || w.End != want[i].end {
			t.Errorf("Window %d: expected [%v, %v], got [%v, %v]", i, want[i].start, want[i].end, w.Start, w.End)
		}
		if filepath.Dir(w.Path) != outDir {
			t.Errorf("Window %d written outside the output directory: %s", i, w.Path)
		}

		file, err := os.Open(w.Path)
		if err != nil {
			t.Fatalf("Failed to open window %d: %v", i, err)
		}
		decoder := wav.NewDecoder(file)
		duration, err := decoder.Duration()
		file.Close()
		if err != nil {
			t.Fatalf("Failed to read duration of window %d: %v", i, err)
		}
		if got := duration.Seconds(); math.Abs(got-w.Duration()) > 0.05 {
			t.Errorf("Window %d: file holds %.3fs, expected %.3fs", i, got, w.Duration())
		}
	}
}

func TestSplitAudioExactMultiple(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "exact.wav")
	writeTestWAV(t, source, 60)

	windows, err := SplitAudio(source, 30*time.Second, dir)
	if err != nil {
		t.Fatalf("SplitAudio failed: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("Expected 2 windows, got %d", len(windows))
	}
	if windows[1].End != 60 {
		t.Errorf("Expected last window to end at 60, got %v", windows[1].End)
	}
}

func TestSplitAudioErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := SplitAudio(filepath.Join(dir, "missing.wav"), 30*time.Second, dir); err == nil {
		t.Error("Expected an error for a missing file, got nil")
	}

	notWAV := filepath.Join(dir, "notes.wav")
	if err := os.WriteFile(notWAV, []byte("mock audio content"), 0644); err != nil {
		t.Fatalf("Failed to create mock file: %v", err)
	}
	if _, err := SplitAudio(notWAV, 30*time.Second, dir); err == nil {
		t.Error("Expected an error for an invalid WAV file, got nil")
	}

	source := filepath.Join(dir, "ok.wav")
	writeTestWAV(t, source, 1)
	if _, err := SplitAudio(source, 0, dir); err == nil {
		t.Error("Expected an error for a zero window, got nil")
	}
}

func TestSplitAudioStreamsAcrossBlocks(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "lecture.wav")
	data := writeTestWAV(t, source, 250)

	// 100 s at 1 kHz is larger than one read block, so every full window
	// is assembled from several reads
	windows, err := SplitAudio(source, 100*time.Second, t.TempDir())
	if err != nil {
		t.Fatalf("SplitAudio failed: %v", err)
	}
	if 100*testSampleRate <= readBlockSamples {
		t.Fatalf("Window of %d samples does not span multiple blocks of %d", 100*testSampleRate, readBlockSamples)
	}

	want := []struct{ start, end float64 }{{0, 100}, {100, 200}, {200, 250}}
	if len(windows) != len(want) {
		t.Fatalf("Expected %d windows, got %d", len(want), len(windows))
	}

	for i, w := range windows {
		if w.Start != want[i].start || w.End != want[i].end {
			t.Errorf("Window %d: expected [%v, %v], got [%v, %v]", i, want[i].start, want[i].end, w.Start, w.End)
		}

		file, err := os.Open(w.Path)
		if err != nil {
			t.Fatalf("Failed to open window %d: %v", i, err)
		}
		buf, err := wav.NewDecoder(file).FullPCMBuffer()
		file.Close()
		if err != nil {
			t.Fatalf("Failed to decode window %d: %v", i, err)
		}

		expected := data[int(w.Start)*testSampleRate : int(w.End)*testSampleRate]
		if len(buf.Data) != len(expected) {
			t.Fatalf("Window %d: expected %d samples, got %d", i, len(expected), len(buf.Data))
		}
		for j := range expected {
			if buf.Data[j] != expected[j] {
				t.Fatalf("Window %d: sample %d is %d, expected %d", i, j, buf.Data[j], expected[j])
			}
		}
	}
}

func TestSplitAudioEmpty(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "empty.wav")
	writeTestWAV(t, source, 0)

	windows, err := SplitAudio(source, 30*time.Second, dir)
	if err != nil {
		t.Fatalf("SplitAudio failed: %v", err)
	}
	if len(windows) != 0 {
		t.Errorf("Expected no windows for empty audio, got %d", len(windows))
	}
}
