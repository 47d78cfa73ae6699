package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// AudioWindow is one slice of a WAV file written to its own file. Start and
// End are seconds from the beginning of the source audio.
type AudioWindow struct {
	Index int
	Path  string
	Start float64
	End   float64
}

func (w AudioWindow) Duration() float64 {
	return w.End - w.Start
}

// readBlockSamples bounds how many samples are held in memory while
// copying a window out of the source file.
const readBlockSamples = 64 * 1024

// SplitAudio cuts audioFile into consecutive windows of the given length and
// writes each to outDir. The last window holds whatever audio remains, and
// empty audio yields no windows. Callers own the returned files.
func SplitAudio(audioFile string, window time.Duration, outDir string) ([]AudioWindow, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window duration must be positive, got %s", window)
	}

	file, err := os.Open(audioFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to decode WAV '%s': %w", audioFile, err)
	}
	if err := decoder.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode WAV '%s': %w", audioFile, err)
	}
	if decoder.PCMChunk == nil {
		return nil, fmt.Errorf("failed to decode WAV '%s': no PCM data", audioFile)
	}

	numChans := int(decoder.NumChans)
	sampleRate := int(decoder.SampleRate)
	bitDepth := int(decoder.BitDepth)
	if numChans < 1 || sampleRate < 1 || bitDepth < 8 {
		return nil, fmt.Errorf("invalid WAV header in '%s': %d channels at %d Hz, %d bit", audioFile, numChans, sampleRate, bitDepth)
	}

	windowFrames := int(window.Seconds() * float64(sampleRate))
	if windowFrames < 1 {
		return nil, fmt.Errorf("window %s is shorter than one sample at %d Hz", window, sampleRate)
	}

	copier := &windowCopier{
		decoder:    decoder,
		block:      make([]int, readBlockSamples-readBlockSamples%numChans),
		remaining:  int(decoder.PCMLen()) / ((bitDepth + 7) / 8),
		numChans:   numChans,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
	}

	base := strings.TrimSuffix(filepath.Base(audioFile), filepath.Ext(audioFile))
	var windows []AudioWindow
	startFrame := 0
	for i := 0; copier.remaining > 0; i++ {
		chunkFile := filepath.Join(outDir, fmt.Sprintf("%s_chunk_%d.wav", base, i))
		frames, err := copier.copyWindow(chunkFile, windowFrames*numChans)
		if err != nil {
			removeWindows(windows)
			os.Remove(chunkFile)
			return nil, fmt.Errorf("failed to create audio chunk %d: %w", i, err)
		}
		if frames == 0 {
			break
		}

		windows = append(windows, AudioWindow{
			Index: i,
			Path:  chunkFile,
			Start: float64(startFrame) / float64(sampleRate),
			End:   float64(startFrame+frames) / float64(sampleRate),
		})
		startFrame += frames
		if frames < windowFrames {
			break
		}
	}

	return windows, nil
}

// windowCopier streams PCM samples from a decoder into per-window WAV
// files through a fixed-size block.
type windowCopier struct {
	decoder    *wav.Decoder
	block      []int
	remaining  int
	numChans   int
	sampleRate int
	bitDepth   int
}

// copyWindow writes up to samples samples to path and returns the number of
// frames written. No file is created once the data is exhausted.
func (c *windowCopier) copyWindow(path string, samples int) (int, error) {
	var out *os.File
	var encoder *wav.Encoder
	written := 0

	for written < samples && c.remaining > 0 {
		buf := &audio.IntBuffer{Data: c.block[:min(len(c.block), samples-written, c.remaining)]}
		n, err := c.decoder.PCMBuffer(buf)
		if err != nil {
			if out != nil {
				out.Close()
			}
			return 0, err
		}
		if n == 0 {
			break
		}

		if encoder == nil {
			out, err = os.Create(path)
			if err != nil {
				return 0, err
			}
			encoder = wav.NewEncoder(out, c.sampleRate, c.bitDepth, c.numChans, 1)
		}
		err = encoder.Write(&audio.IntBuffer{
			Format:         &audio.Format{NumChannels: c.numChans, SampleRate: c.sampleRate},
			Data:           buf.Data[:n],
			SourceBitDepth: c.bitDepth,
		})
		if err != nil {
			out.Close()
			return 0, err
		}

		written += n
		c.remaining -= n
	}

	if encoder == nil {
		return 0, nil
	}
	if err := encoder.Close(); err != nil {
		out.Close()
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}
	return written / c.numChans, nil
}

func removeWindows(windows []AudioWindow) {
	for _, w := range windows {
		os.Remove(w.Path)
	}
}
