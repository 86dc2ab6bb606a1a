// Command mpmdemo prints per-window pitch estimates for a mono 16-bit PCM
// WAV file using the McLeod Pitch Method.
//
// Usage:
//
//	mpmdemo [flags] file.wav
//
// Examples:
//
//	mpmdemo sample.wav
//	mpmdemo -size 2048 -hop 512 -clarity 0.93 sample.wav
package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/mpm-pitch/dsp/buffer"
	"github.com/cwbudde/mpm-pitch/dsp/mpm"
)

func main() {
	size := flag.Int("size", 1024, "analysis window length in samples")
	hop := flag.Int("hop", 0, "hop size in samples between windows (default: size, no overlap)")
	clarity := flag.Float64("clarity", 0.9, "key-maximum clarity threshold, in (0, 1]")
	minVolume := flag.Float64("min-volume-db", 0, "RMS volume gate relative to full scale, in dB (< 0 to enable; 0 disables)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mpmdemo [flags] file.wav\n\n")
		fmt.Fprintf(os.Stderr, "Prints per-window pitch estimates for a mono 16-bit PCM WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *size, *hop, *clarity, *minVolume); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, size, hop int, clarityThreshold, minVolumeDB float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sampleRate, samples, err := readMonoPCM16(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if hop <= 0 {
		hop = size
	}

	det, err := mpm.NewPitchDetector(size)
	if err != nil {
		return fmt.Errorf("create detector: %w", err)
	}
	if err := det.SetClarityThreshold(clarityThreshold); err != nil {
		return fmt.Errorf("set clarity threshold: %w", err)
	}
	if minVolumeDB < 0 {
		if err := det.SetMinVolumeDecibels(minVolumeDB); err != nil {
			return fmt.Errorf("set min volume: %w", err)
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tStart [s]\tPitch [Hz]\tClarity\n")
	fmt.Fprintf(tw, "------\t---------\t----------\t-------\n")

	track := buffer.FromSlice(samples)
	pool := buffer.NewPool()

	window := 0
	for start := 0; start+size <= track.Len(); start += hop {
		win := pool.Get(size)
		copy(win.Samples(), track.Samples()[start:start+size])

		result, err := det.FindPitch(win.Samples(), float64(sampleRate))
		pool.Put(win)
		if err != nil {
			return fmt.Errorf("find pitch at window %d: %w", window, err)
		}

		if result.Clarity > 0 {
			fmt.Fprintf(tw, "%d\t%.3f\t%.2f\t%.3f\n", window, float64(start)/float64(sampleRate), result.Pitch, result.Clarity)
		} else {
			fmt.Fprintf(tw, "%d\t%.3f\t-\t-\n", window, float64(start)/float64(sampleRate))
		}
		window++
	}

	return tw.Flush()
}

// readMonoPCM16 reads a canonical mono 16-bit PCM WAV file, returning the
// sample rate and the samples normalised to [-1, 1].
func readMonoPCM16(r io.Reader) (sampleRate int, samples []float64, err error) {
	var riffHeader [12]byte
	if _, err := io.ReadFull(r, riffHeader[:]); err != nil {
		return 0, nil, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(riffHeader[0:4]) != "RIFF" || string(riffHeader[8:12]) != "WAVE" {
		return 0, nil, errors.New("not a RIFF/WAVE file")
	}

	var numChannels, bitsPerSample uint16
	var haveFmt bool

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r, chunkHeader[:]); err != nil {
			if err == io.EOF {
				break
			}
			return 0, nil, fmt.Errorf("read chunk header: %w", err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return 0, nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			numChannels = binary.LittleEndian.Uint16(body[2:4])
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample = binary.LittleEndian.Uint16(body[14:16])
			haveFmt = true

		case "data":
			if !haveFmt {
				return 0, nil, errors.New("data chunk before fmt chunk")
			}
			if numChannels != 1 {
				return 0, nil, fmt.Errorf("unsupported channel count %d, want mono", numChannels)
			}
			if bitsPerSample != 16 {
				return 0, nil, fmt.Errorf("unsupported bits per sample %d, want 16", bitsPerSample)
			}

			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, body); err != nil {
				return 0, nil, fmt.Errorf("read data chunk: %w", err)
			}

			samples = make([]float64, len(body)/2)
			for i := range samples {
				v := int16(binary.LittleEndian.Uint16(body[2*i : 2*i+2]))
				samples[i] = float64(v) / 32768.0
			}
			return sampleRate, samples, nil

		default:
			skip := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, skip); err != nil {
				return 0, nil, fmt.Errorf("skip chunk %q: %w", chunkID, err)
			}
		}

		if chunkSize%2 == 1 {
			var pad [1]byte
			if _, err := io.ReadFull(r, pad[:]); err != nil {
				break
			}
		}
	}

	return 0, nil, errors.New("no data chunk found")
}
