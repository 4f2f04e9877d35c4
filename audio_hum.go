package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"tunnelrunner/internal/hum"
	"tunnelrunner/internal/tunnel"
)

// humPlayer plays the engine drone through ebiten's audio context.
type humPlayer struct {
	ctx    *audio.Context
	stream *hum.Stream
	player *audio.Player
}

// startHum opens the audio device and starts the drone. loopPath, when set,
// names a WAV file mixed under it.
func startHum(loopPath string) (*humPlayer, error) {
	ctx := audio.NewContext(hum.SampleRate)
	stream := hum.NewStream(hum.SampleRate)
	if loopPath != "" {
		samples, err := loadLoopSamples(hum.SampleRate, loopPath)
		if err != nil {
			return nil, err
		}
		stream.SetLoop(samples)
	}
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("audio player: %w", err)
	}
	player.SetBufferSize(audioBufferDuration)
	player.Play()
	return &humPlayer{ctx: ctx, stream: stream, player: player}, nil
}

// follow sets the drone speed from the translation covered in the last
// frame. Frames without steps keep the previous pitch.
func (h *humPlayer) follow(before, after int32, steps int) {
	if steps == 0 {
		return
	}
	d := int64(after) - int64(before)
	if d < 0 {
		d = -d
	}
	h.stream.SetSpeed(float64(d) / float64(steps*tunnel.MovementSpeed))
}

func (h *humPlayer) Close() {
	if err := h.player.Close(); err != nil {
		log.Printf("closing audio player: %v", err)
	}
}

// loadLoopSamples decodes the WAV at path into mono samples at sampleRate.
func loadLoopSamples(sampleRate int, path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	samples := stereoToMono(decoded)
	if len(samples) == 0 {
		return nil, fmt.Errorf("wav %q has no audio data", path)
	}
	return samples, nil
}

// stereoToMono averages 16-bit little-endian stereo frames.
func stereoToMono(pcm []byte) []float32 {
	samples := make([]float32, len(pcm)/4)
	for i := range samples {
		left := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		samples[i] = (float32(left) + float32(right)) * (0.5 / 32768.0)
	}
	return samples
}
