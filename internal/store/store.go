// ABOUTME: File store for synthesized audio
// ABOUTME: Writes decoded buffers to disk as RIFF/WAV files
package store

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio"
	"github.com/tsxetra/ai-news-summerizer/pkg/audio/encode"
)

// FileStore saves decoded audio under one directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes buf as a 16-bit WAV file and returns its path. File names
// combine a timestamp with a short unique suffix.
func (s *FileStore) Save(buf *audio.Buffer) (string, error) {
	name := fmt.Sprintf("summary-%s-%s.wav",
		time.Now().Format("20060102-150405"), uuid.New().String()[:8])
	path := filepath.Join(s.dir, name)

	data := encode.PCM16Bytes(encode.Interleave(buf))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer f.Close()

	if err := writeWAVHeader(f, buf.SampleRate, buf.Channels(), len(data)); err != nil {
		os.Remove(path)
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	log.Printf("Audio saved: %s", path)
	return path, nil
}

// writeWAVHeader emits a canonical 44-byte RIFF header for PCM16 data.
func writeWAVHeader(f *os.File, sampleRate, channels, dataLen int) error {
	var header [44]byte

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(header[32:34], uint16(channels*2))
	binary.LittleEndian.PutUint16(header[34:36], 16)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	if _, err := f.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write wav header: %w", err)
	}
	return nil
}
