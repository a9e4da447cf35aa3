package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/emberfall/logger"
)

// SampleRate is the rate every sound is resampled to.
const SampleRate = 44100

//go:embed sfx/*.wav
var assetsFS embed.FS

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// SoundNames lists the embedded one-shot sounds by name.
func SoundNames() []string {
	entries, err := fs.ReadDir(assetsFS, "sfx")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".wav"))
	}
	return names
}

// DecodeSFX returns the named sound as PCM at SampleRate.
func DecodeSFX(name string) ([]byte, error) {
	b, err := LoadFile("sfx/" + name + ".wav")
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", name, err)
	}
	return io.ReadAll(stream)
}

// SFXBank plays named one-shot sounds, decoding each on first use.
type SFXBank struct {
	ctx     *audio.Context
	pcm     map[string][]byte
	missing map[string]bool
	log     *logrus.Entry
}

// NewSFXBank creates a bank on ctx. ctx must run at SampleRate.
func NewSFXBank(ctx *audio.Context) *SFXBank {
	return &SFXBank{
		ctx:     ctx,
		pcm:     map[string][]byte{},
		missing: map[string]bool{},
		log:     logger.For("audio"),
	}
}

// PlaySFX starts name at volume and forgets about it. Unknown sounds are
// logged once.
func (b *SFXBank) PlaySFX(name string, volume float64) {
	if b == nil || b.ctx == nil || b.missing[name] {
		return
	}
	pcm, ok := b.pcm[name]
	if !ok {
		var err error
		pcm, err = DecodeSFX(name)
		if err != nil {
			b.missing[name] = true
			b.log.WithError(err).WithField("sound", name).Warn("sound unavailable")
			return
		}
		b.pcm[name] = pcm
	}
	p := b.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(volume)
	p.Play()
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
