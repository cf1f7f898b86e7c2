package playback

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/jsphweid/melodygen/constants"
)

type EmbedStatus int

const (
	Embedded EmbedStatus = iota
	// the file is fine but cannot be played inline
	EmbedUnsupported
	EmbedFailed
)

func (s EmbedStatus) String() string {
	switch s {
	case Embedded:
		return "embedded"
	case EmbedUnsupported:
		return "unsupported"
	case EmbedFailed:
		return "failed"
	}
	return fmt.Sprintf("EmbedStatus(%d)", int(s))
}

var ErrTooLargeToEmbed = errors.New("file is too large to embed")

var ErrEmbedDisabled = errors.New("inline playback is disabled")

type EmbedResult struct {
	Status EmbedStatus
	// data URI the page hands to the player element
	Src string
	Err error
}

func (r EmbedResult) OK() bool {
	return r.Status == Embedded
}

type Embedder interface {
	Embed(path string) EmbedResult
}

// DataURIEmbedder inlines the encoded file so the page does not depend on the
// output file still being the same one when the browser asks for it.
type DataURIEmbedder struct {
	MaxBytes int64
	Disabled bool
}

func NewDataURIEmbedder() *DataURIEmbedder {
	return &DataURIEmbedder{MaxBytes: constants.MaxEmbedBytes}
}

func (e *DataURIEmbedder) Embed(path string) EmbedResult {
	if e.Disabled {
		return EmbedResult{Status: EmbedUnsupported, Err: ErrEmbedDisabled}
	}

	info, err := os.Stat(path)
	if err != nil {
		return EmbedResult{Status: EmbedFailed, Err: err}
	}
	if e.MaxBytes > 0 && info.Size() > e.MaxBytes {
		return EmbedResult{
			Status: EmbedUnsupported,
			Err:    fmt.Errorf("%v is %v bytes: %w", path, info.Size(), ErrTooLargeToEmbed),
		}
	}

	dat, err := os.ReadFile(path)
	if err != nil {
		return EmbedResult{Status: EmbedFailed, Err: err}
	}
	src := "data:" + constants.MidiMimeType + ";base64," + base64.StdEncoding.EncodeToString(dat)
	return EmbedResult{Status: Embedded, Src: src}
}
