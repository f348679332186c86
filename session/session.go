// Package session persists and restores editor projects.
//
// A session is a self-contained JSON blob: the scene state plus every raster
// source re-encoded as PNG, so a restored project needs nothing beyond the
// blob itself. The background master image is stored losslessly at its full
// natural resolution.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pfpforge/pfp/internal/imaging"
	"github.com/pfpforge/pfp/scene"
)

// Session errors.
var (
	// ErrCorruptSession is returned when a stored blob cannot be restored:
	// malformed JSON, a missing or undecodable image, or inconsistent scene
	// state. Nothing is partially applied.
	ErrCorruptSession = errors.New("session: corrupt session data")

	// ErrNotFound is returned by stores when the named slot does not exist.
	ErrNotFound = errors.New("session: not found")
)

// DefaultSlot is the single auto-save slot name used by the editor.
const DefaultSlot = "default"

// Version identifies the current record layout.
const Version = 1

// Store persists encoded session blobs under named slots. Save overwrites
// any existing blob with the same name.
type Store interface {
	Save(ctx context.Context, name string, blob []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// Record is the serialized form of a project.
type Record struct {
	Version       int       `json:"version"`
	SavedAt       time.Time `json:"savedAt"`
	NaturalWidth  int       `json:"naturalWidth"`
	NaturalHeight int       `json:"naturalHeight"`

	// BackgroundPNG holds the full-resolution background master image.
	BackgroundPNG []byte `json:"backgroundPng"`

	// StickerPNG maps sticker source IDs to their encoded pixels.
	StickerPNG map[string][]byte `json:"stickerPng,omitempty"`

	Scene scene.State `json:"scene"`
}

// Serialize encodes a scene state and its sources into a session blob.
// The state must contain a background layer whose source is present.
func Serialize(st scene.State, sources *scene.Sources) ([]byte, error) {
	var bg *scene.Layer
	for i := range st.Layers {
		if st.Layers[i].Kind == scene.KindBackground {
			bg = &st.Layers[i]
			break
		}
	}
	if bg == nil {
		return nil, fmt.Errorf("%w: no background layer to serialize", scene.ErrInvalidState)
	}
	bgImg := sources.Get(bg.SourceID)
	if bgImg == nil {
		return nil, fmt.Errorf("%w: background source %s missing", scene.ErrInvalidState, bg.SourceID)
	}

	rec := Record{
		Version:       Version,
		SavedAt:       time.Now().UTC(),
		NaturalWidth:  bg.NaturalWidth,
		NaturalHeight: bg.NaturalHeight,
		Scene:         st,
	}

	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, bgImg); err != nil {
		return nil, err
	}
	rec.BackgroundPNG = buf.Bytes()

	for _, l := range st.Layers {
		if l.Kind != scene.KindSticker {
			continue
		}
		if _, done := rec.StickerPNG[l.SourceID]; done {
			continue
		}
		img := sources.Get(l.SourceID)
		if img == nil {
			return nil, fmt.Errorf("%w: sticker source %s missing", scene.ErrInvalidState, l.SourceID)
		}
		var sb bytes.Buffer
		if err := imaging.EncodePNG(&sb, img); err != nil {
			return nil, err
		}
		if rec.StickerPNG == nil {
			rec.StickerPNG = make(map[string][]byte)
		}
		rec.StickerPNG[l.SourceID] = sb.Bytes()
	}

	return json.Marshal(rec)
}

// Deserialize parses a session blob and validates its structure. Image
// payloads are checked during Restore, not here.
func Deserialize(blob []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(blob, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if rec.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSession, rec.Version)
	}
	if len(rec.BackgroundPNG) == 0 {
		return nil, fmt.Errorf("%w: missing background image", ErrCorruptSession)
	}
	if rec.NaturalWidth <= 0 || rec.NaturalHeight <= 0 {
		return nil, fmt.Errorf("%w: non-positive natural dimensions %dx%d",
			ErrCorruptSession, rec.NaturalWidth, rec.NaturalHeight)
	}
	if rec.Scene.PreviewWidth <= 0 || rec.Scene.PreviewHeight <= 0 {
		return nil, fmt.Errorf("%w: non-positive preview dimensions", ErrCorruptSession)
	}
	return &rec, nil
}

// Restore decodes every image payload and rebuilds the scene state and its
// sources. All decoding happens before anything is returned, so a corrupt
// payload leaves the caller's state untouched.
func (r *Record) Restore() (scene.State, *scene.Sources, error) {
	bgImg, err := imaging.Decode(r.BackgroundPNG)
	if err != nil {
		return scene.State{}, nil, fmt.Errorf("%w: background image: %v", ErrCorruptSession, err)
	}

	sources := scene.NewSources()
	var bgID string
	for i := range r.Scene.Layers {
		l := &r.Scene.Layers[i]
		switch l.Kind {
		case scene.KindBackground:
			bgID = l.SourceID
		case scene.KindSticker:
			if sources.Get(l.SourceID) != nil {
				continue
			}
			data, ok := r.StickerPNG[l.SourceID]
			if !ok {
				return scene.State{}, nil, fmt.Errorf("%w: sticker source %s missing from record",
					ErrCorruptSession, l.SourceID)
			}
			img, err := imaging.Decode(data)
			if err != nil {
				return scene.State{}, nil, fmt.Errorf("%w: sticker source %s: %v",
					ErrCorruptSession, l.SourceID, err)
			}
			sources.Put(l.SourceID, img)
		default:
			return scene.State{}, nil, fmt.Errorf("%w: unknown layer kind %q", ErrCorruptSession, l.Kind)
		}
	}
	if bgID == "" {
		return scene.State{}, nil, fmt.Errorf("%w: scene has no background layer", ErrCorruptSession)
	}
	sources.Put(bgID, bgImg)

	st := scene.State{
		PreviewWidth:  r.Scene.PreviewWidth,
		PreviewHeight: r.Scene.PreviewHeight,
		Layers:        make([]scene.Layer, len(r.Scene.Layers)),
	}
	copy(st.Layers, r.Scene.Layers)
	return st, sources, nil
}
