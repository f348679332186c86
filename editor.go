package pfp

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/pfpforge/pfp/catalog"
	"github.com/pfpforge/pfp/export"
	"github.com/pfpforge/pfp/history"
	"github.com/pfpforge/pfp/internal/imaging"
	"github.com/pfpforge/pfp/scene"
	"github.com/pfpforge/pfp/session"
	"github.com/pfpforge/pfp/viewport"
)

// Editor errors.
var (
	// ErrSuperseded is returned when a decode result arrives after a newer
	// decode request has been issued; the result is discarded unapplied.
	ErrSuperseded = errors.New("pfp: decode superseded by a newer request")

	// ErrNoStore is returned by session operations when no store was
	// configured.
	ErrNoStore = errors.New("pfp: no session store configured")
)

// DefaultSnapThreshold is the center-guide snap distance in screen pixels.
const DefaultSnapThreshold = 8.0

// DefaultStickerScaleFraction sizes a placed sticker relative to the preview
// width when its catalog entry does not specify a fraction.
const DefaultStickerScaleFraction = 0.35

// Toaster receives user-facing notifications. The editor emits them; how
// they render is the caller's concern.
type Toaster interface {
	Success(msg string)
	Error(msg string)
}

// nopToaster discards all notifications.
type nopToaster struct{}

func (nopToaster) Success(string) {}
func (nopToaster) Error(string)   {}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithStore sets the session store used by SaveSession, LoadSession, and
// NewProject. Without a store, session operations return ErrNoStore.
func WithStore(s session.Store) Option {
	return func(e *Editor) { e.store = s }
}

// WithToasts sets the notification sink. Without one, notifications are
// discarded.
func WithToasts(t Toaster) Option {
	return func(e *Editor) {
		if t != nil {
			e.toasts = t
		}
	}
}

// WithSnapThreshold overrides the center-guide snap distance, in screen
// pixels. Zero disables snapping.
func WithSnapThreshold(px float64) Option {
	return func(e *Editor) {
		if px >= 0 {
			e.snapThreshold = px
		}
	}
}

// WithHistoryLimit overrides the undo stack capacity.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) { e.historyLimit = n }
}

// Editor owns all mutable editor state: the scene graph, its pixel sources,
// the undo/redo history, and the viewport camera. One Editor corresponds to
// one open project.
//
// All methods must be called from a single goroutine; see the package
// documentation for the decode-ticket exception.
type Editor struct {
	scene   *scene.Scene
	sources *scene.Sources
	history *history.History
	view    *viewport.Viewport

	store  session.Store
	toasts Toaster

	snapThreshold float64
	historyLimit  int

	decodeSeq atomic.Uint64
	drag      dragState
}

// New creates an empty editor with no background loaded.
func New(opts ...Option) *Editor {
	e := &Editor{
		toasts:        nopToaster{},
		snapThreshold: DefaultSnapThreshold,
		historyLimit:  history.DefaultLimit,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.scene = scene.New()
	e.sources = scene.NewSources()
	e.history = history.New(e.historyLimit)
	e.view = viewport.New()
	e.history.Reset(e.scene.Snapshot())
	return e
}

// Close tears the editor down, releasing pixel data and history.
// The editor must not be used afterwards.
func (e *Editor) Close() {
	e.sources.Clear()
	e.history.Reset(scene.State{})
	e.drag = dragState{}
}

// Scene returns the live scene graph. Mutate it through Editor methods so
// committed changes reach history.
func (e *Editor) Scene() *scene.Scene { return e.scene }

// Sources returns the decoded pixel data backing the scene's layers.
func (e *Editor) Sources() *scene.Sources { return e.sources }

// View returns the viewport camera. Camera state is never captured by
// history.
func (e *Editor) View() *viewport.Viewport { return e.view }

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// DecodeTicket orders decode requests. A result is applied only while its
// ticket is still the most recent one issued.
type DecodeTicket uint64

// BeginDecode registers a new decode request and returns its ticket. Any
// decode still in flight under an earlier ticket is superseded: its result
// will be discarded on arrival.
func (e *Editor) BeginDecode() DecodeTicket {
	return DecodeTicket(e.decodeSeq.Add(1))
}

func (e *Editor) ticketCurrent(t DecodeTicket) bool {
	return uint64(t) == e.decodeSeq.Load()
}

// DecodeBackground decodes image data and installs it as the background
// layer, recomputing the preview canvas and committing to history. Existing
// sticker layers are kept.
//
// A decode failure or a superseded ticket leaves all prior state untouched.
func (e *Editor) DecodeBackground(ctx context.Context, ticket DecodeTicket, data []byte) error {
	img, err := imaging.Decode(data)
	if err != nil {
		e.toasts.Error("Could not load image")
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !e.ticketCurrent(ticket) {
		Logger().Warn("discarding superseded background decode", "ticket", uint64(ticket))
		return ErrSuperseded
	}

	w := img.Rect.Dx()
	h := img.Rect.Dy()
	id := e.sources.Add(img)
	if err := e.scene.SetBackground(id, w, h); err != nil {
		e.sources.Remove(id)
		return err
	}
	e.commit()

	pw, ph := e.scene.PreviewSize()
	Logger().Info("background loaded",
		"naturalWidth", w, "naturalHeight", h,
		"previewWidth", pw, "previewHeight", ph)
	return nil
}

// DecodeSticker decodes image data and places it as a new sticker layer
// centered on the canvas, sized to scaleFraction of the preview width
// (DefaultStickerScaleFraction when zero or negative). The new layer becomes
// active and the change commits to history. Returns the new layer's ID.
//
// Requires a background: sticker placement is defined in preview space.
func (e *Editor) DecodeSticker(ctx context.Context, ticket DecodeTicket, data []byte, scaleFraction float64) (string, error) {
	if !e.scene.HasBackground() {
		return "", fmt.Errorf("%w: no background to place a sticker on", scene.ErrInvalidState)
	}

	img, err := imaging.Decode(data)
	if err != nil {
		e.toasts.Error("Could not load sticker")
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !e.ticketCurrent(ticket) {
		Logger().Warn("discarding superseded sticker decode", "ticket", uint64(ticket))
		return "", ErrSuperseded
	}

	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if scaleFraction <= 0 {
		scaleFraction = DefaultStickerScaleFraction
	}
	previewW, _ := e.scene.PreviewSize()
	scale := scaleFraction * float64(previewW) / float64(w)

	center := e.scene.CanvasCenter()
	tr := scene.NewTransform(center.X, center.Y, scene.OriginCenter)
	tr.ScaleX = scale
	tr.ScaleY = scale

	srcID := e.sources.Add(img)
	layerID, err := e.scene.AddLayer(scene.Layer{
		Kind:          scene.KindSticker,
		SourceID:      srcID,
		NaturalWidth:  w,
		NaturalHeight: h,
		Transform:     tr,
		Opacity:       1,
	}, true)
	if err != nil {
		e.sources.Remove(srcID)
		return "", err
	}
	e.scene.SetActive(layerID)
	e.commit()

	Logger().Debug("sticker placed", "layer", layerID, "scale", scale)
	return layerID, nil
}

// AddSticker decodes a catalog entry's source image and places it as a new
// sticker layer.
func (e *Editor) AddSticker(ctx context.Context, entry catalog.Entry) (string, error) {
	ticket := e.BeginDecode()
	return e.DecodeSticker(ctx, ticket, entry.Source, entry.DefaultScaleFraction)
}

// Select marks the layer as active. Selection changes are not undoable and
// never commit. An empty or unknown ID clears the selection.
func (e *Editor) Select(id string) {
	e.scene.SetActive(id)
}

// SetOpacity sets a layer's opacity, clamped to [0, 1], and commits.
func (e *Editor) SetOpacity(id string, v float64) error {
	l := e.scene.FindByID(id)
	if l == nil {
		return fmt.Errorf("%w: unknown layer %s", scene.ErrInvalidState, id)
	}
	l.SetOpacity(v)
	e.commit()
	return nil
}

// SetBlend sets a sticker's blend mode and commits.
func (e *Editor) SetBlend(id string, mode scene.BlendMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown blend mode %q", scene.ErrInvalidState, mode)
	}
	l := e.scene.FindByID(id)
	if l == nil {
		return fmt.Errorf("%w: unknown layer %s", scene.ErrInvalidState, id)
	}
	l.Blend = mode
	e.commit()
	return nil
}

// RemoveLayer removes a sticker layer and commits. Removing the background
// or an unknown ID is a no-op that commits nothing.
func (e *Editor) RemoveLayer(id string) bool {
	if !e.scene.RemoveLayer(id) {
		return false
	}
	e.commit()
	return true
}

// ReorderLayer swaps a sticker with its z-order neighbor and commits.
// Boundary no-ops commit nothing.
func (e *Editor) ReorderLayer(id string, dir scene.Direction) bool {
	if !e.scene.Reorder(id, dir) {
		return false
	}
	e.commit()
	return true
}

// Undo restores the previous committed state. Reports whether anything
// changed.
func (e *Editor) Undo() bool {
	st, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.scene.Restore(st)
	e.releaseUnused()
	return true
}

// Redo restores the most recently undone state. Reports whether anything
// changed.
func (e *Editor) Redo() bool {
	st, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.scene.Restore(st)
	e.releaseUnused()
	return true
}

// Export renders and encodes the scene per the options.
func (e *Editor) Export(opts export.Options) (export.Artifact, error) {
	art, err := export.Export(e.scene, e.sources, opts)
	if err != nil {
		e.toasts.Error("Export failed")
		return export.Artifact{}, err
	}
	e.toasts.Success("Image exported")
	Logger().Info("scene exported", "width", art.Width, "height", art.Height, "filename", art.Filename)
	return art, nil
}

// SaveSession serializes the project and overwrites the store's single slot.
func (e *Editor) SaveSession(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}
	blob, err := session.Serialize(e.scene.Snapshot(), e.sources)
	if err != nil {
		e.toasts.Error("Could not save session")
		return err
	}
	if err := e.store.Save(ctx, session.DefaultSlot, blob); err != nil {
		e.toasts.Error("Could not save session")
		return err
	}
	e.toasts.Success("Session saved")
	Logger().Info("session saved", "slot", session.DefaultSlot, "bytes", len(blob))
	return nil
}

// LoadSession restores the project from the store's single slot, replacing
// the live scene, its sources, and history (the loaded state becomes the new
// baseline). The viewport resets to 1:1.
//
// A missing or corrupt session leaves the current state untouched.
func (e *Editor) LoadSession(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}
	blob, err := e.store.Load(ctx, session.DefaultSlot)
	if err != nil {
		return err
	}
	rec, err := session.Deserialize(blob)
	if err != nil {
		e.toasts.Error("Saved session is corrupt")
		return err
	}
	st, sources, err := rec.Restore()
	if err != nil {
		e.toasts.Error("Saved session is corrupt")
		return err
	}

	e.scene.Restore(st)
	e.sources = sources
	e.history.Reset(st)
	e.view.ResetToOneToOne()
	e.drag = dragState{}

	e.toasts.Success("Session restored")
	Logger().Info("session loaded", "slot", session.DefaultSlot, "layers", len(st.Layers))
	return nil
}

// NewProject deletes the saved session and resets the editor to an empty
// scene with fresh history.
func (e *Editor) NewProject(ctx context.Context) error {
	if e.store != nil {
		if err := e.store.Delete(ctx, session.DefaultSlot); err != nil {
			return err
		}
	}
	e.scene = scene.New()
	e.sources = scene.NewSources()
	e.history.Reset(e.scene.Snapshot())
	e.view.ResetToOneToOne()
	e.drag = dragState{}
	Logger().Info("new project started")
	return nil
}

// commit pushes the current scene onto the undo stack and releases pixel
// data no reachable state uses.
func (e *Editor) commit() {
	e.history.Push(e.scene.Snapshot())
	e.releaseUnused()
}

// releaseUnused drops sources referenced by no state on either history
// stack. The live scene's state is always on one of the stacks, so its
// sources are always kept.
func (e *Editor) releaseUnused() {
	e.sources.Retain(e.history.ReferencedSources())
}
