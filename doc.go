// Package pfp is a compositing editor for profile pictures: one background
// photo plus any number of transformable sticker overlays, with bounded
// undo/redo, center-guide snapping, a zoomable viewport, session persistence,
// and raster export.
//
// The Editor type owns all mutable state and is the single entry point;
// input events arrive as a small command set (drag, wheel, key command)
// rather than as UI callbacks, so the whole editor runs and tests headlessly.
//
//	ed := pfp.New(pfp.WithStore(store))
//	ticket := ed.BeginDecode()
//	if err := ed.DecodeBackground(ctx, ticket, photoBytes); err != nil { ... }
//	id, _ := ed.AddSticker(ctx, entry)
//	ed.BeginDrag(id, pfp.GestureMove, 100, 100)
//	ed.UpdateDrag(140, 120)
//	ed.EndDrag()
//	art, err := ed.Export(export.Options{Size: 1024, Format: export.FormatPNG})
//
// The editor is single-threaded by design: all mutations happen from one
// goroutine in response to discrete events. Image decoding is the only
// operation intended to run elsewhere; its result is applied through a
// ticket so a superseded decode is discarded instead of clobbering newer
// state.
package pfp
