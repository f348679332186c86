// Command pfp composes and exports profile pictures from the command line:
// a background photo plus sticker overlays, with session persistence.
//
// Usage:
//
//	pfp compose -bg photo.jpg -sticker hat.png:120,80,1.5,15 -o out.png
//	pfp export -size 512 -format webp -o avatar.webp
//
// Defaults come from PFP_-prefixed environment variables (PFP_STORE_PATH,
// PFP_STORE_BACKEND, PFP_FORMAT, PFP_SIZE, PFP_QUALITY); flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pfpforge/pfp"
	"github.com/pfpforge/pfp/export"
	"github.com/pfpforge/pfp/internal/config"
	"github.com/pfpforge/pfp/session"
	"github.com/pfpforge/pfp/session/filesystem"
	"github.com/pfpforge/pfp/session/memory"
	"github.com/pfpforge/pfp/session/sqlite"
)

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("pfp: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}
	switch args[0] {
	case "compose":
		return runCompose(args[1:])
	case "export":
		return runExport(args[1:])
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  pfp compose -bg <image> [-sticker <image>[:x,y,scale,rot]]... [-o <file>] [options]
  pfp export [-o <file>] [options]

compose builds a scene from files and exports it; -save also persists it as
the session. export re-exports the persisted session.

common options:
  -size N       square output edge (0 = background's natural size)
  -format F     png | jpg | webp
  -quality Q    encoder quality in [0,1] (jpg/webp)
  -square       crop the background to fill (cover) instead of letterboxing
  -v            verbose logging to stderr`)
}

// stickerFlags collects repeated -sticker arguments.
type stickerFlags []string

func (s *stickerFlags) String() string { return strings.Join(*s, ", ") }

func (s *stickerFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runCompose(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	var stickers stickerFlags
	bg := fs.String("bg", "", "background image file (required)")
	fs.Var(&stickers, "sticker", "sticker file with optional placement: file[:x,y,scale,rot] (repeatable)")
	out := fs.String("o", "", "output file (default: generated name)")
	size := fs.Int("size", cfg.Size, "square output edge, 0 for original")
	format := fs.String("format", cfg.Format, "output format: png|jpg|webp")
	quality := fs.Float64("quality", cfg.Quality, "encoder quality in [0,1]")
	square := fs.Bool("square", false, "cover-crop the background to fill the square")
	save := fs.Bool("save", false, "persist the composed scene as the session")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *bg == "" {
		return errors.New("compose: -bg is required")
	}
	setupLogging(*verbose)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	ed := pfp.New(pfp.WithStore(store))
	defer ed.Close()
	ctx := context.Background()

	bgData, err := os.ReadFile(*bg)
	if err != nil {
		return err
	}
	if err := ed.DecodeBackground(ctx, ed.BeginDecode(), bgData); err != nil {
		return fmt.Errorf("load background: %w", err)
	}

	for _, spec := range stickers {
		if err := placeSticker(ctx, ed, spec); err != nil {
			return err
		}
	}

	if *save {
		if err := ed.SaveSession(ctx); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	return exportTo(ed, *out, *size, *format, *quality, *square)
}

func runExport(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (default: generated name)")
	size := fs.Int("size", cfg.Size, "square output edge, 0 for original")
	format := fs.String("format", cfg.Format, "output format: png|jpg|webp")
	quality := fs.Float64("quality", cfg.Quality, "encoder quality in [0,1]")
	square := fs.Bool("square", false, "cover-crop the background to fill the square")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	ed := pfp.New(pfp.WithStore(store))
	defer ed.Close()

	if err := ed.LoadSession(context.Background()); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return errors.New("no saved session; run pfp compose -save first")
		}
		return fmt.Errorf("load session: %w", err)
	}

	return exportTo(ed, *out, *size, *format, *quality, *square)
}

// placeSticker decodes one -sticker argument and applies its optional
// placement overrides: file[:x,y,scale,rot].
func placeSticker(ctx context.Context, ed *pfp.Editor, spec string) error {
	file, placement, _ := strings.Cut(spec, ":")

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	id, err := ed.DecodeSticker(ctx, ed.BeginDecode(), data, 0)
	if err != nil {
		return fmt.Errorf("load sticker %s: %w", file, err)
	}
	if placement == "" {
		return nil
	}

	parts := strings.Split(placement, ",")
	if len(parts) != 4 {
		return fmt.Errorf("sticker %s: placement must be x,y,scale,rot", file)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("sticker %s: bad placement value %q", file, p)
		}
		vals[i] = v
	}

	l := ed.Scene().FindByID(id)
	l.Transform.X = vals[0]
	l.Transform.Y = vals[1]
	l.Transform.ScaleX = vals[2]
	l.Transform.ScaleY = vals[2]
	l.Transform.Rotation = vals[3]
	return nil
}

func exportTo(ed *pfp.Editor, out string, size int, format string, quality float64, square bool) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	art, err := ed.Export(export.Options{
		Size:         size,
		Format:       f,
		CropToSquare: square,
		Quality:      quality,
	})
	if err != nil {
		return err
	}

	if out == "" {
		out = art.Filename
	}
	if err := os.WriteFile(out, art.Data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d, %d bytes)\n", out, art.Width, art.Height, len(art.Data))
	return nil
}

// openStore selects the session store backend from configuration.
func openStore(cfg *config.Config) (session.Store, error) {
	switch cfg.StoreBackend {
	case "filesystem":
		return filesystem.NewStore(cfg.StorePath)
	case "sqlite":
		return sqlite.NewStore(cfg.StorePath)
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func setupLogging(verbose bool) {
	if !verbose {
		return
	}
	pfp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}
