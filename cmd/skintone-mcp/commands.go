package main

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/spf13/cobra"

	"github.com/ironsheep/skintone-mcp/internal/imaging"
	"github.com/ironsheep/skintone-mcp/internal/skintone"
)

var (
	detectCmd = &cobra.Command{
		Use:   "detect <image>",
		Short: "Print the skin tone category of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd.OutOrStdout(), args[0])
		},
	}

	paletteCmd = &cobra.Command{
		Use:   "palette <category>",
		Short: "Print the recommended colours for a skin tone category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd.OutOrStdout(), args[0])
		},
	}

	adjustCmd = &cobra.Command{
		Use:   "adjust <image>",
		Short: "Shift the skin of an image toward a target category and save it",
		Long: `Shift the skin of an image toward a target category and save it.

The output format follows the --out extension: .png, .jpg/.jpeg or .bmp.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdjust(cmd.OutOrStdout(), args[0], adjustTarget, adjustOut)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "skintone-mcp %s\n", Version)
			fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
		},
	}

	jsonOutput    bool
	paletteRender string
	adjustTarget  string
	adjustOut     string
)

func init() {
	detectCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full detection record as JSON")

	paletteCmd.Flags().StringVar(&paletteRender, "render", "", "also write the palette as an image strip to this file")

	adjustCmd.Flags().StringVarP(&adjustTarget, "target", "t", "", "target category (Fair, Light, Medium, Olive, Tan, Deep, Dark)")
	adjustCmd.Flags().StringVarP(&adjustOut, "out", "o", "", "output file")
	_ = adjustCmd.MarkFlagRequired("target")
	_ = adjustCmd.MarkFlagRequired("out")
}

func runDetect(w io.Writer, path string) error {
	cache := imaging.NewImageCache(cfg.Image.MaxDimension)
	img, err := cache.Load(path)
	if err != nil {
		return err
	}

	d := skintone.Detect(img)
	logger.WithField("pass", d.Pass).WithField("skin_pixels", d.SkinPixels).Debug("detected")

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	fmt.Fprintln(w, d.Category)
	if d.Err != nil {
		logger.WithError(d.Err).Warn("fell back to default category")
	}
	return nil
}

func runPalette(w io.Writer, category string) error {
	if _, ok := skintone.ParseCategory(category); !ok {
		logger.WithField("category", category).Warn("unknown category, showing Medium palette")
	}
	for _, hex := range skintone.ColorRecommendations(category) {
		fmt.Fprintln(w, hex)
	}

	if paletteRender == "" {
		return nil
	}
	strip, err := skintone.RenderPalette(category, cfg.Palette.SwatchSize)
	if err != nil {
		return err
	}
	return saveImage(paletteRender, strip)
}

func runAdjust(w io.Writer, path, target, out string) error {
	cache := imaging.NewImageCache(cfg.Image.MaxDimension)
	img, err := cache.Load(path)
	if err != nil {
		return err
	}

	adj := skintone.Adjust(img, target)
	if adj.Err != nil {
		logger.WithError(adj.Err).Warn("adjustment fell back")
	}
	if err := saveImage(out, adj.Image); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d skin pixels, L %.2f -> %.2f (a %+g, b %+g)\n",
		out, adj.SkinPixels, adj.CurrentL, adj.TargetL, adj.DeltaA, adj.DeltaB)
	return nil
}

// encoderFor picks an imgio encoder from the file extension.
func encoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use .png, .jpg or .bmp)", filepath.Ext(path))
	}
}

func saveImage(path string, img image.Image) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
