// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/cartpack/lib/binhash"
	"github.com/bureau-foundation/cartpack/lib/cartridge"
	"github.com/bureau-foundation/cartpack/lib/config"
	"github.com/bureau-foundation/cartpack/lib/palette"
	"github.com/bureau-foundation/cartpack/lib/raster"
	"github.com/bureau-foundation/cartpack/lib/symbolcodec"
)

// Request describes one conversion. Exactly one of Image and Raster
// must be set.
type Request struct {
	// Image is a source image to resample and quantize.
	Image string

	// Raster is a raster file written by a previous quantize step.
	// Its palette is used as is; Config.Palette is ignored.
	Raster string

	// Cartridge is the cartridge whose palette and data chunks are
	// replaced.
	Cartridge string

	// Output is where the rewritten cartridge goes. Empty means
	// rewrite Cartridge in place.
	Output string

	// SaveRaster, when set, receives the quantized raster.
	SaveRaster string

	// Config supplies image, palette, codec and container settings.
	// Nil means config.Default().
	Config *config.Config
}

// validate reports every problem with the request.
func (r *Request) validate() error {
	var errs []error
	if (r.Image == "") == (r.Raster == "") {
		errs = append(errs, fmt.Errorf("exactly one of an image or a raster file is required"))
	}
	if r.Cartridge == "" {
		errs = append(errs, fmt.Errorf("a source cartridge is required"))
	}
	return errors.Join(errs...)
}

// Result summarizes a completed conversion.
type Result struct {
	Output  string                   `json:"output"`
	Codec   string                   `json:"codec"`
	Width   int                      `json:"width"`
	Height  int                      `json:"height"`
	Colors  int                      `json:"colors"`
	Symbols int                      `json:"symbols"`
	Encoded int                      `json:"encoded"`
	Chunks  []cartridge.ChunkSummary `json:"chunks"`
	Digest  string                   `json:"digest"`
}

// Convert runs the full conversion described by request.
func Convert(ctx context.Context, logger *slog.Logger, request Request) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := request.validate(); err != nil {
		return nil, err
	}
	cfg := request.Config
	if cfg == nil {
		cfg = config.Default()
	}
	output := request.Output
	if output == "" {
		output = request.Cartridge
	}

	codec, err := cfg.NewCodec()
	if err != nil {
		return nil, err
	}

	source, err := Rasterize(ctx, logger, request, cfg)
	if err != nil {
		return nil, err
	}

	if request.SaveRaster != "" {
		if err := raster.WriteFile(request.SaveRaster, source); err != nil {
			return nil, err
		}
		logger.Info("raster saved", "path", request.SaveRaster)
	}
	if cfg.Output.Preview != "" {
		if err := raster.SavePreview(cfg.Output.Preview, source); err != nil {
			return nil, err
		}
		logger.Info("preview saved", "path", cfg.Output.Preview)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := palette.Pack(source.Palette)
	if err != nil {
		return nil, err
	}

	encoded, err := Encode(codec, source.Symbols)
	if err != nil {
		return nil, err
	}
	logger.Info("symbols encoded",
		"codec", codec.Name(),
		"symbols", len(source.Symbols),
		"encoded", humanize.IBytes(uint64(len(encoded))),
		"ratio", fmt.Sprintf("%.3f", float64(len(encoded))/float64(max(len(source.Symbols), 1))),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks, err := cartridge.Rewrite(request.Cartridge, output, &table, encoded, cfg.CartridgeOptions())
	if err != nil {
		return nil, fmt.Errorf("writing cartridge: %w", err)
	}
	summaries := cartridge.Summarize(chunks)
	for _, summary := range summaries {
		if summary.Owned {
			logger.Debug("chunk written",
				"type", summary.Name,
				"size", humanize.IBytes(uint64(summary.Size)),
			)
		}
	}

	digest, err := binhash.HashFile(output)
	if err != nil {
		return nil, err
	}
	logger.Info("cartridge written",
		"path", output,
		"chunks", len(chunks),
		"digest", digest.String(),
	)

	return &Result{
		Output:  output,
		Codec:   codec.Name(),
		Width:   source.Width,
		Height:  source.Height,
		Colors:  len(source.Palette),
		Symbols: len(source.Symbols),
		Encoded: len(encoded),
		Chunks:  summaries,
		Digest:  digest.String(),
	}, nil
}

// Rasterize produces the request's raster: read from request.Raster,
// or loaded from request.Image, resampled to the configured size and
// quantized to the configured palette.
func Rasterize(ctx context.Context, logger *slog.Logger, request Request, cfg *config.Config) (*raster.Raster, error) {
	if request.Raster != "" {
		loaded, err := raster.ReadFile(request.Raster)
		if err != nil {
			return nil, err
		}
		logger.Info("raster loaded",
			"path", request.Raster,
			"width", loaded.Width,
			"height", loaded.Height,
			"colors", len(loaded.Palette),
		)
		return loaded, nil
	}

	colors, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	img, err := raster.Load(request.Image)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width, height := cfg.Image.Size()
	resampled, err := raster.Resample(img, width, height, cfg.Image.Projection)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quantized, err := raster.Quantize(resampled, colors)
	if err != nil {
		return nil, err
	}
	logger.Info("image quantized",
		"path", request.Image,
		"source", img.Bounds().Size().String(),
		"width", width,
		"height", height,
		"projection", cfg.Image.Projection,
		"colors", len(colors),
	)
	return quantized, nil
}

// Encode encodes symbols with codec and decodes the result again. A
// codec that cannot reproduce symbols (bitplane on symbols of 64 or
// more) fails instead of writing a corrupt payload.
func Encode(codec symbolcodec.Codec, symbols []byte) ([]byte, error) {
	encoded, err := codec.Encode(symbols)
	if err != nil {
		return nil, fmt.Errorf("encoding with %s: %w", codec.Name(), err)
	}
	decoded, err := codec.Decode(encoded, len(symbols))
	if err != nil {
		return nil, fmt.Errorf("verifying %s output: %w", codec.Name(), err)
	}
	if !bytes.Equal(decoded, symbols) {
		return nil, fmt.Errorf("codec %s does not reproduce this raster losslessly", codec.Name())
	}
	return encoded, nil
}
