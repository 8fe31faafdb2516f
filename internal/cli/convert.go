package cli

import (
	"bytes"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/meminit/internal/config"
	"github.com/roach88/meminit/internal/memimage"
	"github.com/roach88/meminit/internal/render"
)

func runConvert(cmd *cobra.Command, opts *RootOptions, env Env, input string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Diagnostics never mix with the generated file
		Verbose:   opts.Verbose,
	}
	logger := formatter.Logger()

	cfg, err := resolveConfig(cmd, opts, input)
	if err != nil {
		if errors.Is(err, config.ErrProfile) {
			return formatter.fail(ExitCommandError, ErrCodeProfile, "loading profile", err)
		}
		return formatter.fail(ExitCommandError, ErrCodeUsage, "invalid arguments", err)
	}
	logger.Debug("configuration resolved",
		"input", cfg.InputPath,
		"oformat", cfg.Format,
		"iformat", cfg.InputFormat,
		"width", cfg.Width,
		"depth", cfg.Depth,
		"pad", cfg.Pad,
		"invert", cfg.Invert,
		"name", cfg.Name,
		"profile", opts.ConfigPath,
	)

	raw, err := memimage.Load(cfg.InputPath, cfg.InputFormat, cfg.PadByte())
	if err != nil {
		if errors.Is(err, memimage.ErrDecode) {
			return formatter.fail(ExitFailure, ErrCodeDecodeFailed, "decoding "+cfg.InputPath, err)
		}
		return formatter.fail(ExitFailure, ErrCodeReadFailed, "reading "+cfg.InputPath, err)
	}

	words := memimage.Build(raw, cfg.Depth, cfg.Width, cfg.PadByte(), cfg.Invert)
	logger.Debug("image shaped",
		"input_bytes", len(raw),
		"shaped_bytes", len(words)*cfg.Width,
		"words", len(words),
	)
	if cfg.Depth > 0 && len(raw) > cfg.Depth*cfg.Width {
		logger.Warn("input truncated to memory depth",
			"input_bytes", len(raw),
			"kept_bytes", cfg.Depth*cfg.Width,
		)
	}

	meta := render.Meta{
		Width:     cfg.Width,
		Name:      cfg.Name,
		Source:    filepath.Base(cfg.InputPath),
		Program:   ProgramName,
		Generated: env.Clock.Now(),
		RunID:     env.IDs.Generate(),
		Digest:    memimage.Digest(raw),
		Params:    cfg.Params(),
	}

	var buf bytes.Buffer
	if err := render.Encode(&buf, cfg.Format, words, meta); err != nil {
		return formatter.fail(ExitFailure, ErrCodeEncodeFailed, "encoding "+string(cfg.Format), err)
	}
	if _, err := buf.WriteTo(formatter.Writer); err != nil {
		return formatter.fail(ExitFailure, ErrCodeWriteFailed, "writing output", err)
	}

	logger.Debug("output written", "oformat", cfg.Format, "run_id", meta.RunID)
	return nil
}
