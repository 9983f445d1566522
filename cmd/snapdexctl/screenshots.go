package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	snapdex "github.com/kailas-cloud/snapdex/pkg/sdk"
)

func statusCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Count screenshots per analysis status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			st, err := client.Status(ctx, g.owner)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.output == outputYAML {
				return writeYAML(out, statusView(st))
			}
			printStatus(out, st)
			return nil
		},
	}
}

func listCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List screenshots newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			shots, err := client.Screenshots().List(ctx, g.owner)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if g.output == outputYAML {
				return writeYAML(out, screenshotViews(shots))
			}
			printScreenshots(out, shots)
			return nil
		},
	}
}

const importLongDesc = `Import screenshots whose features were extracted elsewhere.

The file is a YAML or JSON list of records:

  - id: shot-1            # optional, generated when empty
    owner: alice          # defaults to --owner
    filename: login.png
    mime_type: image/png
    uploaded_at: 2025-01-02T10:00:00Z
    features:
      extracted_text: "Invalid password"
      ui_elements: ["Login button"]
      dominant_colors: ["#ff0000"]`

// importRecord is one entry of an import file. JSON is valid YAML, so one
// decoder reads both.
type importRecord struct {
	ID         string         `yaml:"id"`
	Owner      string         `yaml:"owner"`
	Filename   string         `yaml:"filename"`
	MIMEType   string         `yaml:"mime_type"`
	Size       int64          `yaml:"size"`
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	CreatedAt  *time.Time     `yaml:"file_created_at"`
	ModifiedAt *time.Time     `yaml:"file_modified_at"`
	UploadedAt time.Time      `yaml:"uploaded_at"`
	Features   importFeatures `yaml:"features"`
}

type importFeatures struct {
	ExtractedText     string            `yaml:"extracted_text"`
	VisualDescription string            `yaml:"visual_description"`
	UIElements        []string          `yaml:"ui_elements"`
	DominantColors    []string          `yaml:"dominant_colors"`
	ErrorStates       []string          `yaml:"error_states"`
	VisualPatterns    []string          `yaml:"visual_patterns"`
	ColorContext      map[string]string `yaml:"color_context"`
}

func decodeImport(r io.Reader, defaultOwner string) ([]snapdex.ImportRequest, error) {
	var records []importRecord
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode import file: %w", err)
	}

	reqs := make([]snapdex.ImportRequest, 0, len(records))
	for i, rec := range records {
		owner := rec.Owner
		if owner == "" {
			owner = defaultOwner
		}
		if owner == "" {
			return nil, fmt.Errorf("record %d: owner is required", i)
		}
		if rec.Filename == "" {
			return nil, fmt.Errorf("record %d: filename is required", i)
		}
		reqs = append(reqs, snapdex.ImportRequest{
			ID:    rec.ID,
			Owner: owner,
			File: snapdex.File{
				Name:       rec.Filename,
				MIMEType:   rec.MIMEType,
				Size:       rec.Size,
				Width:      rec.Width,
				Height:     rec.Height,
				CreatedAt:  rec.CreatedAt,
				ModifiedAt: rec.ModifiedAt,
			},
			Features: snapdex.Features{
				ExtractedText:     rec.Features.ExtractedText,
				VisualDescription: rec.Features.VisualDescription,
				UIElements:        rec.Features.UIElements,
				DominantColors:    rec.Features.DominantColors,
				ErrorStates:       rec.Features.ErrorStates,
				VisualPatterns:    rec.Features.VisualPatterns,
				ColorContext:      rec.Features.ColorContext,
			},
			UploadedAt: rec.UploadedAt,
		})
	}
	return reqs, nil
}

func importCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import screenshots with precomputed features",
		Long:  importLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			reqs, err := decodeImport(f, g.owner)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			for _, req := range reqs {
				shot, err := client.Screenshots().Import(ctx, req)
				if err != nil {
					return fmt.Errorf("%s: %w", req.File.Name, err)
				}
				fmt.Fprintf(out, "%s %s %s\n",
					okStyle.Render("imported"), idStyle.Render(shot.ID), dimStyle.Render(shot.File.Name))
			}
			fmt.Fprintf(out, "%d screenshot(s) imported\n", len(reqs))
			return nil
		},
	}
}

func reprocessCmd(g *globals) *cobra.Command {
	var failed bool

	cmd := &cobra.Command{
		Use:   "reprocess [id]",
		Short: "Queue a screenshot, or every failed one, for analysis",
		Args: func(cmd *cobra.Command, args []string) error {
			if failed && len(args) > 0 {
				return errors.New("--failed takes no id")
			}
			if !failed && len(args) != 1 {
				return errors.New("an id or --failed is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			if failed {
				n, err := client.Screenshots().ReprocessFailed(ctx, g.owner)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d screenshot(s) queued\n", n)
				return nil
			}

			shot, err := client.Screenshots().Reprocess(ctx, g.owner, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", idStyle.Render(shot.ID), statusLabel(shot.Status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&failed, "failed", false, "Reprocess every failed screenshot")

	return cmd
}

func deleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a screenshot with its image and scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Screenshots().Delete(ctx, g.owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("deleted"), idStyle.Render(args[0]))
			return nil
		},
	}
}
