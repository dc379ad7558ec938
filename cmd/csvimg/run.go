package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/csv-image-downloader/internal/download"
	ioutils "github.com/handiism/csv-image-downloader/internal/io"
	"github.com/handiism/csv-image-downloader/internal/model"
)

var (
	runSourceFlag    string
	runDestFlag      string
	runLogFlag       string
	runColumnsFlag   []string
	runTemplatesFlag []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download the images of one CSV file",
	Long: `Downloads the image URLs of the selected columns of a CSV file.

Columns and templates are paired by position:
  csvimg run --csv products.csv --out images \
    --column zdjecie --template "{produkt_ean}-1" \
    --column zdjecie_opakowania --template "{produkt_ean}-2"

Without --column, every column whose name starts with "zdjecie" is used.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runSourceFlag, "csv", "", "CSV file to read")
	runCmd.Flags().StringVarP(&runDestFlag, "out", "o", "", "Destination folder for images")
	runCmd.Flags().StringVar(&runLogFlag, "log", "", "Error log path (default <out>/errors.txt)")
	runCmd.Flags().StringArrayVarP(&runColumnsFlag, "column", "c", nil, "Image column (repeatable)")
	runCmd.Flags().StringArrayVarP(&runTemplatesFlag, "template", "t", nil, "Filename template for the column at the same position (repeatable)")
	_ = runCmd.MarkFlagRequired("csv")
	_ = runCmd.MarkFlagRequired("out")
}

func runRun(cmd *cobra.Command, args []string) error {
	columns, templates := runColumnsFlag, runTemplatesFlag
	if len(columns) == 0 {
		preview, err := ioutils.ReadPreview(runSourceFlag, 0)
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}
		columns, templates = settings.DefaultSelection(preview.Header)
		log.WithField("columns", columns).Info("Using default column selection")
	}

	params := download.Params{
		SourcePath: runSourceFlag,
		DestDir:    runDestFlag,
		LogPath:    runLogFlag,
		Columns:    columns,
		Templates:  templates,
	}
	if params.LogPath == "" {
		params.LogPath = settings.LogPath(runDestFlag)
	}

	obs := download.NewChannelObserver(16)
	manager := download.NewManager(settings, obs, log.StandardLogger())
	out := newConsole(os.Stderr, "rows")

	var result model.RunResult
	g := new(errgroup.Group)
	g.Go(func() error {
		defer obs.Close()
		var err error
		result, err = manager.Run(context.Background(), params)
		return err
	})
	g.Go(func() error {
		out.Drain(obs.Events())
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d images, %d errors. See log: %s\n",
		result.Downloaded, result.Failed, params.LogPath)
	return nil
}
