package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/csv-image-downloader/internal/download"
)

var (
	batchListFlag string
	batchDestFlag string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Download the images of every CSV named in a list file",
	Long: `Reads a list file (files.txt) with one CSV path per line, relative to the
list's folder, and downloads the images of each into one destination.

The fallback columns (zdjecie, zdjecie_opakowania) and templates ({EAN}-1,
{EAN}-2) are used and all failures go to one shared errors.txt.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchListFlag, "list", "l", "files.txt", "File listing the CSV files")
	batchCmd.Flags().StringVarP(&batchDestFlag, "out", "o", "images", "Destination folder for images")
}

func runBatch(cmd *cobra.Command, args []string) error {
	obs := download.NewChannelObserver(16)
	manager := download.NewManager(settings, obs, log.StandardLogger())
	out := newConsole(os.Stderr, "rows")

	var batch download.BatchResult
	g := new(errgroup.Group)
	g.Go(func() error {
		defer obs.Close()
		var err error
		batch, err = manager.RunBatch(context.Background(), batchListFlag, batchDestFlag)
		return err
	})
	g.Go(func() error {
		out.Drain(obs.Events())
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	printBatchSummary(cmd.OutOrStdout(), batch)
	return nil
}

// printBatchSummary reports skipped files and the totals. The log path is
// only named when at least one run opened it.
func printBatchSummary(w io.Writer, batch download.BatchResult) {
	for _, path := range batch.Missing {
		fmt.Fprintf(w, "File %s does not exist.\n", path)
	}
	for _, err := range batch.Errors {
		fmt.Fprintf(w, "Skipped %v\n", err)
	}
	if batch.Files == 0 {
		fmt.Fprintln(w, "No CSV file was processed.")
		return
	}
	fmt.Fprintf(w, "Downloaded %d images, %d errors. See log: %s\n",
		batch.Downloaded, batch.Failed, batch.LogPath)
}
