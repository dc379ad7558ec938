// Package download provides the pipeline that turns a product CSV into
// image files.
//
// # Manager
//
// For every row of the table the Manager:
//
//  1. Resolves the row identifier (first non-empty of produkt_ean, EAN, ean)
//  2. Skips the row if the identifier is the "#N/A" sentinel
//  3. Skips the row if every selected column is "#N/A"
//  4. Downloads each selected column to a file named by its template
//
// Every failure is appended as one line to <destination>/errors.txt,
// counted, and reported to the Observer. Rows are processed one at a time
// with a single request in flight.
//
// # Basic Usage
//
//	manager := download.NewManager(settings, download.ObserverFuncs{
//	    OnProgress: func(done, total int) { fmt.Printf("%d/%d\n", done, total) },
//	    OnFailure:  func(f model.Failure) { fmt.Println(f) },
//	}, logrus.StandardLogger())
//
//	result, err := manager.Run(ctx, download.Params{
//	    SourcePath: "products.csv",
//	    DestDir:    "images",
//	    Columns:    []string{"zdjecie"},
//	    Templates:  []string{"{produkt_ean}-1"},
//	})
//	if err != nil {
//	    log.Fatal(err) // setup error, nothing was processed
//	}
//
// # Observers
//
// ObserverFuncs wraps plain functions, NopObserver drops everything, and
// ChannelObserver turns events into values on a channel so a UI can
// consume them on its own loop.
//
// # Batch Mode
//
// RunBatch processes a files.txt list of CSVs into one destination with
// the fallback columns and one shared error log.
package download
