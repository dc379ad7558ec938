// Package model defines the core data structures used throughout
// the csv-image-downloader application.
//
// # Row and Table
//
// A Table is a fully parsed CSV file. Each Row maps header names to values
// and remembers the header order:
//
//	row := model.NewRow(1, header, record)
//	url, ok := row.Get("zdjecie")
//
// # Filename Templates
//
// ResolveFileName substitutes {column} placeholders with row values and makes
// the result safe to use as a file name:
//
//	name := model.ResolveFileName("{produkt_ean}-1", row) // "5901234123457-1.jpg"
//
// Placeholders for columns the row does not have are kept verbatim.
//
// # Results
//
// RunResult carries the download and failure counters of a run, and Failure
// describes a single failure event with its FailureKind.
package model
