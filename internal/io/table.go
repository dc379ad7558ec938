package ioutils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/handiism/csv-image-downloader/internal/model"
)

// ErrNoHeader is returned when a CSV file has no header row.
var ErrNoHeader = errors.New("csv file has no header row")

const utf8BOM = "\uFEFF"

// ReadTable parses a whole UTF-8 CSV file into a Table.
//
// The first record is the header. Every following record becomes a Row whose
// values are addressed by header name. Records may have fewer or more fields
// than the header; missing columns are absent from the row and surplus fields
// are dropped. Blank lines are skipped.
//
// Returns ErrNoHeader for an empty file.
//
// Example:
//
//	table, err := ReadTable("products.csv")
//	for _, row := range table.Rows {
//	    fmt.Println(row.Value("produkt_ean"))
//	}
func ReadTable(path string) (*model.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := newReader(file)
	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	table := &model.Table{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		table.Rows = append(table.Rows, model.NewRow(len(table.Rows)+1, header, record))
	}

	return table, nil
}

// ReadPreview reads the header and at most n data records of a CSV file.
//
// Only the needed part of the file is parsed, so previews of large files are cheap.
func ReadPreview(path string, n int) (*model.Preview, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := newReader(file)
	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	preview := &model.Preview{Header: header}
	for len(preview.Records) < n {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		preview.Records = append(preview.Records, record)
	}

	return preview, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func readHeader(reader *csv.Reader) ([]string, error) {
	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	// Spreadsheet exports often start with a byte order mark.
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	return header, nil
}
