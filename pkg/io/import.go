package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/labdoc/pkg/errors"
	"github.com/matzehuels/labdoc/pkg/report"
)

// EntryFile is the name of the entry file in a report directory.
const EntryFile = "output.json"

// ReadEntries decodes a JSON entry array from r.
//
// Entries are returned in file order; the assembler sorts them by index.
// ReadEntries does not close r.
func ReadEntries(r io.Reader) ([]report.Entry, error) {
	var entries []report.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode entries")
	}
	return entries, nil
}

// ImportEntries reads the entry file at path.
//
// A missing file is reported with code FILE_NOT_FOUND; decoding errors are
// the same as for [ReadEntries].
func ImportEntries(path string) ([]report.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadEntries(f)
}
