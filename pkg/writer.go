package msgtree

import (
	"errors"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type table struct {
	dset *hdf5.Dataset
	rows int
}

func (t *table) Close() error {
	return t.dset.Close()
}

// Writer stores decoded archives in an HDF5 file. Every archive gets an id,
// the position in which it was written, that links its rows across tables.
type Writer struct {
	File           *hdf5.File
	Filename       string
	ArchivesGroup  *hdf5.Group
	CodesGroup     *hdf5.Group
	StatsGroup     *hdf5.Group
	MessagesGroup  *hdf5.Group
	ArchivesTable  *table
	CodesTable     *table
	StatsTable     *table
	MessageIndex   *table
	MessageText    *table
	ArchiveCounter int
}

func NewWriter(filename string) (*Writer, error) {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "hdf5writer")
	}

	var err error
	writer := &Writer{Filename: filename}
	writer.File, err = openFile(filename)
	if err != nil {
		return nil, err
	}

	groups := []struct {
		group **hdf5.Group
		name  string
	}{
		{&writer.ArchivesGroup, "Archives"},
		{&writer.CodesGroup, "Codes"},
		{&writer.StatsGroup, "Statistics"},
		{&writer.MessagesGroup, "Messages"},
	}
	for _, g := range groups {
		*g.group, err = createGroup(writer.File, g.name)
		if err != nil {
			writer.Close()
			return nil, err
		}
	}

	tables := []struct {
		table    **table
		group    *hdf5.Group
		name     string
		datatype interface{}
	}{
		{&writer.ArchivesTable, writer.ArchivesGroup, "names", ArchiveHDF5{}},
		{&writer.CodesTable, writer.CodesGroup, "table", CodeHDF5{}},
		{&writer.StatsTable, writer.StatsGroup, "table", StatisticsHDF5{}},
		{&writer.MessageIndex, writer.MessagesGroup, "index", MessageIndexHDF5{}},
	}
	for _, t := range tables {
		dset, err := createTable(t.group, t.name, t.datatype)
		if err != nil {
			writer.Close()
			return nil, err
		}
		*t.table = &table{dset: dset}
	}

	text, err := createByteArray(writer.MessagesGroup, "text")
	if err != nil {
		writer.Close()
		return nil, err
	}
	writer.MessageText = &table{dset: text}
	return writer, nil
}

func (w *Writer) WriteResult(result *Result) error {
	id := int32(w.ArchiveCounter)

	var err error
	archive := []ArchiveHDF5{{archive_id: id, name: convertToHdf5Name(result.Name)}}
	if w.ArchivesTable.rows, err = appendRows(w.ArchivesTable.dset, archive, w.ArchivesTable.rows); err != nil {
		return fmt.Errorf("error writing archive %q: %w", result.Name, err)
	}

	codes := make([]CodeHDF5, len(result.Codes))
	for i, entry := range result.Codes {
		codes[i] = CodeHDF5{
			archive_id:  id,
			symbol:      int32(entry.Symbol),
			code_length: int32(len(entry.Code)),
			code:        convertToHdf5Code(entry.Code),
		}
	}
	if w.CodesTable.rows, err = appendRows(w.CodesTable.dset, codes, w.CodesTable.rows); err != nil {
		return fmt.Errorf("error writing codes of %q: %w", result.Name, err)
	}

	stats := []StatisticsHDF5{{
		archive_id:    id,
		bits:          int64(result.Stats.Bits),
		chars:         int64(result.Stats.Chars),
		avg_bits:      result.Stats.AvgBitsPerChar,
		space_savings: result.Stats.SpaceSavings,
	}}
	if w.StatsTable.rows, err = appendRows(w.StatsTable.dset, stats, w.StatsTable.rows); err != nil {
		return fmt.Errorf("error writing statistics of %q: %w", result.Name, err)
	}

	text := []byte(result.Message)
	index := []MessageIndexHDF5{{
		archive_id: id,
		offset:     int64(w.MessageText.rows),
		length:     int64(len(text)),
	}}
	if w.MessageText.rows, err = appendRows(w.MessageText.dset, text, w.MessageText.rows); err != nil {
		return fmt.Errorf("error writing message of %q: %w", result.Name, err)
	}
	if w.MessageIndex.rows, err = appendRows(w.MessageIndex.dset, index, w.MessageIndex.rows); err != nil {
		return fmt.Errorf("error writing message index of %q: %w", result.Name, err)
	}

	w.ArchiveCounter++
	return nil
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file: %s", w.Filename), "hdf5writer")
	}
	var errs []error

	for name, t := range map[string]*table{
		"archives table": w.ArchivesTable,
		"codes table":    w.CodesTable,
		"stats table":    w.StatsTable,
		"message index":  w.MessageIndex,
		"message text":   w.MessageText,
	} {
		if t == nil {
			continue
		}
		if err := t.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", name, err))
		}
	}
	for name, g := range map[string]*hdf5.Group{
		"archives group":   w.ArchivesGroup,
		"codes group":      w.CodesGroup,
		"statistics group": w.StatsGroup,
		"messages group":   w.MessagesGroup,
	} {
		if g == nil {
			continue
		}
		if err := g.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", name, err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
