package storage

import (
	"bytes"
	json "github.com/goccy/go-json"
	"io"
	"os"
)

const (
	FormatNDJSON = "ndjson"
	FormatArray  = "array"
)

// alertCodec is the on-disk layout of the alert log. readRecords returns raw
// records in insertion order; corrupt reports that the file as a whole could
// not be parsed (array layout only).
type alertCodec interface {
	appendRecord(path string, record []byte) error
	readRecords(path string) (records [][]byte, corrupt bool, err error)
}

func newAlertCodec(format string) alertCodec {
	if format == FormatArray {
		return arrayCodec{}
	}
	return ndjsonCodec{}
}

type ndjsonCodec struct{}

func (ndjsonCodec) appendRecord(path string, record []byte) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	line := make([]byte, 0, len(record)+2)
	// a torn tail from an interrupted write must not swallow this record
	if info, err := file.Stat(); err == nil && info.Size() > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, info.Size()-1); err != nil && err != io.EOF {
			file.Close()
			return err
		}
		if last[0] != '\n' {
			line = append(line, '\n')
		}
	}
	line = append(line, record...)
	line = append(line, '\n')

	if _, err = file.Write(line); err != nil {
		file.Close()
		return err
	}
	if err = file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (ndjsonCodec) readRecords(path string) ([][]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var records [][]byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		records = append(records, line)
	}
	return records, false, nil
}

type arrayCodec struct{}

func (c arrayCodec) appendRecord(path string, record []byte) error {
	records, corrupt, err := c.readRecords(path)
	if err != nil {
		return err
	}
	if corrupt {
		records = nil
	}
	raw := make([]json.RawMessage, 0, len(records)+1)
	for _, r := range records {
		raw = append(raw, r)
	}
	raw = append(raw, record)

	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

func (arrayCodec) readRecords(path string) ([][]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if isBlank(data) {
		return nil, false, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, true, nil
	}
	records := make([][]byte, 0, len(raw))
	for _, r := range raw {
		records = append(records, r)
	}
	return records, false, nil
}
