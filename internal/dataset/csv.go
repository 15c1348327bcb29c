// Package dataset reads and writes OHLCV bars as CSV.
//
// The header names the columns and their order is free. The time column may be
// called time or timestamp and holds unix milliseconds, RFC 3339 or
// "2006-01-02 15:04:05" (UTC). The other required columns are open, high, low,
// close and volume; extra columns are ignored.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
)

var columns = []string{"open", "high", "low", "close", "volume"}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// Read parses every row of r. Rows are returned in file order; ordering and
// finiteness are checked later by the bar store.
func Read(r io.Reader) ([]types.BarInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBarDataReadFailed, "failed to read csv header", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var bars []types.BarInput

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeBarDataReadFailed, err, "failed to read csv line %d", line)
		}

		bar, err := parseRecord(record, index)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeBarDataReadFailed, err, "invalid bar on line %d", line)
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// ReadFile parses the CSV file at path.
func ReadFile(path string) ([]types.BarInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBarDataReadFailed, "failed to open bar data", err)
	}
	defer f.Close()

	return Read(f)
}

// Write encodes bars with a time column in unix milliseconds.
func Write(w io.Writer, bars []types.BarInput) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(append([]string{"time"}, columns...)); err != nil {
		return err
	}

	for _, b := range bars {
		record := []string{
			strconv.FormatInt(b.Timestamp, 10),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "timestamp" {
			name = "time"
		}

		index[name] = i
	}

	for _, name := range append([]string{"time"}, columns...) {
		if _, ok := index[name]; !ok {
			return nil, errors.Newf(errors.ErrCodeBarDataReadFailed, "csv header is missing column %q", name)
		}
	}

	return index, nil
}

func parseRecord(record []string, index map[string]int) (types.BarInput, error) {
	field := func(name string) string {
		if i := index[name]; i < len(record) {
			return strings.TrimSpace(record[i])
		}

		return ""
	}

	ts, err := parseTime(field("time"))
	if err != nil {
		return types.BarInput{}, err
	}

	values := make([]float64, len(columns))
	for i, name := range columns {
		v, err := strconv.ParseFloat(field(name), 64)
		if err != nil {
			return types.BarInput{}, errors.Wrapf(errors.ErrCodeInvalidBar, err, "invalid %s", name)
		}

		values[i] = v
	}

	return types.BarInput{
		Timestamp: ts,
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
	}, nil
}

func parseTime(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UnixMilli(), nil
		}
	}

	return 0, errors.Newf(errors.ErrCodeInvalidBar, "unrecognized time %q", s)
}
