package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

var ErrReportNotExist = errors.New("report doesn't exist")

// Save writes the report to path as JSON, replacing any previous file atomically.
func Save(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}
	return nil
}

func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReportNotExist
		}
		return nil, fmt.Errorf("read file failure: %w", err)
	}

	r := &Report{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("deserialization failure: %w", err)
	}
	return r, nil
}
