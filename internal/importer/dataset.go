package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"needsleads/pkg/types"

	"gopkg.in/yaml.v3"
)

// FormatFromPath infers the dataset format from a file name or object key.
func FormatFromPath(path string) (types.DatasetFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return types.DatasetFormatJSON, nil
	case ".yaml", ".yml":
		return types.DatasetFormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", types.ErrUnsupportedDatasetFormat, path)
}

func ParseFormat(s string) (types.DatasetFormat, error) {
	switch types.DatasetFormat(strings.ToLower(s)) {
	case types.DatasetFormatJSON:
		return types.DatasetFormatJSON, nil
	case types.DatasetFormatYAML, "yml":
		return types.DatasetFormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", types.ErrUnsupportedDatasetFormat, s)
}

func ContentType(format types.DatasetFormat) string {
	if format == types.DatasetFormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

func EncodeDataset(w io.Writer, dataset *types.Dataset, format types.DatasetFormat) error {
	switch format {
	case types.DatasetFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(dataset); err != nil {
			return fmt.Errorf("failed to encode dataset as json: %w", err)
		}
		return nil
	case types.DatasetFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dataset); err != nil {
			return fmt.Errorf("failed to encode dataset as yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", types.ErrUnsupportedDatasetFormat, format)
}

func DecodeDataset(r io.Reader, format types.DatasetFormat) (*types.Dataset, error) {
	dataset := new(types.Dataset)

	switch format {
	case types.DatasetFormatJSON:
		if err := json.NewDecoder(r).Decode(dataset); err != nil {
			return nil, fmt.Errorf("failed to decode json dataset: %w", err)
		}
	case types.DatasetFormatYAML:
		if err := yaml.NewDecoder(r).Decode(dataset); err != nil {
			return nil, fmt.Errorf("failed to decode yaml dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedDatasetFormat, format)
	}

	return dataset, nil
}

// MarshalDataset is EncodeDataset into memory, for uploads.
func MarshalDataset(dataset *types.Dataset, format types.DatasetFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeDataset(&buf, dataset, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteDatasetFile(path string, dataset *types.Dataset, format types.DatasetFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}

	if err := EncodeDataset(f, dataset, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func ReadDatasetFile(path string) (*types.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	return DecodeDataset(f, format)
}
