package repository

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/edutrack/core/internal/domain/entities"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes the snapshot to w. JSON output is byte-identical to the data file;
// YAML output is produced from the same JSON document so preserved keys survive.
func Export(w io.Writer, snapshot *entities.Snapshot, format string) error {
	data, err := Encode(snapshot)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON, "":
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		return nil
	case FormatYAML:
		var doc interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("convert export: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
