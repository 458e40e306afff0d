// file: internals/seeds/loader/loader.go
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// Decode membaca file seed: .json (sonic) atau .yaml/.yml (yaml.v3).
func Decode(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("baca %s: %w", path, err)
	}
	return DecodeBytes(filepath.Ext(path), raw, out)
}

func DecodeBytes(ext string, raw []byte, out any) error {
	switch strings.ToLower(ext) {
	case ".json":
		if err := sonic.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("ekstensi seed %q tidak didukung (json/yaml)", ext)
	}
	return nil
}
