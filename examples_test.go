package binconf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseExampleFiles(t *testing.T) {
	examplesDir := "examples"

	examples := []string{
		"01-constants.bconf",
		"02-table.bconf",
		"03-nested.bconf",
		"04-comments.bconf",
	}

	for _, example := range examples {
		path := filepath.Join(examplesDir, example)
		t.Run(example, func(t *testing.T) {
			content, err := os.ReadFile(path)
			if err != nil {
				t.Skipf("Example file not found: %s", path)
				return
			}

			v, err := Parse(string(content))
			if err != nil {
				t.Errorf("Failed to parse %s: %v", example, err)
				return
			}

			tbl, ok := v.(*Table)
			if !ok {
				t.Errorf("Parsed result for %s is not a table: %T", example, v)
				return
			}

			t.Logf("Successfully parsed %s with %d entries", example, tbl.Len())
		})
	}
}
