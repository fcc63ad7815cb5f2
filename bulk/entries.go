package bulk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toniov/gcal-cli/eventtime"
)

// Entry is one event in a bulk file. Either Text, or Summary and Date, must
// be set, the same as for a single insert.
type Entry struct {
	Summary     string `json:"summary" yaml:"summary"`
	Text        string `json:"text" yaml:"text"`
	Date        string `json:"date" yaml:"date"`
	Time        string `json:"time" yaml:"time"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description" yaml:"description"`
	Location    string `json:"location" yaml:"location"`
}

func (e Entry) Input() eventtime.Input {
	return eventtime.Input{
		Text:     e.Text,
		Summary:  e.Summary,
		Date:     e.Date,
		Time:     e.Time,
		Duration: e.Duration,
	}
}

// LoadFile reads a list of entries from a .json, .yaml or .yml file.
func LoadFile(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bulk: unable to read events: %w", err)
	}

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &entries)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &entries)
	default:
		return nil, fmt.Errorf("bulk: unsupported events file %q (want .json, .yaml or .yml)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("bulk: unable to parse %s: %w", path, err)
	}
	return entries, nil
}
