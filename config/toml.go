package config

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// TOMLParser is a koanf.Parser for TOML files.
type TOMLParser struct{}

func TOML() *TOMLParser {
	return &TOMLParser{}
}

func (p *TOMLParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *TOMLParser) Marshal(o map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
