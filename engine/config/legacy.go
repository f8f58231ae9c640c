package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/lizual/lizual/engine/core"
)

// LoadKeyValue reads the old `field=value` format into cfg. Malformed lines
// and unknown fields are logged and skipped; cfg keeps its previous values
// for anything not present.
func LoadKeyValue(fs afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		core.LogError("failed to open config file %s: %s", path, err)
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		field, value, ok := splitKeyValue(scanner.Text())
		if !ok {
			continue
		}
		switch field {
		case "update_rate":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				core.LogError("config %s:%d: invalid value for %s: %q", path, lineNumber, field, value)
				continue
			}
			cfg.Render.UpdateRate = uint32(v)
		default:
			core.LogError("config %s:%d: unknown field %q", path, lineNumber, field)
		}
	}
	return scanner.Err()
}

// splitKeyValue skips leading spaces, ends the field at '=' or a space and
// reads the value from the first non-space after '=' up to the next space.
func splitKeyValue(line string) (string, string, bool) {
	line = strings.TrimLeft(line, " ")
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", false
	}
	field := line[:eq]
	if sp := strings.IndexByte(field, ' '); sp >= 0 {
		field = field[:sp]
	}
	value := strings.TrimLeft(line[eq+1:], " ")
	if sp := strings.IndexByte(value, ' '); sp >= 0 {
		value = value[:sp]
	}
	value = strings.TrimRight(value, "\r")
	if field == "" || value == "" {
		return "", "", false
	}
	return field, value, true
}
