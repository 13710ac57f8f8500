package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// ErrConfigMissing is returned when the configuration is absent or lacks required keys.
var ErrConfigMissing = errors.New("configuration missing")

// Values holds the key/value pairs read from an env file.
type Values map[string]string

// Load reads key=value pairs from the file at path. Blank lines, lines
// starting with '#' and lines without '=' are skipped; lines are split on the
// first '='. A file that does not exist yields empty values and no error,
// callers decide whether that is fatal.
func Load(path string) (Values, error) {
	values := make(Values)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Scan: %w", err)
	}

	return values, nil
}

// Require returns ErrConfigMissing naming every key that is absent or empty.
func (v Values) Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if v[k] == "" {
			missing = append(missing, k)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(missing, ", "))
	}
	return nil
}

// WithPrefix returns the values whose keys start with prefix, with the prefix
// removed and the remainder lowercased.
func (v Values) WithPrefix(prefix string) map[string]string {
	out := make(map[string]string)
	for k, val := range v {
		if rest, ok := strings.CutPrefix(k, prefix); ok && rest != "" {
			out[strings.ToLower(rest)] = val
		}
	}
	return out
}
