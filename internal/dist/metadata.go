package dist

import (
	"bufio"
	"bytes"
	"strings"
)

// parseCoreMetadata parses the RFC 822 style headers of a PKG-INFO or
// METADATA file (the "core metadata" format every Python distribution
// embeds). Headers end at the first blank line; the description body that
// may follow is not metadata. Repeated fields such as Classifier keep their
// first value, which is all the checklist needs.
func parseCoreMetadata(data []byte) (map[string]string, error) {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var currentKey string
	var currentValue strings.Builder

	flush := func() {
		if currentKey == "" {
			return
		}
		if _, ok := fields[currentKey]; !ok {
			fields[currentKey] = currentValue.String()
		}
		currentKey = ""
	}

	for scanner.Scan() {
		line := scanner.Text()

		// Blank line ends the headers
		if strings.TrimSpace(line) == "" {
			break
		}

		// Handle continuation lines (start with whitespace)
		if line[0] == ' ' || line[0] == '\t' {
			if currentKey != "" {
				currentValue.WriteString("\n")
				currentValue.WriteString(strings.TrimSpace(line))
			}
			continue
		}

		// Save previous key-value pair
		flush()

		// Parse new key-value pair
		if idx := strings.Index(line, ":"); idx >= 0 {
			currentKey = strings.TrimSpace(line[:idx])
			currentValue.Reset()
			currentValue.WriteString(strings.TrimSpace(line[idx+1:]))
		}
	}

	// Save last key-value pair
	flush()

	return fields, scanner.Err()
}
