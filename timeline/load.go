package timeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when a schedule file has an extension that
// is neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported schedule format")

// ErrNotSchedule is returned when a document is neither a list of intervals
// nor an object with a "gantt" list.
var ErrNotSchedule = errors.New("not a schedule")

// LoadSchedule reads a schedule from a .yaml, .yml, or .json file. The file
// may hold a bare list of intervals or an object with a "gantt" list, which is
// what the scheduling service returns. The schedule is validated.
func LoadSchedule(path string) (Schedule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := ParseSchedule(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// ParseSchedule decodes a schedule from YAML or JSON text. An empty document
// is an empty schedule.
func ParseSchedule(data []byte) (Schedule, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Schedule{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var s Schedule
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&s); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		gantt := ganttNode(root)
		if gantt == nil {
			return nil, fmt.Errorf(
				"%w: object has no gantt list, line %d", ErrNotSchedule, root.Line)
		}

		if err := gantt.Decode(&s); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf(
			"%w: expected a list or an object with a gantt list, line %d",
			ErrNotSchedule, root.Line)
	}

	if s == nil {
		s = Schedule{}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// ganttNode returns the sequence under the "gantt" key of a mapping, or nil.
func ganttNode(m *yaml.Node) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != "gantt" {
			continue
		}

		if v := m.Content[i+1]; v.Kind == yaml.SequenceNode {
			return v
		}

		return nil
	}

	return nil
}
