package intent

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RegistryRelPath is the intent registry's location relative to the
// workspace root, per spec.md §6.
const RegistryRelPath = ".orchestration/active_intents.yaml"

// Store reads and writes the intent registry file. It exclusively owns
// that file; hooks only ever call Find or SetStatus on it.
type Store struct {
	// Path is the absolute path to active_intents.yaml.
	Path string

	// root holds the parsed document as a yaml.Node tree so that
	// unmarshaled round-trips preserve any keys this package doesn't
	// know about.
	root *yaml.Node
}

// registryDoc is the typed shape used only to answer queries; the
// authoritative data for round-tripping is root.
type registryDoc struct {
	ActiveIntents []Intent `yaml:"active_intents"`
}

// NewStore opens the registry at <workspaceRoot>/.orchestration/active_intents.yaml.
func NewStore(workspaceRoot string) *Store {
	return &Store{Path: filepath.Join(workspaceRoot, RegistryRelPath)}
}

// load parses the registry file, tolerating a missing file as an empty
// registry (no intents declared yet).
func (s *Store) load() (*registryDoc, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		s.root = &yaml.Node{}
		return &registryDoc{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read intent registry: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse intent registry: %w", err)
	}
	s.root = &root

	var doc registryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode intent registry: %w", err)
	}
	return &doc, nil
}

// Find returns the intent with the given id, or ok=false if the registry
// has no such intent (including when the registry file does not exist).
func (s *Store) Find(intentID string) (Intent, bool, error) {
	doc, err := s.load()
	if err != nil {
		return Intent{}, false, err
	}
	for _, in := range doc.ActiveIntents {
		if in.ID == intentID {
			return in, true, nil
		}
	}
	return Intent{}, false, nil
}

// List returns every intent currently declared in the registry.
func (s *Store) List() ([]Intent, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.ActiveIntents, nil
}

// SetStatus transitions intentID to newStatus. Per spec.md §4.5, the file
// is only re-serialized when the stored status actually differs, so
// repeated identical transitions are a no-op write (testable property
// "Intent update idempotence").
func (s *Store) SetStatus(intentID string, newStatus Status) (changed bool, err error) {
	doc, err := s.load()
	if err != nil {
		return false, err
	}

	idx := -1
	for i, in := range doc.ActiveIntents {
		if in.ID == intentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, fmt.Errorf("%w: %s", ErrIntentNotFound, intentID)
	}
	if doc.ActiveIntents[idx].Status == newStatus {
		return false, nil
	}

	if err := setStatusInNode(s.root, intentID, string(newStatus)); err != nil {
		return false, err
	}

	if err := s.writeNode(); err != nil {
		return false, err
	}
	return true, nil
}

// writeNode serializes s.root back to disk, creating the containing
// directory if needed.
func (s *Store) writeNode() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create orchestration dir: %w", err)
	}

	out, err := yaml.Marshal(s.root)
	if err != nil {
		return fmt.Errorf("marshal intent registry: %w", err)
	}
	if err := os.WriteFile(s.Path, out, 0o644); err != nil {
		return fmt.Errorf("write intent registry: %w", err)
	}
	return nil
}

// setStatusInNode walks the parsed document tree looking for
// active_intents[*] whose id scalar matches intentID, and rewrites its
// status scalar in place. This edits only the status field, leaving
// every other key — known or unknown to this package — untouched, which
// is how unknown keys survive the round-trip.
func setStatusInNode(root *yaml.Node, intentID, newStatus string) error {
	mapping := documentMapping(root)
	if mapping == nil {
		return fmt.Errorf("%w: %s", ErrIntentNotFound, intentID)
	}

	seq := mappingValue(mapping, "active_intents")
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: %s", ErrIntentNotFound, intentID)
	}

	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		id := mappingValue(item, "id")
		if id == nil || id.Value != intentID {
			continue
		}
		status := mappingValue(item, "status")
		if status == nil {
			item.Content = append(item.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "status"},
				&yaml.Node{Kind: yaml.ScalarNode, Value: newStatus},
			)
			return nil
		}
		status.Value = newStatus
		return nil
	}
	return fmt.Errorf("%w: %s", ErrIntentNotFound, intentID)
}

// documentMapping unwraps a parsed yaml.Node down to its top-level mapping.
func documentMapping(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		return documentMapping(n.Content[0])
	}
	if n.Kind == yaml.MappingNode {
		return n
	}
	return nil
}

// mappingValue returns the value node paired with key in a mapping node,
// or nil if not present.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
