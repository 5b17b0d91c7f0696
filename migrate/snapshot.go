package migrate

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/quern-dev/quern/schema"
)

// snapshotFile records the registry state the last generated migration
// brought the database to. The next diff runs against it.
const snapshotFile = "snapshot.json"

// Snapshot is the persisted registry state.
type Snapshot struct {
	Tables []*schema.Table `json:"tables"`
}

func snapshotOf(reg *schema.Registry) *Snapshot {
	return &Snapshot{Tables: reg.Tables()}
}

func (e *Engine) loadSnapshot() (*Snapshot, error) {
	path := e.snapshotPath()
	exists, err := afero.Exists(e.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema snapshot: %w", err)
	}
	if !exists {
		return &Snapshot{}, nil
	}
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse schema snapshot %s: %w", path, err)
	}
	return &snap, nil
}

func (e *Engine) saveSnapshot(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return err
	}
	if err := afero.WriteFile(e.fs, e.snapshotPath(), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write schema snapshot: %w", err)
	}
	return nil
}
