package learn

import (
	"fmt"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// checkpointVersion guards the on-disk format.
const checkpointVersion = 1

// Checkpoint is a snapshot of a training run: the trained weights,
// optimizer state and metadata, serialized with msgpack.
//
//	ck := &learn.Checkpoint{
//	    Weights: clf.Weights(),
//	    Epoch:   100,
//	    Loss:    0.031,
//	}
//	err := learn.SaveCheckpoint("parity.ck", ck)
type Checkpoint struct {
	Version        int                  `msgpack:"version"`
	Weights        []float64            `msgpack:"weights"`
	Epoch          int                  `msgpack:"epoch"`
	Loss           float64              `msgpack:"loss"`
	OptimizerState map[string][]float64 `msgpack:"optimizer_state,omitempty"`
	Metadata       map[string]string    `msgpack:"metadata,omitempty"`
	SavedAt        time.Time            `msgpack:"saved_at"`
}

// SaveCheckpoint writes a checkpoint to path. Version and timestamp are
// filled in.
func SaveCheckpoint(path string, ck *Checkpoint) error {
	ck.Version = checkpointVersion
	if ck.SavedAt.IsZero() {
		ck.SavedAt = time.Now().UTC()
	}
	data, err := msgpack.Marshal(ck)
	if err != nil {
		return fmt.Errorf("checkpoint: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("checkpoint: write %s: %w", path, err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint from path, rejecting unknown
// format versions.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: read %s: %w", path, err)
	}
	var ck Checkpoint
	if err := msgpack.Unmarshal(data, &ck); err != nil {
		return nil, fmt.Errorf("checkpoint: unmarshal %s: %w", path, err)
	}
	if ck.Version != checkpointVersion {
		return nil, fmt.Errorf("checkpoint: unsupported version %d (want %d)", ck.Version, checkpointVersion)
	}
	return &ck, nil
}
