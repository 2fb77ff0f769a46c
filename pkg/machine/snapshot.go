package machine

import (
	"encoding/gob"
	"os"
)

// Snapshot writes the full machine state to path, gob-encoded. It lets a
// run be paused and resumed, or a test fixture a mid-program state
// without replaying every instruction from reset.
func Snapshot(path string, s *State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(s)
}

// Restore reads a machine state previously written by Snapshot.
func Restore(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var s State
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
