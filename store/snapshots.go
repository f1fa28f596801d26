package store

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/gopartyparrot/driftmeta/addresses"
	"github.com/gopartyparrot/driftmeta/config"
)

// LookupTableSnapshot is one observation of a network's market lookup table.
type LookupTableSnapshot struct {
	Network   config.Network
	Date      string
	Key       string
	Addresses []string
}

// SnapshotStore persists lookup table snapshots to a single JSON file,
// keyed by network and date.
type SnapshotStore struct {
	mu       sync.Mutex
	filePath string

	kv map[string]json.RawMessage
}

func OpenSnapshotStore(filePath string) (*SnapshotStore, error) {
	kv := make(map[string]json.RawMessage)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if len(data) != 0 {
		if err := json.Unmarshal(data, &kv); err != nil {
			return nil, err
		}
	}

	return &SnapshotStore{
		filePath: filePath,
		kv:       kv,
	}, nil
}

// Record stores a snapshot of the given lookup table under key.
func (s *SnapshotStore) Record(key string, network config.Network, table addresses.AddressLookupTableAccount, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := LookupTableSnapshot{
		Network:   network,
		Date:      date,
		Key:       table.Key.String(),
		Addresses: make([]string, 0, len(table.Addresses)),
	}
	for _, a := range table.Addresses {
		snap.Addresses = append(snap.Addresses, a.String())
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.kv[key] = data
	return s.saveFile()
}

// Get loads the snapshot stored under key, reporting whether it exists.
func (s *SnapshotStore) Get(key string, snap *LookupTableSnapshot) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.kv[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, snap); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SnapshotStore) saveFile() error {
	f, err := os.Create(s.filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	return enc.Encode(s.kv)
}
