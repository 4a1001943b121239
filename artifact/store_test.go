package artifact

import (
	"sync"
	"testing"

	"github.com/rushteam/actireco/dataset"
)

func storeDataset(ids ...string) *dataset.Dataset {
	acts := make([]dataset.Activity, 0, len(ids))
	for _, id := range ids {
		acts = append(acts, dataset.Activity{ID: id})
	}
	return &dataset.Dataset{Activities: acts}
}

func TestStore_ReplaceBumpsVersion(t *testing.T) {
	s := NewStore(NewSnapshot(1, storeDataset("a1"), nil, nil))
	s.Replace(NewSnapshot(0, storeDataset("a1", "a2"), nil, nil))

	snap := s.Snapshot()
	if snap.Version != 2 {
		t.Errorf("version = %d, want 2", snap.Version)
	}
	if len(snap.Dataset.Activities) != 2 {
		t.Errorf("dataset not replaced")
	}
}

func TestStore_ReplaceCFKeepsDataset(t *testing.T) {
	ds := storeDataset("a1")
	s := NewStore(NewSnapshot(1, ds, nil, nil))

	cf := &CFModel{
		UserIndex:   map[string]int{"u1": 0},
		ItemIndex:   map[string]int{"a1": 0},
		UserFactors: [][]float64{{1}},
		ItemFactors: [][]float64{{1}},
	}
	s.ReplaceCF(cf, nil)

	snap := s.Snapshot()
	if !snap.HasCF() {
		t.Fatal("cf not installed")
	}
	if snap.Dataset != ds {
		t.Error("nil dataset must keep the previous one")
	}
}

func TestStore_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	s := NewStore(NewSnapshot(1, storeDataset("a1"), nil, nil))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// readers: every snapshot must be internally consistent
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := s.Snapshot()
				if snap == nil {
					t.Error("nil snapshot observed")
					return
				}
				// version N snapshots carry N activities by construction below
				if int(snap.Version) != len(snap.Dataset.Activities) {
					t.Errorf("torn snapshot: version=%d activities=%d",
						snap.Version, len(snap.Dataset.Activities))
					return
				}
			}
		}()
	}

	ids := []string{"a1"}
	for v := 2; v <= 50; v++ {
		ids = append(ids, "a"+string(rune('0'+v%10)))
		s.Replace(NewSnapshot(0, storeDataset(ids...), nil, nil))
	}
	close(stop)
	wg.Wait()
}
