package join

import (
	"github.com/go-sif/etl"
)

// bucket holds every build-side Row sharing one key, in arrival order
type bucket struct {
	key  *joinKey
	rows []etl.Row
}

// buildTable is an in-memory multi-map from join keys to Rows. Distinct keys which
// share a hash live side by side in the same slot, so collisions never cause false matches.
type buildTable struct {
	slots      map[uint64][]*bucket
	numRows    int
	numBuckets int
}

func createBuildTable() *buildTable {
	return &buildTable{slots: make(map[uint64][]*bucket)}
}

// insert appends a Row to the bucket for its key. Null keys are never inserted.
func (t *buildTable) insert(key *joinKey, r etl.Row) {
	if key.null {
		return
	}
	slot := t.slots[key.hash]
	for _, b := range slot {
		if b.key.equals(key) {
			b.rows = append(b.rows, r)
			t.numRows++
			return
		}
	}
	t.slots[key.hash] = append(slot, &bucket{key: key, rows: []etl.Row{r}})
	t.numRows++
	t.numBuckets++
}

// lookup returns the Rows matching a key, in insertion order. The result must not be modified.
func (t *buildTable) lookup(key *joinKey) []etl.Row {
	if key.null {
		return nil
	}
	for _, b := range t.slots[key.hash] {
		if b.key.equals(key) {
			return b.rows
		}
	}
	return nil
}

func (t *buildTable) clear() {
	t.slots = nil
}
