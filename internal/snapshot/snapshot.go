// Package snapshot is the optional persistence tier of the protocol
// surfaces (C7d): a badger-backed store that gob-encodes every node
// and edge so a graph can be rebuilt without re-extracting source,
// grounded on the badger.Update/View transaction shape of
// AleutianAI-AleutianFOSS/services/trace/graph/snapshot.go and the key
// schema spelled out for this store specifically: node:<id>,
// edge:<seq>, and a single meta:version marker.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/arbor-dev/arbor/internal/graph"
	"github.com/arbor-dev/arbor/internal/version"
)

const (
	keyNodePrefix = "node:"
	keyEdgePrefix = "edge:"
	keyVersion    = "meta:version"
)

// edgeRecord is the gob wire shape for one stored edge.
type edgeRecord struct {
	From string
	To   string
	Kind graph.EdgeKind
	File string
	Line int
}

// Store persists and restores a graph.Graph in a BadgerDB instance.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a badger database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes every node and edge of g, replacing whatever was
// previously stored.
func (s *Store) Save(g *graph.Graph) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := dropPrefix(txn, keyNodePrefix); err != nil {
			return err
		}
		if err := dropPrefix(txn, keyEdgePrefix); err != nil {
			return err
		}

		for _, sym := range g.Nodes() {
			buf, err := encode(sym)
			if err != nil {
				return fmt.Errorf("encoding node %s: %w", sym.ID, err)
			}
			if err := txn.Set([]byte(keyNodePrefix+sym.ID), buf); err != nil {
				return fmt.Errorf("storing node %s: %w", sym.ID, err)
			}
		}

		seq := 0
		for _, e := range g.ExportEdges() {
			rec := edgeRecord{From: e.Source, To: e.Target, Kind: e.Kind, File: e.File, Line: e.Line}
			buf, err := encode(rec)
			if err != nil {
				return fmt.Errorf("encoding edge %d: %w", seq, err)
			}
			if err := txn.Set([]byte(fmt.Sprintf("%s%d", keyEdgePrefix, seq)), buf); err != nil {
				return fmt.Errorf("storing edge %d: %w", seq, err)
			}
			seq++
		}

		return txn.Set([]byte(keyVersion), []byte(version.Version))
	})
}

// Load rebuilds a graph.Graph from the store by replaying AddNode for
// every stored node then AddEdge for every stored edge, per the
// "indexes may be rebuilt at load time" allowance. ok is false if the
// store has never been saved to.
func (s *Store) Load() (g *graph.Graph, ok bool, err error) {
	g = graph.New()
	found := false

	err = s.db.View(func(txn *badger.Txn) error {
		if _, getErr := txn.Get([]byte(keyVersion)); getErr != nil {
			if getErr == badger.ErrKeyNotFound {
				return nil
			}
			return getErr
		}
		found = true

		nodeOpts := badger.DefaultIteratorOptions
		nodeOpts.Prefix = []byte(keyNodePrefix)
		it := txn.NewIterator(nodeOpts)
		for it.Seek([]byte(keyNodePrefix)); it.ValidForPrefix([]byte(keyNodePrefix)); it.Next() {
			var sym graph.Symbol
			if decErr := it.Item().Value(func(val []byte) error { return decode(val, &sym) }); decErr != nil {
				it.Close()
				return fmt.Errorf("decoding node: %w", decErr)
			}
			if _, addErr := g.AddNode(sym); addErr != nil {
				it.Close()
				return fmt.Errorf("replaying node %s: %w", sym.ID, addErr)
			}
		}
		it.Close()

		edgeOpts := badger.DefaultIteratorOptions
		edgeOpts.Prefix = []byte(keyEdgePrefix)
		eit := txn.NewIterator(edgeOpts)
		for eit.Seek([]byte(keyEdgePrefix)); eit.ValidForPrefix([]byte(keyEdgePrefix)); eit.Next() {
			var rec edgeRecord
			if decErr := eit.Item().Value(func(val []byte) error { return decode(val, &rec) }); decErr != nil {
				eit.Close()
				return fmt.Errorf("decoding edge: %w", decErr)
			}
			from, fromOK := g.GetIndex(rec.From)
			to, toOK := g.GetIndex(rec.To)
			if !fromOK || !toOK {
				continue
			}
			g.AddEdge(from, to, graph.Edge{Kind: rec.Kind, File: rec.File, Line: rec.Line})
		}
		eit.Close()

		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return g, found, nil
}

func dropPrefix(txn *badger.Txn, prefix string) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return fmt.Errorf("clearing %s: %w", k, err)
		}
	}
	return nil
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
