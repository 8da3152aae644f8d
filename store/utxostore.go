// Package store persists the coins codec's entries in a goleveldb database,
// keyed by transaction id. A thin wrapper type around a storage engine
// with one method per logical table, here a single coins table keyed
// directly by txid.
package store

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/massconsensus/btccore/coins"
	"github.com/massconsensus/btccore/wire"
)

// UtxoStore is a goleveldb-backed chain-state database: one coins entry per
// transaction that still has at least one unspent output.
type UtxoStore struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a UtxoStore at dir.
func Open(dir string) (*UtxoStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "store: opening utxo database")
	}
	return &UtxoStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *UtxoStore) Close() error {
	return s.db.Close()
}

func txidKey(txid *wire.Hash) []byte {
	return txid[:]
}

// PutCoins writes c under txid, deleting the key instead when c is fully
// spent, per the codec's "caller deletes the key" contract.
func (s *UtxoStore) PutCoins(txid *wire.Hash, c *coins.Coins) error {
	data, err := c.Encode()
	if err != nil {
		return errors.Wrap(err, "store: encoding coins entry")
	}
	if data == nil {
		return s.DeleteCoins(txid)
	}
	return s.db.Put(txidKey(txid), data, nil)
}

// DeleteCoins removes the entry for txid, if any.
func (s *UtxoStore) DeleteCoins(txid *wire.Hash) error {
	return s.db.Delete(txidKey(txid), nil)
}

// GetCoins reads the coins entry for txid and parses it with coins.Decode;
// each output stays undecoded until it is first accessed. Callers that
// only need one output should prefer GetOutput, which avoids allocating the
// other entries' decode state.
func (s *UtxoStore) GetCoins(txid *wire.Hash) (*coins.Coins, error) {
	data, err := s.db.Get(txidKey(txid), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "store: reading coins entry")
	}
	c, err := coins.Decode(data, *txid)
	if err != nil {
		return nil, errors.Wrap(err, "store: decoding coins entry")
	}
	return c, nil
}

// GetOutput answers "is outpoint (txid, index) unspent, and if so what's
// its value and script" via the codec's parse_coin fast path, without
// decoding the transaction's other outputs.
func (s *UtxoStore) GetOutput(txid *wire.Hash, index int) (*coins.Output, bool, error) {
	data, err := s.db.Get(txidKey(txid), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "store: reading coins entry")
	}
	return coins.ParseOutput(data, *txid, index)
}

// Has reports whether txid has any recorded entry (spent or not fully
// deleted) in the store.
func (s *UtxoStore) Has(txid *wire.Hash) (bool, error) {
	ok, err := s.db.Has(txidKey(txid), nil)
	if err != nil {
		return false, errors.Wrap(err, "store: checking coins entry")
	}
	return ok, nil
}
