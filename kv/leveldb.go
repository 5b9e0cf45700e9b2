// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

var (
	writeOpt = &opt.WriteOptions{}
	readOpt  = &opt.ReadOptions{}
)

// levelDB implements the Store interface.
type levelDB struct {
	db *leveldb.DB
}

// levelDBBatch implements the Batch interface.
type levelDBBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func openLevelDB(stg storage.Storage, cacheSize, openFilesCacheCapacity int) (*levelDB, error) {
	if cacheSize < 128 {
		cacheSize = 128
	}
	if openFilesCacheCapacity < 64 {
		openFilesCacheCapacity = 64
	}

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: openFilesCacheCapacity,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &levelDB{db: db}, nil
}

// NewMemStore creates a memory-backed store, mostly for tests.
func NewMemStore() Store {
	db, err := openLevelDB(storage.NewMemStorage(), 128, 0)
	if err != nil {
		panic(err)
	}
	return db
}

// NewStore creates a file-backed store at the given path.
func NewStore(path string, cacheSize, openFilesCacheCapacity int) (Store, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open level db file storage")
	}
	return openLevelDB(stg, cacheSize, openFilesCacheCapacity)
}

func (ldb *levelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, readOpt)
}

func (ldb *levelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, readOpt)
}

func (ldb *levelDB) IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}

func (ldb *levelDB) Put(key, val []byte) error {
	return ldb.db.Put(key, val, writeOpt)
}

func (ldb *levelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, writeOpt)
}

func (ldb *levelDB) NewBatch() Batch {
	return &levelDBBatch{ldb.db, &leveldb.Batch{}}
}

func (ldb *levelDB) Close() error {
	return ldb.db.Close()
}

func (b *levelDBBatch) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return nil
}

func (b *levelDBBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *levelDBBatch) Len() int {
	return b.batch.Len()
}

func (b *levelDBBatch) Write() error {
	return b.db.Write(b.batch, writeOpt)
}
