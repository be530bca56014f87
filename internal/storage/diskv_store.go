package storage

import (
	"context"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore keeps one file per key under a base directory.
type DiskvStore struct {
	d *diskv.Diskv
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024,
	})}
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key + ".json"}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.TrimSuffix(pk.FileName, ".json")
}

func (s *DiskvStore) Load(_ context.Context, key string) (string, error) {
	if !s.d.Has(key) {
		return "", ErrNotFound
	}
	b, err := s.d.Read(key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *DiskvStore) Save(_ context.Context, key, value string) error {
	return s.d.Write(key, []byte(value))
}

func (s *DiskvStore) Remove(_ context.Context, key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

func (s *DiskvStore) Close() error {
	return nil
}
