package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	log "github.com/lokichain/loki-node/common/logger"
	"github.com/lokichain/loki-node/config"
	"github.com/syndtr/goleveldb/leveldb"
)

const dbName = "loki.db"

func InitDB(cfg *config.Config) (*leveldb.DB, error) {
	dbPath := filepath.Join(cfg.DB.Path, dbName)

	// 디렉토리가 없으면 생성된다
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		log.Error("Failed to open db: ", err)
		return nil, err
	}

	log.Info("Successfully opened db: ", dbPath)
	return db, nil
}

// getValue 키가 없으면 (nil, nil)
func getValue(db *leveldb.DB, key []byte) ([]byte, error) {
	data, err := db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}
