// Package pantry 管理使用者的食材清單及其本地儲存。
package pantry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"chef-express/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	_ "modernc.org/sqlite"
)

// DefaultKey 食材清單的儲存鍵
const DefaultKey = "chefExpress_ingredientes"

// Store 以固定鍵儲存整份食材清單
type Store interface {
	// Load 讀取清單，尚未儲存過時回傳空清單
	Load(ctx context.Context) ([]common.Ingredient, error)
	// Save 覆寫整份清單
	Save(ctx context.Context, items []common.Ingredient) error
	Close() error
}

// Compile-time interface checks.
var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*RedisStore)(nil)
)

func decodeItems(data []byte) ([]common.Ingredient, error) {
	var items []common.Ingredient
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding pantry: %w", err)
	}
	if items == nil {
		items = []common.Ingredient{}
	}
	return items, nil
}

func encodeItems(items []common.Ingredient) ([]byte, error) {
	if items == nil {
		items = []common.Ingredient{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding pantry: %w", err)
	}
	return data, nil
}

// SQLiteStore 將清單存在 SQLite 的 kv 表
type SQLiteStore struct {
	conn *sql.DB
	key  string
}

// OpenSQLite 開啟（或建立）清單資料庫
func OpenSQLite(path, key string) (*SQLiteStore, error) {
	if key == "" {
		key = DefaultKey
	}
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data dir: %w", err)
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &SQLiteStore{conn: conn, key: key}, nil
}

// Load 實作 Store
func (s *SQLiteStore) Load(ctx context.Context) ([]common.Ingredient, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []common.Ingredient{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading pantry: %w", err)
	}
	return decodeItems([]byte(value))
}

// Save 實作 Store
func (s *SQLiteStore) Save(ctx context.Context, items []common.Ingredient) error {
	data, err := encodeItems(items)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.key, string(data))
	if err != nil {
		return fmt.Errorf("writing pantry: %w", err)
	}
	return nil
}

// Close 關閉資料庫連線
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// RedisStore 將清單存在 Redis，適合多台裝置共用
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore 建立 Redis 儲存並測試連線
func NewRedisStore(ctx context.Context, opts *redis.Options, key string) (*RedisStore, error) {
	if key == "" {
		key = DefaultKey
	}
	client := redis.NewClient(opts)

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, key: key}, nil
}

// Load 實作 Store
func (s *RedisStore) Load(ctx context.Context) ([]common.Ingredient, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return []common.Ingredient{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry: %w", err)
	}
	return decodeItems(data)
}

// Save 實作 Store
func (s *RedisStore) Save(ctx context.Context, items []common.Ingredient) error {
	data, err := encodeItems(items)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set pantry: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
