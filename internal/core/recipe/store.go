package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chef-express/internal/pkg/common"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrNotFound 食譜不存在
var ErrNotFound = errors.New("recipe not found")

// Store 食譜資料來源
type Store interface {
	// FindByTags 回傳標籤與 names 有交集的食譜（粗略篩選，不分大小寫）
	FindByTags(ctx context.Context, names []string) ([]common.Recipe, error)
	// Get 依 ID 取得完整食譜
	Get(ctx context.Context, id string) (*common.Recipe, error)
	// Ping 檢查資料庫連線
	Ping(ctx context.Context) error
}

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore 以 SQLite 儲存的食譜資料
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite 開啟（或建立）食譜資料庫
func OpenSQLite(path string) (*SQLiteStore, error) {
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
		// 每個連線都是獨立的記憶體資料庫
		conn.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close 關閉資料庫連線
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Conn returns the raw sql.DB for direct queries.
func (s *SQLiteStore) Conn() *sql.DB {
	return s.conn
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		// search_tags 為 JSON 陣列，NULL 代表資料缺少標籤
		`CREATE TABLE IF NOT EXISTS recipes (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT,
			total_time TEXT DEFAULT '',
			search_tags TEXT,
			ingredients TEXT DEFAULT '[]',
			instructions TEXT DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS recipe_tags (
			recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			tag_lower TEXT NOT NULL,
			PRIMARY KEY (recipe_id, tag_lower)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag_lower)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Ping 檢查資料庫連線
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

const selectRecipe = `SELECT r.id, r.title, r.total_time, r.search_tags, r.ingredients, r.instructions FROM recipes r`

// FindByTags 回傳任一標籤（不分大小寫）出現在 names 中的食譜，依寫入順序排列
func (s *SQLiteStore) FindByTags(ctx context.Context, names []string) ([]common.Recipe, error) {
	args := make([]interface{}, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		args = append(args, name)
	}
	if len(args) == 0 {
		return []common.Recipe{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	query := selectRecipe + ` WHERE r.id IN (
		SELECT recipe_id FROM recipe_tags WHERE tag_lower IN (` + placeholders + `)
	) ORDER BY r.seq`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	recipes := make([]common.Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}
	return recipes, nil
}

// Get 依 ID 取得食譜
func (s *SQLiteStore) Get(ctx context.Context, id string) (*common.Recipe, error) {
	row := s.conn.QueryRowContext(ctx, selectRecipe+` WHERE r.id = ?`, id)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row scanner) (*common.Recipe, error) {
	var (
		r                                    common.Recipe
		title, totalTime, tags, ings, instrs sql.NullString
	)
	if err := row.Scan(&r.ID, &title, &totalTime, &tags, &ings, &instrs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}
	r.Title = title.String
	r.TotalTime = totalTime.String

	// 欄位無法解析時保留 nil，交由排序流程略過
	if tags.Valid {
		if err := json.Unmarshal([]byte(tags.String), &r.SearchTags); err != nil {
			common.LogWarn("Invalid search tags column",
				zap.String("recipe_id", r.ID),
				zap.Error(err),
			)
			r.SearchTags = nil
		}
	}
	if ings.Valid && ings.String != "" {
		if err := json.Unmarshal([]byte(ings.String), &r.Ingredients); err != nil {
			common.LogWarn("Invalid ingredients column", zap.String("recipe_id", r.ID), zap.Error(err))
		}
	}
	if instrs.Valid && instrs.String != "" {
		if err := json.Unmarshal([]byte(instrs.String), &r.Instructions); err != nil {
			common.LogWarn("Invalid instructions column", zap.String("recipe_id", r.ID), zap.Error(err))
		}
	}
	return &r, nil
}

// Upsert 寫入或取代食譜及其標籤索引
func (s *SQLiteStore) Upsert(ctx context.Context, r common.Recipe) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := upsertTx(ctx, tx, r); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertTx(ctx context.Context, tx *sql.Tx, r common.Recipe) error {
	var tags interface{}
	if r.SearchTags != nil {
		data, err := json.Marshal(r.SearchTags)
		if err != nil {
			return fmt.Errorf("encoding tags: %w", err)
		}
		tags = string(data)
	}
	ings, err := json.Marshal(nonNil(r.Ingredients))
	if err != nil {
		return fmt.Errorf("encoding ingredients: %w", err)
	}
	instrs, err := json.Marshal(nonNilStrings(r.Instructions))
	if err != nil {
		return fmt.Errorf("encoding instructions: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO recipes (id, title, total_time, search_tags, ingredients, instructions)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			total_time = excluded.total_time,
			search_tags = excluded.search_tags,
			ingredients = excluded.ingredients,
			instructions = excluded.instructions`,
		r.ID, r.Title, r.TotalTime, tags, string(ings), string(instrs))
	if err != nil {
		return fmt.Errorf("upserting recipe %s: %w", r.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("clearing tags for %s: %w", r.ID, err)
	}
	for _, tag := range r.SearchTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO recipe_tags (recipe_id, tag_lower) VALUES (?, ?)`, r.ID, tag); err != nil {
			return fmt.Errorf("indexing tag %q for %s: %w", tag, r.ID, err)
		}
	}
	return nil
}

func nonNil(in []common.RecipeIngredient) []common.RecipeIngredient {
	if in == nil {
		return []common.RecipeIngredient{}
	}
	return in
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
