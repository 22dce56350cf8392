package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"chef-express/internal/pkg/common"

	"go.uber.org/zap"
)

// documentID 接受字串或 {"$oid": "..."} 形式的 _id
type documentID string

func (d *documentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var oid struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(data, &oid); err != nil {
			return err
		}
		*d = documentID(oid.OID)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = documentID(s)
	return nil
}

// document 食譜匯出檔的欄位格式
type document struct {
	MongoID     documentID `json:"_id"`
	ID          documentID `json:"id"`
	Title       string     `json:"titulo"`
	TotalTime   string     `json:"tiempo_total"`
	SearchTags  []string   `json:"tags_busqueda"`
	Ingredients []struct {
		Quantity string `json:"cantidad"`
		Name     string `json:"nombre"`
	} `json:"ingredientes"`
	Instructions []string `json:"instrucciones"`
}

func (d document) toRecipe() common.Recipe {
	id := string(d.MongoID)
	if id == "" {
		id = string(d.ID)
	}
	if id == "" {
		id = common.GenerateUUID()
	}

	r := common.Recipe{
		ID:           strings.TrimSpace(id),
		Title:        d.Title,
		TotalTime:    d.TotalTime,
		SearchTags:   d.SearchTags,
		Instructions: d.Instructions,
	}
	for _, ing := range d.Ingredients {
		r.Ingredients = append(r.Ingredients, common.RecipeIngredient{Quantity: ing.Quantity, Name: ing.Name})
	}
	return r
}

// Import 從 JSON 陣列匯入食譜，用於初始化資料庫；回傳寫入筆數
func (s *SQLiteStore) Import(ctx context.Context, r io.Reader) (int, error) {
	var docs []document
	if err := common.DecodeJSON(r, &docs); err != nil {
		return 0, fmt.Errorf("decoding recipes: %w", err)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, doc := range docs {
		if err := upsertTx(ctx, tx, doc.toRecipe()); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	common.LogInfo("Recipes imported", zap.Int("count", len(docs)))
	return len(docs), nil
}
