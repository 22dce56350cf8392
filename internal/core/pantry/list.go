package pantry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"chef-express/internal/pkg/common"

	"go.uber.org/zap"
)

// Sentinel errors.
var (
	ErrDuplicate = errors.New("ingredient already in pantry")
	ErrNotFound  = errors.New("ingredient not found")
	ErrNotLoaded = errors.New("pantry not loaded yet")
)

// List 使用者的食材清單。每次異動後寫回 Store，但須先完成 Load。
type List struct {
	mu     sync.Mutex
	store  Store
	items  []common.Ingredient
	loaded bool
	newID  func() string
}

// NewList 建立清單
func NewList(store Store) *List {
	return &List{
		store: store,
		items: []common.Ingredient{},
		newID: common.GenerateUUID,
	}
}

// Load 從 Store 讀取清單。讀取失敗時清單保持空白，但仍標記為已載入。
func (l *List) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.store.Load(ctx)
	l.loaded = true
	if err != nil {
		common.LogError("Failed to load pantry", zap.Error(err))
		return err
	}
	l.items = items
	return nil
}

// Loaded 是否已完成載入
func (l *List) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Add 新增食材，名稱不分大小寫重複時回傳 ErrDuplicate
func (l *List) Add(ctx context.Context, name, relativeQuantity string) (common.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.Ingredient{}, common.NewValidationError("ingredient name is required")
	}
	relativeQuantity = strings.TrimSpace(relativeQuantity)
	if relativeQuantity == "" {
		relativeQuantity = common.DefaultRelativeQuantity
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return common.Ingredient{}, ErrNotLoaded
	}
	for _, ing := range l.items {
		if strings.EqualFold(ing.Name, name) {
			return common.Ingredient{}, fmt.Errorf("%w: %s", ErrDuplicate, ing.Name)
		}
	}

	ing := common.Ingredient{
		ID:               l.newID(),
		Name:             name,
		RelativeQuantity: relativeQuantity,
	}

	next := append(append(make([]common.Ingredient, 0, len(l.items)+1), l.items...), ing)
	if err := l.commit(ctx, next); err != nil {
		return common.Ingredient{}, err
	}
	return ing, nil
}

// Remove 依 ID 移除食材
func (l *List) Remove(ctx context.Context, id string) (common.Ingredient, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return common.Ingredient{}, ErrNotLoaded
	}

	next := make([]common.Ingredient, 0, len(l.items))
	var removed *common.Ingredient
	for i := range l.items {
		if removed == nil && l.items[i].ID == id {
			removed = &l.items[i]
			continue
		}
		next = append(next, l.items[i])
	}
	if removed == nil {
		return common.Ingredient{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	out := *removed

	if err := l.commit(ctx, next); err != nil {
		return common.Ingredient{}, err
	}
	return out, nil
}

// Clear 清空清單
func (l *List) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return ErrNotLoaded
	}
	return l.commit(ctx, []common.Ingredient{})
}

// Items 回傳清單副本
func (l *List) Items() []common.Ingredient {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]common.Ingredient, len(l.items))
	copy(out, l.items)
	return out
}

// Names 回傳所有食材名稱
func (l *List) Names() []string {
	return common.IngredientNames(l.Items())
}

// Len 食材數量
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// commit 寫回 Store，成功後才更新記憶體中的清單。呼叫前需持有鎖。
func (l *List) commit(ctx context.Context, next []common.Ingredient) error {
	if err := l.store.Save(ctx, next); err != nil {
		common.LogError("Failed to save pantry", zap.Error(err))
		return err
	}
	l.items = next
	return nil
}
