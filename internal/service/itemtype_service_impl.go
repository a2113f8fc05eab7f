package service

import (
	"context"

	"github.com/mpoulsen/strata/internal/domain"
	"github.com/mpoulsen/strata/internal/repository"
)

type itemTypeService struct {
	types repository.ItemTypeRepo
}

// NewItemTypeService exposes the item-type catalog.
func NewItemTypeService(types repository.ItemTypeRepo) ItemTypeService {
	return &itemTypeService{types: types}
}

func (s *itemTypeService) List(ctx context.Context) ([]*domain.ItemType, error) {
	return s.types.List(ctx)
}

// DefaultLevelMap picks the first catalog entry per level, the fallback
// mapping for imports when the caller supplies none.
func (s *itemTypeService) DefaultLevelMap(ctx context.Context) (map[int]string, error) {
	all, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}
	byLevel := make(map[int]string, 5)
	for _, t := range all {
		if _, ok := byLevel[t.Level]; !ok {
			byLevel[t.Level] = t.ID
		}
	}
	return byLevel, nil
}
