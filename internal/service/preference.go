// internal/service/preference.go
package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/repository"
	"github.com/google/uuid"
)

type PreferenceService struct {
	repo    repository.PreferenceRepositoryIface
	catalog repository.CatalogRepositoryIface
}

func NewPreferenceService(repo repository.PreferenceRepositoryIface, catalog repository.CatalogRepositoryIface) *PreferenceService {
	return &PreferenceService{repo: repo, catalog: catalog}
}

func (s *PreferenceService) Get(ctx context.Context, userID uuid.UUID) (*repository.Preferences, error) {
	prefs, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}
	return prefs, nil
}

// Replace stores the given sectors and stacks as the user's preferences.
// Ids that do not name an existing sector or stack are rejected.
func (s *PreferenceService) Replace(ctx context.Context, userID uuid.UUID, sectorIDs, stackIDs []uint) error {
	if userID == uuid.Nil {
		return domain.ErrUnauthorized
	}

	if len(sectorIDs) > 0 {
		sectors, err := s.catalog.ListSectors(ctx)
		if err != nil {
			return err
		}
		if !allKnown(sectorIDs, sectorIDSet(sectors)) {
			return fieldError("sectors", "Choose valid sectors.", domain.ErrSectorNotFound)
		}
	}

	if len(stackIDs) > 0 {
		stacks, err := s.catalog.ListStacks(ctx)
		if err != nil {
			return err
		}
		if !allKnown(stackIDs, stackIDSet(stacks)) {
			return fieldError("stacks", "Choose valid stacks.", domain.ErrStackNotFound)
		}
	}

	if err := s.repo.Replace(ctx, userID, sectorIDs, stackIDs); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

func sectorIDSet(sectors []model.Sector) map[uint]struct{} {
	set := make(map[uint]struct{}, len(sectors))
	for _, s := range sectors {
		set[s.ID] = struct{}{}
	}
	return set
}

func stackIDSet(stacks []model.Stack) map[uint]struct{} {
	set := make(map[uint]struct{}, len(stacks))
	for _, s := range stacks {
		set[s.ID] = struct{}{}
	}
	return set
}

func allKnown(ids []uint, known map[uint]struct{}) bool {
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return false
		}
	}
	return true
}
