// internal/service/catalog.go
package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/repository"
)

// CatalogService exposes the stack and sector lookup tables.
type CatalogService struct {
	repo repository.CatalogRepositoryIface
}

func NewCatalogService(repo repository.CatalogRepositoryIface) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Sectors(ctx context.Context) ([]model.Sector, error) {
	return s.repo.ListSectors(ctx)
}

func (s *CatalogService) Stacks(ctx context.Context) ([]model.Stack, error) {
	return s.repo.ListStacks(ctx)
}

// SeedSectors inserts the fixed sector list. Running it twice is harmless.
func (s *CatalogService) SeedSectors(ctx context.Context) (int64, error) {
	n, err := s.repo.SeedSectors(ctx, model.Sectors)
	if err != nil {
		return 0, fmt.Errorf("seeding sectors: %w", err)
	}
	return n, nil
}

// SeedStacks reads one stack name per line from r and inserts the new
// ones. Blank lines and lines starting with '#' are skipped.
func (s *CatalogService) SeedStacks(ctx context.Context, r io.Reader) (int64, error) {
	names, err := ReadStackNames(r)
	if err != nil {
		return 0, err
	}

	n, err := s.repo.SeedStacks(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("seeding stacks: %w", err)
	}
	return n, nil
}

// ReadStackNames parses a language list, one name per line, dropping
// duplicates while keeping the first occurrence's order.
func ReadStackNames(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stack names: %w", err)
	}

	return names, nil
}
