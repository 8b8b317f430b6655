package content

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"vuidokan-site/internal/domain"

	"gopkg.in/yaml.v3"
)

type catalog struct {
	Categories []domain.Category `yaml:"categories"`
	Articles   []domain.Article  `yaml:"articles"`
}

type newsRepo struct {
	categories []domain.Category
	articles   []domain.Article
	byID       map[string]int
}

// NewNewsRepository loads the news catalog from a YAML file. Articles are
// kept newest first.
func NewNewsRepository(fsys fs.FS, path string) (domain.NewsRepository, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read news catalog: %w", err)
	}

	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse news catalog: %w", err)
	}

	known := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		known[cat.Slug] = true
	}

	sort.SliceStable(c.Articles, func(i, j int) bool {
		return c.Articles[i].PublishedAt.After(c.Articles[j].PublishedAt)
	})

	byID := make(map[string]int, len(c.Articles))
	for i, a := range c.Articles {
		if a.ID == "" {
			return nil, fmt.Errorf("news catalog: article %d has no id", i)
		}
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("news catalog: duplicate article id %q", a.ID)
		}
		if !known[a.Category] {
			return nil, fmt.Errorf("news catalog: article %q has unknown category %q", a.ID, a.Category)
		}
		byID[a.ID] = i
	}

	return &newsRepo{categories: c.Categories, articles: c.Articles, byID: byID}, nil
}

func (r *newsRepo) List(ctx context.Context) ([]domain.Article, error) {
	out := make([]domain.Article, len(r.articles))
	copy(out, r.articles)
	return out, nil
}

func (r *newsRepo) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil // Not found is not an error, just return nil
	}
	a := r.articles[i]
	return &a, nil
}

func (r *newsRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}
