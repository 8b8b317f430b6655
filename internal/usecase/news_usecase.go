package usecase

import (
	"context"
	"fmt"
	"html/template"
	"math"
	"strings"

	"vuidokan-site/internal/domain"

	"github.com/microcosm-cc/bluemonday"
)

// WordsPerMinute is the reading speed used for the reading-time badge
const WordsPerMinute = 200

// CategoryAll selects every article on the news page
const CategoryAll = "all"

type newsUsecase struct {
	repo   domain.NewsRepository
	policy *bluemonday.Policy
}

func NewNewsUsecase(repo domain.NewsRepository) domain.NewsUsecase {
	return &newsUsecase{
		repo:   repo,
		policy: bluemonday.UGCPolicy(),
	}
}

// ListNews returns the news page for a category. The newest featured article
// is pulled out of the list; an unknown category yields an empty list.
func (u *newsUsecase) ListNews(ctx context.Context, category string) (*domain.NewsPage, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = CategoryAll
	}

	categories, err := u.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	articles, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	labels := categoryLabels(categories)
	page := &domain.NewsPage{Category: category, Categories: categories}
	for _, a := range articles {
		if category != CategoryAll && a.Category != category {
			continue
		}
		view := u.view(a, labels)
		if a.Featured && page.Featured == nil {
			page.Featured = &view
			continue
		}
		page.Articles = append(page.Articles, view)
	}

	return page, nil
}

func (u *newsUsecase) GetArticle(ctx context.Context, id string) (*domain.ArticleView, error) {
	article, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrArticleNotFound, id)
	}

	categories, err := u.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	view := u.view(*article, categoryLabels(categories))
	return &view, nil
}

func (u *newsUsecase) view(a domain.Article, labels map[string]string) domain.ArticleView {
	return domain.ArticleView{
		Article:       a,
		CategoryLabel: labels[a.Category],
		ReadingTime:   ReadingTime(a.Summary + " " + a.Body),
		SafeBody:      template.HTML(u.policy.Sanitize(a.Body)),
	}
}

// ReadingTime is the number of minutes needed at WordsPerMinute, rounded up
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

func categoryLabels(categories []domain.Category) map[string]string {
	labels := make(map[string]string, len(categories))
	for _, c := range categories {
		labels[c.Slug] = c.Label
	}
	return labels
}
