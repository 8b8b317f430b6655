package domain

import (
	"context"
	"errors"
	"html/template"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")

type Article struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Category    string    `yaml:"category"`
	Summary     string    `yaml:"summary"`
	Body        string    `yaml:"body"`
	Image       string    `yaml:"image"`
	Featured    bool      `yaml:"featured"`
	PublishedAt time.Time `yaml:"published_at"`
}

type Category struct {
	Slug  string `yaml:"slug"`
	Label string `yaml:"label"`
}

// ArticleView is an article prepared for the templates
type ArticleView struct {
	Article
	CategoryLabel string
	ReadingTime   int
	SafeBody      template.HTML
}

type NewsPage struct {
	Category   string
	Categories []Category
	Featured   *ArticleView
	Articles   []ArticleView
}

type NewsRepository interface {
	List(ctx context.Context) ([]Article, error)
	GetByID(ctx context.Context, id string) (*Article, error)
	Categories(ctx context.Context) ([]Category, error)
}

type NewsUsecase interface {
	ListNews(ctx context.Context, category string) (*NewsPage, error)
	GetArticle(ctx context.Context, id string) (*ArticleView, error)
}
