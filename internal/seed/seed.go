// Package seed holds the datasets the `seed` command loads into a fresh
// database. "test" is small and fixed so tests can assert exact values;
// "development" is for local use.
package seed

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var files embed.FS

type Topic struct {
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type User struct {
	Username  string `yaml:"username"`
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar_url"`
}

type Article struct {
	Title         string    `yaml:"title"`
	Topic         string    `yaml:"topic"`
	Author        string    `yaml:"author"`
	Body          string    `yaml:"body"`
	CreatedAt     time.Time `yaml:"created_at"`
	Votes         int       `yaml:"votes"`
	ArticleImgURL string    `yaml:"article_img_url"`
}

// Comment references its article by 1-based position in Dataset.Articles,
// which is also the id the article receives in a freshly created table.
type Comment struct {
	ArticleID int64     `yaml:"article_id"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	Votes     int       `yaml:"votes"`
	CreatedAt time.Time `yaml:"created_at"`
}

type Dataset struct {
	Topics   []Topic   `yaml:"topics"`
	Users    []User    `yaml:"users"`
	Articles []Article `yaml:"articles"`
	Comments []Comment `yaml:"comments"`
}

// Names lists the embedded datasets.
var Names = []string{"test", "development"}

// Load parses the named embedded dataset.
func Load(name string) (*Dataset, error) {
	data, err := files.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("seed: unknown dataset %q", name)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("seed: parsing dataset %q: %w", name, err)
	}

	for i, c := range ds.Comments {
		if c.ArticleID < 1 || int(c.ArticleID) > len(ds.Articles) {
			return nil, fmt.Errorf("seed: dataset %q: comment %d references article %d", name, i+1, c.ArticleID)
		}
	}
	return &ds, nil
}
