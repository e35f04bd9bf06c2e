package repository

import (
	"fmt"
	"strings"
	"testing"

	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func mustCreateContent(t *testing.T, repo *ContentRepository, c model.Content) *model.Content {
	t.Helper()
	if c.Title == "" {
		c.Title = "Untitled"
	}
	if c.Subject == "" {
		c.Subject = model.SubjectMathematics
	}
	if c.Grade == "" {
		c.Grade = "6"
	}
	if c.ContentType == "" {
		c.ContentType = model.ContentText
	}
	if c.CreatedByID == 0 {
		c.CreatedByID = 1
	}
	if err := repo.Create(&c); err != nil {
		t.Fatalf("failed to create content: %v", err)
	}
	return &c
}

func TestToggleLikeFlipsAndCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	content := mustCreateContent(t, repo, model.Content{IsPublished: true})

	liked, err := repo.ToggleLike(content.ID, 7)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !liked {
		t.Error("expected liked after first toggle")
	}

	if liked, _ = repo.ToggleLike(content.ID, 8); !liked {
		t.Error("expected liked for second user")
	}

	count, err := repo.LikeCount(content.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("likes = %d, want 2", count)
	}

	liked, err = repo.ToggleLike(content.ID, 7)
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if liked {
		t.Error("expected unliked after second toggle by same user")
	}

	if count, _ = repo.LikeCount(content.ID); count != 1 {
		t.Errorf("likes = %d, want 1 after unlike", count)
	}
}

func TestIncrementCountersPersist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	content := mustCreateContent(t, repo, model.Content{IsPublished: true})

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(content.ID); err != nil {
			t.Fatalf("increment views failed: %v", err)
		}
	}
	if err := repo.IncrementDownloads(content.ID); err != nil {
		t.Fatalf("increment downloads failed: %v", err)
	}

	reloaded, err := repo.FindByID(content.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Views != 3 {
		t.Errorf("views = %d, want 3", reloaded.Views)
	}
	if reloaded.Downloads != 1 {
		t.Errorf("downloads = %d, want 1", reloaded.Downloads)
	}
}

func TestListPublishedFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)

	mustCreateContent(t, repo, model.Content{Title: "Algebra intro", Subject: model.SubjectMathematics, Grade: "6", IsPublished: true})
	mustCreateContent(t, repo, model.Content{Title: "Cell structure", Subject: model.SubjectScience, Grade: "6", IsPublished: true})
	mustCreateContent(t, repo, model.Content{Title: "Algebra draft", Subject: model.SubjectMathematics, Grade: "6"}) // unpublished

	items, total, err := repo.ListPublished(ContentFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("published listing = %d items (total %d), want 2", len(items), total)
	}

	items, total, err = repo.ListPublished(ContentFilter{Subject: model.SubjectScience, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if total != 1 || items[0].Title != "Cell structure" {
		t.Errorf("subject filter returned %+v", items)
	}

	_, total, err = repo.ListPublished(ContentFilter{Search: "algebra", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Errorf("search matched %d published items, want 1", total)
	}
}

func TestListPublishedToleratesOutOfRangePaging(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	mustCreateContent(t, repo, model.Content{IsPublished: true})

	items, _, err := repo.ListPublished(ContentFilter{Page: -3, Limit: 1000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("listing with out-of-range paging = %d items, want 1", len(items))
	}
}
