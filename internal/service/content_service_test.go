package service

import (
	"errors"
	"testing"

	"vidyasetu_backend/internal/config"
	"vidyasetu_backend/internal/model"
	"vidyasetu_backend/internal/repository"
	"vidyasetu_backend/internal/util"

	"gorm.io/gorm"
)

func newContentService(t *testing.T) (*ContentService, *gorm.DB) {
	db := setupTestDB(t)
	cfg := &config.Config{
		Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		Upload:  config.UploadConfig{MaxFileSize: config.DefaultMaxFileSize},
	}
	repo := repository.NewContentRepository(db)
	return NewContentService(repo, NewStorageService(cfg), cfg), db
}

func strPtr(v string) *string { return &v }

func TestGetContentBumpsViews(t *testing.T) {
	svc, db := newContentService(t)
	content := seedContent(t, db, true)

	got, err := svc.GetContent(content.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views = %d, want 1", got.Views)
	}

	if got, err = svc.GetContent(content.ID); err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("views = %d, want 2", got.Views)
	}
}

func TestUpdateContentPartialPatch(t *testing.T) {
	svc, db := newContentService(t)
	content := seedContent(t, db, true)
	owner := &util.Claims{UserID: content.CreatedByID, Role: model.Teacher}

	updated, err := svc.UpdateContent(content.ID, owner, ContentUpdateRequest{
		Title: strPtr("Photosynthesis, revised"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Photosynthesis, revised" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Description != content.Description || updated.Subject != content.Subject {
		t.Error("patch touched fields it was not given")
	}
}

func TestContentOwnershipEnforced(t *testing.T) {
	svc, db := newContentService(t)
	content := seedContent(t, db, true)
	stranger := &util.Claims{UserID: content.CreatedByID + 1, Role: model.Teacher}
	admin := &util.Claims{UserID: content.CreatedByID + 1, Role: model.Admin}

	if _, err := svc.UpdateContent(content.ID, stranger, ContentUpdateRequest{Title: strPtr("x")}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("update by stranger: got %v, want ErrPermissionDenied", err)
	}
	if err := svc.DeleteContent(content.ID, stranger); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("delete by stranger: got %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.TogglePublish(content.ID, stranger); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("publish by stranger: got %v, want ErrPermissionDenied", err)
	}

	if _, err := svc.TogglePublish(content.ID, admin); err != nil {
		t.Errorf("publish by admin: unexpected error %v", err)
	}
}

func TestTogglePublishFlips(t *testing.T) {
	svc, db := newContentService(t)
	content := seedContent(t, db, false)
	owner := &util.Claims{UserID: content.CreatedByID, Role: model.Teacher}

	published, err := svc.TogglePublish(content.ID, owner)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !published.IsPublished {
		t.Error("expected published after first toggle")
	}

	unpublished, err := svc.TogglePublish(content.ID, owner)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if unpublished.IsPublished {
		t.Error("expected unpublished after second toggle")
	}
}

func TestToggleLikeReturnsCount(t *testing.T) {
	svc, db := newContentService(t)
	content := seedContent(t, db, true)

	liked, count, err := svc.ToggleLike(content.ID, 7)
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !liked || count != 1 {
		t.Errorf("liked=%v count=%d, want true 1", liked, count)
	}

	liked, count, err = svc.ToggleLike(content.ID, 7)
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if liked || count != 0 {
		t.Errorf("liked=%v count=%d, want false 0", liked, count)
	}
}

func TestContentNotFoundErrors(t *testing.T) {
	svc, _ := newContentService(t)
	claims := &util.Claims{UserID: 1, Role: model.Admin}

	if _, err := svc.GetContent(999); !errors.Is(err, util.ErrContentNotFound) {
		t.Errorf("get: got %v", err)
	}
	if _, err := svc.UpdateContent(999, claims, ContentUpdateRequest{}); !errors.Is(err, util.ErrContentNotFound) {
		t.Errorf("update: got %v", err)
	}
	if err := svc.IncrementDownload(999); !errors.Is(err, util.ErrContentNotFound) {
		t.Errorf("download: got %v", err)
	}
}
