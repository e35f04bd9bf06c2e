package util

import (
	"testing"
	"time"

	"vidyasetu_backend/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "teacher@example.com",
		Role:      model.Teacher,
	}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.Teacher || claims.Email != "teacher@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}
	token, err := GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT(token, "another-secret-another-secret!!"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseJWTRejectsExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}}
	token, err := GenerateJWT(user, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestIsOwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name    string
		claims  *Claims
		ownerID uint
		want    bool
	}{
		{"owner", &Claims{UserID: 5, Role: model.Teacher}, 5, true},
		{"admin on foreign record", &Claims{UserID: 1, Role: model.Admin}, 5, true},
		{"other teacher", &Claims{UserID: 2, Role: model.Teacher}, 5, false},
		{"student", &Claims{UserID: 2, Role: model.Student}, 5, false},
		{"nil claims", nil, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOwnerOrAdmin(tc.claims, tc.ownerID); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 0, 1, 10},
		{-5, -1, 1, 10},
		{3, 500, 3, 100},
	}

	for _, tc := range tests {
		page, limit := NormalizePaging(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Errorf("NormalizePaging(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, 2, 10)
	if p.Pages != 3 {
		t.Errorf("pages = %d, want 3", p.Pages)
	}
	if p.Total != 25 || p.Page != 2 || p.Limit != 10 {
		t.Errorf("pagination = %+v", p)
	}

	if NewPagination(20, 1, 10).Pages != 2 {
		t.Error("exact multiple should not round up")
	}
}
