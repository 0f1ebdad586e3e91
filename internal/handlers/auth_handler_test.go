package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clinidesk/clinic-scheduler/internal/config"
	"github.com/clinidesk/clinic-scheduler/internal/models"
)

func registerRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Clinic{}, &models.Doctor{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := NewAuthHandler(db, &config.Config{JWTSecret: "test-secret"})
	r := gin.New()
	r.POST("/auth/register", h.Register)
	return r, db
}

func postRegister(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRejectedEmailLeavesNothingBehind(t *testing.T) {
	r, db := registerRouter(t)

	// .invalid never resolves, so the domain check rejects the signup
	w := postRegister(r, `{
		"clinic_name": "Cabinet Fournier",
		"clinic_slug": "cabinet-fournier",
		"name": "Dr. Fournier",
		"email": "fournier@nonexistent.invalid",
		"password": "secret-1"
	}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}

	var clinics, doctors int64
	db.Model(&models.Clinic{}).Count(&clinics)
	db.Model(&models.Doctor{}).Count(&doctors)
	if clinics != 0 || doctors != 0 {
		t.Fatalf("rejected signup wrote rows: %d clinics, %d doctors", clinics, doctors)
	}
}

func TestRegisterDuplicateSlugLeavesNothingBehind(t *testing.T) {
	r, db := registerRouter(t)

	if err := db.Create(&models.Clinic{Name: "Cabinet Fournier", Slug: "cabinet-fournier"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := postRegister(r, `{
		"clinic_name": "Another Fournier",
		"clinic_slug": "Cabinet-Fournier",
		"name": "Dr. Fournier",
		"email": "fournier@nonexistent.invalid",
		"password": "secret-1"
	}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}

	var clinics int64
	db.Model(&models.Clinic{}).Count(&clinics)
	if clinics != 1 {
		t.Fatalf("expected only the seeded clinic, got %d", clinics)
	}
}
