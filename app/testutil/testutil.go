package testutil

import (
	"testing"

	jwtutil "carmarket/app/jwt"
	"carmarket/app/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens a private in-memory database with the schema migrated.
func OpenTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := "file:" + name + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Car{}, &models.Favorite{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// Signer returns a jwt signer with a fixed test secret.
func Signer() *jwtutil.Signer {
	return &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "carmarket-test", ExpMin: 5}
}

// Token mints a bearer token for the given identity.
func Token(t *testing.T, userID uint, username, role string) string {
	t.Helper()
	token, err := Signer().Sign(userID, username, role)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
