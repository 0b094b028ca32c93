package jwtutil

import "testing"

func TestSignAndParse(t *testing.T) {
	s := &Signer{Secret: []byte("test-secret"), Issuer: "carmarket", ExpMin: 5}
	token, err := s.Sign(42, "alice", "regular")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Role != "regular" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "carmarket" {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := &Signer{Secret: []byte("secret-a"), Issuer: "carmarket", ExpMin: 5}
	b := &Signer{Secret: []byte("secret-b"), Issuer: "carmarket", ExpMin: 5}
	token, err := a.Sign(1, "alice", "regular")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := b.Parse(token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	s := &Signer{Secret: []byte("test-secret"), Issuer: "carmarket", ExpMin: 5}
	if _, err := s.Parse("not-a-token"); err == nil {
		t.Fatal("expected parse to fail")
	}
}
