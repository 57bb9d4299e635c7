package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", 7, "admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret", 1, "admin", "admin")

	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Error("expected validation with the wrong secret to fail")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("secret", "not.a.token"); err == nil {
		t.Error("expected garbage token to fail")
	}
}

func TestTokenIDsUnique(t *testing.T) {
	t1, _ := GenerateToken("secret", 1, "admin", "admin")
	t2, _ := GenerateToken("secret", 1, "admin", "admin")

	c1, _ := ValidateToken("secret", t1)
	c2, _ := ValidateToken("secret", t2)
	if c1.ID == c2.ID {
		t.Error("expected distinct token ids")
	}
}
