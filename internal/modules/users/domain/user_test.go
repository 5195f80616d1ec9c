package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"":        RoleViewer,
		"viewer":  RoleViewer,
		" Admin ": RoleAdmin,
		"SALES":   RoleSales,
	}
	for input, expected := range cases {
		got, ok := ParseRole(input)
		if !ok || got != expected {
			t.Fatalf("ParseRole(%q) expected %q got %q (ok=%v)", input, expected, got, ok)
		}
	}
	if _, ok := ParseRole("owner"); ok {
		t.Fatal("expected unknown role to be rejected")
	}
}

func TestNewUserNormalized(t *testing.T) {
	u := NewUser{Name: " Sam Carter ", Email: " Sam@Example.COM ", Role: "Sales"}.Normalized()
	if u.Name != "Sam Carter" || u.Email != "sam@example.com" || u.Role != RoleSales {
		t.Fatalf("unexpected normalized user: %+v", u)
	}

	unknown := NewUser{Name: "x", Email: "x@example.com", Role: "owner"}.Normalized()
	if unknown.Role != "owner" {
		t.Fatalf("unknown roles are left for validation, got %q", unknown.Role)
	}
}
