package model

import "testing"

func TestUserZeroValue(t *testing.T) {
	var u User
	if u.ID != "" || u.Email != "" || !u.CreatedAt.IsZero() {
		t.Fatalf("unexpected zero value: %+v", u)
	}
}

func TestUploadCarriesOriginalName(t *testing.T) {
	up := Upload{Field: "file", Path: "/tmp/file-1.png", OriginalName: "avatar.png"}
	if up.OriginalName != "avatar.png" {
		t.Fatalf("unexpected original name %q", up.OriginalName)
	}
}
