package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("hunter2longenough")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2longenough" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := Compare(hash, "hunter2longenough"); err != nil {
		t.Fatalf("compare with correct password: %v", err)
	}
	if err := Compare(hash, "wrong-password"); err == nil {
		t.Fatal("compare must fail for a wrong password")
	}
}
