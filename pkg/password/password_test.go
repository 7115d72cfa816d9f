package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatal("hash must not equal plaintext")
	}

	if !Verify(hashed, "s3cret-pass") {
		t.Fatal("expected verification to succeed")
	}
	if Verify(hashed, "wrong-pass") {
		t.Fatal("expected verification to fail for wrong password")
	}
}
