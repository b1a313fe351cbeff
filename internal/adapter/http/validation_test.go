package http

import (
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		StudentID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	if err := cv.Validate(P{StudentID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                      // empty
		strings.Repeat("A", 32), // uppercase
		"deadbeef",              // too short
		strings.Repeat("g", 32), // non-hex char
		strings.Repeat("a", 31), // 31 chars
		strings.Repeat("a", 33), // 33 chars
	} {
		err := cv.Validate(P{StudentID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "StudentID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestAppIDValidation(t *testing.T) {
	type P struct {
		ApplicationID string `validate:"appid"`
	}
	cv := NewValidator()

	for _, s := range []string{"APP2026A1B2C3D4", "APP12345678", "APP" + strings.Repeat("F", 25)} {
		if err := cv.Validate(P{ApplicationID: s}); err != nil {
			t.Fatalf("expected valid appid %q, got err: %v", s, err)
		}
	}
	for _, s := range []string{
		"",
		"APP",                          // no suffix
		"APP1234567",                   // suffix too short
		"app2026A1B2C3D4",              // lowercase prefix
		"APP2026a1b2c3d4",              // lowercase suffix
		"LN-123456789",                 // wrong prefix
		"APP" + strings.Repeat("A", 26), // suffix too long
	} {
		err := cv.Validate(P{ApplicationID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "ApplicationID", "APP followed by") {
			t.Fatalf("expected appid message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestIFSCValidation(t *testing.T) {
	type P struct {
		IFSC string `validate:"ifsc"`
	}
	cv := NewValidator()

	for _, s := range []string{"SBIN0001234", "HDFC0ABCD12"} {
		if err := cv.Validate(P{IFSC: s}); err != nil {
			t.Fatalf("expected valid ifsc %q, got err: %v", s, err)
		}
	}
	for _, s := range []string{
		"",
		"SBIN1001234", // fifth char must be 0
		"sbin0001234", // lowercase
		"SBIN000123",  // too short
		"SBIN00012345",
		"SB1N0001234", // digit in bank code
	} {
		err := cv.Validate(P{IFSC: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "IFSC", "valid IFSC code") {
			t.Fatalf("expected ifsc message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}
