package domain

import (
	"errors"
	"testing"
	"time"
)

func TestLinkTokenConstants(t *testing.T) {
	if LinkTokenTTL != 1800*time.Second {
		t.Errorf("LinkTokenTTL = %v, want 1800s", LinkTokenTTL)
	}
	if SweepInterval != 600*time.Second {
		t.Errorf("SweepInterval = %v, want 600s", SweepInterval)
	}
	if LinkTokenLength != 47 {
		t.Errorf("LinkTokenLength = %d, want 47", LinkTokenLength)
	}
}

func TestParseChatUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ChatUserID
		wantErr bool
	}{
		{"simple", "42", 42, false},
		{"snowflake", "123456789012345678", 123456789012345678, false},
		{"surrounding space", " 7 ", 7, false},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"not numeric", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChatUserID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChatUserID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
			if got != tt.want {
				t.Errorf("ParseChatUserID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestChatUserID_String(t *testing.T) {
	if got := ChatUserID(42).String(); got != "42" {
		t.Errorf("String() = %q, want %q", got, "42")
	}
}

func TestLinkEntry_ExpiredAt(t *testing.T) {
	deadline := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	e := LinkEntry{Owner: 42, ExpiresAt: deadline}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before deadline", deadline.Add(-time.Second), false},
		{"at deadline", deadline, false},
		{"after deadline", deadline.Add(time.Nanosecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ExpiredAt(tt.now); got != tt.want {
				t.Errorf("ExpiredAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinkToken_Entry(t *testing.T) {
	exp := time.Now().Add(LinkTokenTTL)
	tok := &LinkToken{Value: "lnk_secret", Owner: 9, ExpiresAt: exp}

	e := tok.Entry()
	if e.Owner != 9 || !e.ExpiresAt.Equal(exp) {
		t.Errorf("Entry() = %+v", e)
	}
}

func TestValidateLinkTokenFormat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid token", "lnk_ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopq", true},
		{"valid url alphabet", "lnk_0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-_abcde", true},
		{"wrong prefix", "lnx_ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopq", false},
		{"too short", "lnk_ABC", false},
		{"padding not allowed", "lnk_ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnop=", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateLinkTokenFormat(tt.value); got != tt.valid {
				t.Errorf("ValidateLinkTokenFormat(%q) = %v, want %v", tt.value, got, tt.valid)
			}
		})
	}
}

func TestNormalizeHubUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    HubUserID
		wantErr error
	}{
		{"plain", "user-17", "user-17", nil},
		{"trimmed", "  user-17\t", "user-17", nil},
		{"empty", "   ", "", ErrMissingArgument},
		{"too long", string(make([]byte, 200)), "", ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHubUserID(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NormalizeHubUserID() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeHubUserID() = %q, want %q", got, tt.want)
			}
		})
	}
}
