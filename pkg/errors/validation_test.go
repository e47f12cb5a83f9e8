package errors

import (
	"strings"
	"testing"
)

func TestValidateTag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"label", "Person", false},
		{"rel type", "FRIEND_OF", false},
		{"with digits", "Node2", false},

		{"empty", "", true},
		{"leading digit", "2Node", true},
		{"space", "Friend Of", true},
		{"dash", "friend-of", true},
		{"too long", "A" + strings.Repeat("b", 200), true},
		{"control char", "A\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTag("label", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateTag(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateBatchSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{1, false},
		{10000, false},
		{0, true},
		{-5, true},
	}
	for _, tt := range tests {
		if err := ValidateBatchSize(tt.size); (err != nil) != tt.wantErr {
			t.Errorf("ValidateBatchSize(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/graph.json", false},
		{"absolute", "/tmp/graph.svg", false},
		{"dots in name", "graph..json", false},

		{"empty", "", true},
		{"traversal", "out/../../etc/passwd", true},
		{"null byte", "out\x00.json", true},
		{"too long", strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"redis://localhost:6379", false},
		{"rediss://cache:6380/0", false},
		{"mongodb://localhost:27017", false},
		{"", true},
		{"http://localhost", true},
	}
	for _, tt := range tests {
		err := ValidateURL(tt.input, "redis", "rediss", "mongodb")
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
