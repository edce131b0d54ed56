package errors

import (
	"testing"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "core", false},
		{"valid dotted group", "org.apache.maven", false},
		{"valid with dash", "maven-core", false},
		{"valid with underscore", "my_module", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"colon", "org:core", true},
		{"space", "my module", true},
		{"slash", "org/core", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate("artifactId", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateCoordinate(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateManifestFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid toml", "reactor.toml", false},
		{"valid yaml", "reactor.yaml", false},
		{"valid json", "reactor.json", false},

		{"empty", "", true},
		{"with path /", "path/to/reactor.toml", true},
		{"with path \\", "path\\to\\reactor.toml", true},
		{"hidden file", ".reactor.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifestFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateManifestFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "core", false},
		{"nested", "modules/core", false},
		{"dot prefix", "./core", false},

		{"empty", "", true},
		{"absolute", "/etc/core", true},
		{"traversal", "modules/../core", true},
		{"backslash", "modules\\core", true},
		{"control char", "core\x01", true},
		{"too long", string(make([]byte, 600)), true},
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
