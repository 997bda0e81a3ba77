// flames_test.go
package goflames

import (
	"errors"
	"testing"

	"github.com/baditaflorin/go_flames/internal/validate"
)

func TestComputeWithDefaults(t *testing.T) {
	tests := []struct {
		name       string
		a, b       string
		resultType string
		wantErr    error
	}{
		{name: "John and Jane", a: "John", b: "Jane", resultType: "E"},
		{name: "Same letters", a: "Tom", b: "Mot", resultType: "SAME"},
		{name: "Padded input", a: "  Romeo ", b: "Juliet", resultType: "E"},
		{name: "Empty name", a: "", b: "Jane", wantErr: validate.ErrEmptyInput},
		{name: "Digits", a: "John5", b: "Jane", wantErr: validate.ErrInvalidCharacter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ComputeWithDefaults(tc.a, tc.b)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil && string(result.Type) != tc.resultType {
				t.Errorf("expected result type %s, got %s", tc.resultType, result.Type)
			}
		})
	}
}
