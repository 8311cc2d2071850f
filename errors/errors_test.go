package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindMalformed,
				Path:   []string{"layout", "x"},
				Detail: "member object is not a Field or Padding",
			},
			contains: []string{"[decode]", "malformed", "layout.x", "not a Field or Padding"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLookup,
				Kind:  KindNotFound,
			},
			contains: []string{"[lookup]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseSnapshot,
				Kind:   KindInvalidData,
				Detail: "truncated snapshot",
				Cause:  errors.New("unexpected EOF"),
			},
			contains: []string{"[snapshot]", "invalid_data", "truncated snapshot", "caused by", "unexpected EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseNormalize,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindMalformed,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindMalformed}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseEncode, Kind: KindMalformed}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindNotFound}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseDecode, Kind: KindMalformed}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseNormalize, KindInvalidData).
		Path("point", "y").
		Value(-4).
		Cause(cause).
		Detail("member offset %d precedes expected offset %d", 4, 8).
		Build()

	if err.Phase != PhaseNormalize {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseNormalize)
	}
	if err.Kind != KindInvalidData {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
	}
	if len(err.Path) != 2 || err.Path[0] != "point" || err.Path[1] != "y" {
		t.Errorf("Path = %v, want [point y]", err.Path)
	}
	if err.Value != -4 {
		t.Errorf("Value = %v, want -4", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Error("Cause not preserved")
	}
	if err.Detail != "member offset 4 precedes expected offset 8" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		phase    Phase
		kind     Kind
		contains string
	}{
		{"NotFound", NotFound(PhaseLookup, "type", "struct foo"), PhaseLookup, KindNotFound, `type "struct foo" not found`},
		{"Malformed", Malformed(PhaseDecode, "bad %s", "payload"), PhaseDecode, KindMalformed, "bad payload"},
		{"InvalidDiscriminant", InvalidDiscriminant(PhaseDecode, 42), PhaseDecode, KindMalformed, "discriminant 42"},
		{"FieldMissing", FieldMissing(PhaseDecode, "n"), PhaseDecode, KindMalformed, `key "n" missing`},
		{"Overflow", Overflow(PhaseNormalize, "array size %d * %d", 1, 2), PhaseNormalize, KindOverflow, "1 * 2"},
		{"InvalidData", InvalidData(PhaseNormalize, []string{"x"}, "negative padding"), PhaseNormalize, KindInvalidData, "negative padding"},
		{"Unsupported", Unsupported(PhaseNormalize, "bitfield member"), PhaseNormalize, KindUnsupported, "bitfield member"},
		{"Wrap", Wrap(PhaseSnapshot, KindInvalidData, errors.New("eof"), "read header"), PhaseSnapshot, KindInvalidData, "read header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("Error() = %q, want substring %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
