package internal

import (
	"testing"
)

func TestNumericFields_SessionState(t *testing.T) {
	s := NewSessionState()
	s.Camera.Pan = 0.25
	s.CameraPosition.X = -1.5
	s.UpdateCameraMatrix()
	fields, err := NumericFields(s)
	if err != nil {
		t.Fatal(err)
	}
	byPath := map[string]float64{}
	for _, f := range fields {
		byPath[f.Path] = f.Value
	}
	expected := map[string]float64{
		"Tick":               0,
		"Camera.Pan":         0.25,
		"CameraPosition.X":   -1.5,
		"CameraMatrix[0][0]": s.CameraMatrix[0][0],
		"CameraMatrix[1][2]": s.CameraMatrix[1][2],
		"ObjectMatrix[2][2]": 1,
		"Object.RotateZ":     0,
	}
	for path, value := range expected {
		got, ok := byPath[path]
		if !ok {
			t.Fatalf("missing field %q in %v", path, fields)
		}
		if got != value {
			t.Fatalf("field %q: expected %g, got %g", path, value, got)
		}
	}
	// Tick, object and camera angles, position, view, material and both matrices
	if len(fields) != 1+3+2+3+1+1+9+9 {
		t.Fatalf("unexpected number of fields: %d", len(fields))
	}
	if fields[0].Path != "Tick" {
		t.Fatalf("expected declaration order, first field is %q", fields[0].Path)
	}
}

func TestNumericFields_IgnoresNonNumeric(t *testing.T) {
	type withText struct {
		Name  string
		Ok    bool
		Value float32
	}
	fields, err := NumericFields(&withText{Name: "x", Ok: true, Value: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 1 || fields[0].Path != "Value" || fields[0].Value != 2 {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
