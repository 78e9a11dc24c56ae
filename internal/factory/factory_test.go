package factory

import (
	"bytes"
	"errors"
	"testing"
)

func TestProducer_Shapes(t *testing.T) {
	f, err := Producer(ChoiceShape)
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"CIRCLE":    "Inside Circle: draw() method\n",
		"RECTANGLE": "Inside Rectangle: draw() method\n",
		"SQUARE":    "Inside Square: draw() method\n",
	}
	for kind, want := range tests {
		shape, err := f.Shape(kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		var buf bytes.Buffer
		shape.Draw(&buf)
		if buf.String() != want {
			t.Errorf("%s: expected %q, got %q", kind, want, buf.String())
		}
	}
}

func TestProducer_Colors(t *testing.T) {
	f, err := Producer(ChoiceColor)
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"RED":   "Inside Red: fill() method\n",
		"GREEN": "Inside Green: fill() method\n",
		"BLUE":  "Inside Blue: fill() method\n",
	}
	for kind, want := range tests {
		color, err := f.Color(kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		var buf bytes.Buffer
		color.Fill(&buf)
		if buf.String() != want {
			t.Errorf("%s: expected %q, got %q", kind, want, buf.String())
		}
	}
}

func TestProducer_Unknown(t *testing.T) {
	if _, err := Producer("SOUND"); !errors.Is(err, ErrUnknownFactory) {
		t.Errorf("expected ErrUnknownFactory, got %v", err)
	}

	shapes, _ := Producer(ChoiceShape)
	if _, err := shapes.Shape("TRIANGLE"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape, got %v", err)
	}
	if _, err := shapes.Color("RED"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("expected shape factory to refuse colors, got %v", err)
	}

	colors, _ := Producer(ChoiceColor)
	if _, err := colors.Color("PURPLE"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("expected ErrUnknownColor, got %v", err)
	}
	if _, err := colors.Shape("CIRCLE"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected color factory to refuse shapes, got %v", err)
	}
}
