// Package factory is a small abstract factory: a producer selects a family
// factory by name, and each family factory creates products by name.
package factory

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnknownFactory = errors.New("unknown factory")
	ErrUnknownShape   = errors.New("unknown shape")
	ErrUnknownColor   = errors.New("unknown color")
)

// Factory choices accepted by Producer.
const (
	ChoiceShape = "SHAPE"
	ChoiceColor = "COLOR"
)

// Shape can draw itself.
type Shape interface {
	Draw(w io.Writer)
}

// Color can fill with itself.
type Color interface {
	Fill(w io.Writer)
}

// AbstractFactory creates products of one family. Asking a factory for a
// product outside its family returns an error.
type AbstractFactory interface {
	Shape(kind string) (Shape, error)
	Color(kind string) (Color, error)
}

type Rectangle struct{}

func (Rectangle) Draw(w io.Writer) { fmt.Fprintln(w, "Inside Rectangle: draw() method") }

type Square struct{}

func (Square) Draw(w io.Writer) { fmt.Fprintln(w, "Inside Square: draw() method") }

type Circle struct{}

func (Circle) Draw(w io.Writer) { fmt.Fprintln(w, "Inside Circle: draw() method") }

type Red struct{}

func (Red) Fill(w io.Writer) { fmt.Fprintln(w, "Inside Red: fill() method") }

type Green struct{}

func (Green) Fill(w io.Writer) { fmt.Fprintln(w, "Inside Green: fill() method") }

type Blue struct{}

func (Blue) Fill(w io.Writer) { fmt.Fprintln(w, "Inside Blue: fill() method") }

// ShapeFactory creates CIRCLE, RECTANGLE and SQUARE.
type ShapeFactory struct{}

func (ShapeFactory) Shape(kind string) (Shape, error) {
	switch kind {
	case "CIRCLE":
		return Circle{}, nil
	case "RECTANGLE":
		return Rectangle{}, nil
	case "SQUARE":
		return Square{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, kind)
}

func (ShapeFactory) Color(kind string) (Color, error) {
	return nil, fmt.Errorf("%w: shape factory has no color %q", ErrUnknownColor, kind)
}

// ColorFactory creates RED, GREEN and BLUE.
type ColorFactory struct{}

func (ColorFactory) Shape(kind string) (Shape, error) {
	return nil, fmt.Errorf("%w: color factory has no shape %q", ErrUnknownShape, kind)
}

func (ColorFactory) Color(kind string) (Color, error) {
	switch kind {
	case "RED":
		return Red{}, nil
	case "GREEN":
		return Green{}, nil
	case "BLUE":
		return Blue{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColor, kind)
}

// Producer returns the family factory for choice.
func Producer(choice string) (AbstractFactory, error) {
	switch choice {
	case ChoiceShape:
		return ShapeFactory{}, nil
	case ChoiceColor:
		return ColorFactory{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFactory, choice)
}
