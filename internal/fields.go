package internal

import (
	"github.com/mitchellh/reflectwalk"
	"reflect"
	"strconv"
	"strings"
)

// Field is a numeric leaf of a state struct, as listed by the debug panel.
type Field struct {
	Path  string // Dotted path from the root, with [i] for array elements (e.g. "CameraMatrix[0][2]")
	Value float64
}

// NumericFields flattens every numeric leaf reachable from root (a struct or a pointer to one), in declaration order.
// Remember that reflect is relatively slow: call it once per displayed frame, not per event.
func NumericFields(root interface{}) ([]Field, error) {
	w := &numericFieldsWalker{}
	if err := reflectwalk.Walk(root, w); err != nil {
		return nil, err
	}
	return w.fields, nil
}

type numericFieldsWalker struct {
	path   []string
	fields []Field
}

func (w *numericFieldsWalker) Enter(_ reflectwalk.Location) error {
	return nil
}

func (w *numericFieldsWalker) Exit(loc reflectwalk.Location) error {
	if loc == reflectwalk.StructField || loc == reflectwalk.ArrayElem {
		w.path = w.path[:len(w.path)-1]
	}
	return nil
}

func (w *numericFieldsWalker) Struct(_ reflect.Value) error {
	return nil
}

func (w *numericFieldsWalker) StructField(field reflect.StructField, _ reflect.Value) error {
	w.path = append(w.path, "."+field.Name)
	return nil
}

func (w *numericFieldsWalker) Array(_ reflect.Value) error {
	return nil
}

func (w *numericFieldsWalker) ArrayElem(i int, _ reflect.Value) error {
	w.path = append(w.path, "["+strconv.Itoa(i)+"]")
	return nil
}

func (w *numericFieldsWalker) Primitive(value reflect.Value) error {
	var f float64
	switch value.Kind() {
	case reflect.Float32, reflect.Float64:
		f = value.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(value.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(value.Uint())
	default:
		return nil
	}
	w.fields = append(w.fields, Field{Path: strings.TrimPrefix(strings.Join(w.path, ""), "."), Value: f})
	return nil
}
