package output

import (
	"fmt"
	"reflect"
)

// DescribeObjectRender renders detail views. In table mode every object gets
// its own key/value block, followed by its rows as an indented table when it
// has any; other modes serialize the whole slice at once.
type DescribeObjectRender[D DescribeObject] struct {
	out Terminal
}

// NewDescribeObjectRender returns a describe renderer writing to out.
func NewDescribeObjectRender[D DescribeObject](out Terminal) *DescribeObjectRender[D] {
	return &DescribeObjectRender[D]{out: out}
}

// Render writes the detail view of objects.
func (r *DescribeObjectRender[D]) Render(objects []D, mode OutputType) error {
	if mode.IsTable() {
		r.printTable(objects)
		return nil
	}
	st, ok := mode.SerializeType()
	if !ok {
		return fmt.Errorf("unsupported output type %q", mode)
	}
	if objects == nil {
		objects = []D{}
	}
	return NewSerdeRenderer(r.out).Render(objects, st)
}

func (r *DescribeObjectRender[D]) printTable(objects []D) {
	if len(objects) == 0 {
		r.out.Println("no " + pluralLabel[D]())
		return
	}
	for i, obj := range objects {
		if i > 0 {
			r.out.Println("")
		}
		if !obj.IsOk() {
			r.out.Println(obj.ValidateError())
			continue
		}
		RenderKeyValues(r.out, obj)
		if len(obj.Content()) > 0 {
			RenderTable(r.out, obj, true)
		}
	}
}

// pluralLabel asks a fresh D for its plural label. A pointer D is allocated
// first so value-receiver methods never see a nil pointer.
func pluralLabel[D DescribeObject]() string {
	var zero D
	if t := reflect.TypeOf(&zero).Elem(); t.Kind() == reflect.Pointer {
		zero = reflect.New(t.Elem()).Interface().(D)
	}
	return zero.LabelPlural()
}
