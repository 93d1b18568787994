package holon

import (
	"fmt"
	"reflect"
	"strings"

	dreamtalk "github.com/ProjectLiminality/dreamtalk"
)

// implicitParameters reads param-tagged fields from the spec struct. The tag
// names the parameter kind, with an optional display name after a comma:
//
//	type MindVirus struct {
//	    Fold float64 `param:"bipolar"`
//	    Size float64 `param:"length,Size"`
//	}
//
// The field's value is the parameter default, so authors set defaults in the
// struct literal. An unknown kind or an unusable field fails assembly.
func implicitParameters(spec Spec) ([]dreamtalk.Parameter, error) {
	v := reflect.ValueOf(spec)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, nil
	}

	t := v.Type()

	var params []dreamtalk.Parameter

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag, ok := field.Tag.Lookup("param")
		if !ok {
			continue
		}

		if !field.IsExported() {
			return nil, fmt.Errorf("%w: %s.%s is unexported", ErrInvalidParameterField, t.Name(), field.Name)
		}

		kind, display, _ := strings.Cut(tag, ",")
		if display == "" {
			display = field.Name
		}

		def, err := fieldDefault(v.Field(i))
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidParameterField, t.Name(), field.Name, err)
		}

		p, err := dreamtalk.NewParameter(display, dreamtalk.ParameterKind(kind), def)
		if err != nil {
			return nil, err
		}

		params = append(params, p)
	}

	return params, nil
}

func fieldDefault(v reflect.Value) (any, error) {
	switch v.Kind() {
	case reflect.Float64, reflect.Float32:
		return v.Float(), nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return int(v.Int()), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Array, reflect.Slice:
		// Color triples pass through as-is.
		return v.Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported field type %s", v.Kind())
	}
}
