package starlark

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"
)

func toDict(m map[string]any) (*starlarkLib.Dict, error) {
	dict := starlarkLib.NewDict(len(m))
	for k, v := range m {
		var sv starlarkLib.Value
		switch val := v.(type) {
		case nil:
			sv = starlarkLib.None
		case bool:
			sv = starlarkLib.Bool(val)
		case string:
			sv = starlarkLib.String(val)
		default:
			return nil, fmt.Errorf("unsupported type %T for key %q", v, k)
		}
		if err := dict.SetKey(starlarkLib.String(k), sv); err != nil {
			return nil, fmt.Errorf("failed to set dict key %q: %w", k, err)
		}
	}
	return dict, nil
}

func fromValue(v starlarkLib.Value) (any, error) {
	switch v := v.(type) {
	case nil, starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(v), nil
	case starlarkLib.String:
		return string(v), nil
	case starlarkLib.Int:
		i, _ := v.Int64()
		return i, nil
	case starlarkLib.Float:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("unsupported Starlark type %s", v.Type())
	}
}

func fromDict(v starlarkLib.Value) (map[string]any, error) {
	dict, ok := v.(*starlarkLib.Dict)
	if !ok {
		return nil, fmt.Errorf("expected dict, got %s", v.Type())
	}
	out := make(map[string]any, dict.Len())
	for _, item := range dict.Items() {
		key, ok := item[0].(starlarkLib.String)
		if !ok {
			return nil, fmt.Errorf("dict key %s is not a string", item[0].String())
		}
		val, err := fromValue(item[1])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", string(key), err)
		}
		out[string(key)] = val
	}
	return out, nil
}
