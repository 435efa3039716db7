package comparer

import (
	"encoding/json"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// JSONRawMessage compara json.RawMessage semanticamente: ordem das chaves e
// espaços não importam, e nil equivale a vazio ou "null".
func JSONRawMessage() cmp.Option {
	return cmp.Comparer(func(x, y json.RawMessage) bool {
		xObj, xOK := decode(x)
		yObj, yOK := decode(y)
		if !xOK || !yOK {
			return false
		}
		return reflect.DeepEqual(xObj, yObj)
	})
}

func decode(raw json.RawMessage) (interface{}, bool) {
	if len(raw) == 0 {
		return nil, true
	}

	var obj interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}
