package lua

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/0xalexb/hjarta-cfg/config/mapping"
)

// converter moves values between a Lua state and the mapping value model.
type converter struct {
	L *lua.LState

	// keepsState is set once a Function bound to L has been handed out.
	keepsState bool
}

// bindings collects globals that are new or differ from the built-in snapshot, sorted by name.
func (c *converter) bindings(builtins map[string]lua.LValue) *mapping.Map {
	values := make(map[string]lua.LValue)

	c.L.G.Global.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}

		if original, isBuiltin := builtins[string(key)]; isBuiltin && original == v {
			return
		}

		values[string(key)] = v
	})

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}

	sort.Strings(names)

	result := mapping.New()
	for _, name := range names {
		result.Set(name, c.toGo(values[name], make(map[*lua.LTable]bool)))
	}

	return result
}

func (c *converter) toGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return number(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		// Break circular references.
		if visited[v] {
			return nil
		}

		visited[v] = true
		defer delete(visited, v)

		return c.tableToGo(v, visited)
	case *lua.LFunction:
		c.keepsState = true

		return c.function(v)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func number(n lua.LNumber) any {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		return int64(f)
	}

	return f
}

// tableToGo converts a sequence (keys 1..n) to []any and anything else to a mapping.
func (c *converter) tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	count := 0
	maxIndex := 0
	isArray := true

	t.ForEach(func(k, _ lua.LValue) {
		count++

		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != math.Trunc(float64(kn)) || kn < 1 {
			isArray = false

			return
		}

		maxIndex = max(maxIndex, int(kn))
	})

	if isArray && count > 0 && maxIndex == count {
		arr := make([]any, count)
		for i := 1; i <= count; i++ {
			arr[i-1] = c.toGo(t.RawGetInt(i), visited)
		}

		return arr
	}

	values := make(map[string]lua.LValue, count)

	t.ForEach(func(k, v lua.LValue) {
		values[keyString(k)] = v
	})

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	result := mapping.New()
	for _, key := range keys {
		result.Set(key, c.toGo(values[key], visited))
	}

	return result
}

func keyString(k lua.LValue) string {
	switch kv := k.(type) {
	case lua.LString:
		return string(kv)
	case lua.LNumber:
		if n, ok := number(kv).(int64); ok {
			return strconv.FormatInt(n, 10)
		}

		return kv.String()
	default:
		return k.String()
	}
}

// function wraps fn so it can be called from Go after the script has finished.
func (c *converter) function(fn *lua.LFunction) Function {
	return func(args ...any) ([]any, error) {
		L := c.L
		stackTop := L.GetTop()

		L.Push(fn)

		for _, arg := range args {
			L.Push(c.toLua(arg))
		}

		err := L.PCall(len(args), lua.MultRet, nil)
		if err != nil {
			return nil, fmt.Errorf("calling lua function: %w", err)
		}

		nRet := L.GetTop() - stackTop
		if nRet <= 0 {
			return nil, nil
		}

		results := make([]any, nRet)
		for i := range nRet {
			results[i] = c.toGo(L.Get(stackTop+i+1), make(map[*lua.LTable]bool))
		}

		L.Pop(nRet)

		return results, nil
	}
}

func (c *converter) toLua(value any) lua.LValue {
	switch val := mapping.Normalize(value).(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int64:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		table := c.L.NewTable()
		for i, item := range val {
			table.RawSetInt(i+1, c.toLua(item))
		}

		return table
	case *mapping.Map:
		table := c.L.NewTable()
		for key, item := range val.All() {
			table.RawSetString(key, c.toLua(item))
		}

		return table
	case lua.LValue:
		return val
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
