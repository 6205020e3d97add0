package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary keys into random readable names. It leaks memory but
// generates the names lazily, so it's not a problem unless you're actually
// using it. This is helpful for turning trapezoid ids and pointers into
// something more easily distinguishable when debugging.

var (
	mu   sync.Mutex
	memo = make(map[interface{}]string)
)

func init() {
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

type idKey struct {
	kind string
	id   int
}

// Name for an arena entry, such as a trapezoid. Id 0 is the null entry.
func ID(kind string, id int) string {
	if id <= 0 {
		return "Ø"
	}
	return Name(idKey{kind, id})
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	switch v := reflect.ValueOf(obj); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return "Ø"
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", title(petname.Adjective()), title(petname.Name()))
	memo[obj] = r
	return r
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
