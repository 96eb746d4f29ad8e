package script

import (
	"sort"

	"github.com/dekarrin/barescript/internal/datasrc"
)

// file library_data.go implements the added Data standard-library group
// (SPEC_FULL.md §4.8): dataParseCSV, dataTable, dataSort, dataFilter. These
// supplement the distilled library contract with the original
// implementation's chart-input-shaping surface, delegating the actual CSV
// parse to the C11 datasrc collaborator.

func init() {
	registerBuiltin("dataParseCSV", false, biDataParseCSV)
	registerBuiltin("dataTable", false, biDataTable)
	registerBuiltin("dataSort", false, biDataSort)
	registerBuiltin("dataFilter", false, biDataFilter)
}

func biDataParseCSV(args []Value, host HostRef) (Value, error) {
	text, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	delimStr, _ := strArgDefault(args, 1, ",")
	delim := ','
	if len([]rune(delimStr)) == 1 {
		delim = []rune(delimStr)[0]
	}

	table, err := datasrc.ParseCSV(text, delim)
	if err != nil {
		host.log(err.Error())
		return NewNull(), nil
	}

	rows := make([]Value, len(table.Rows))
	for i, row := range table.Rows {
		obj := NewObject()
		for j, field := range table.Header {
			obj.Obj().Set(field, NewString(row[j]))
		}
		rows[i] = obj
	}
	return NewArray(rows), nil
}

// biDataTable projects rows down to just the named fields, producing a new
// Array of Objects with Null for any field absent from a given row.
func biDataTable(args []Value, host HostRef) (Value, error) {
	rows, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	fields, ok := arrArg(args, 1)
	if !ok {
		return NewNull(), nil
	}
	fieldNames := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Type() != String {
			return NewNull(), nil
		}
		fieldNames = append(fieldNames, f.Str())
	}

	out := make([]Value, len(rows))
	for i, row := range rows {
		projected := NewObject()
		if row.Type() == Object {
			for _, name := range fieldNames {
				v, present := row.Obj().Get(name)
				if !present {
					v = NewNull()
				}
				projected.Obj().Set(name, v)
			}
		} else {
			for _, name := range fieldNames {
				projected.Obj().Set(name, NewNull())
			}
		}
		out[i] = projected
	}
	return NewArray(out), nil
}

// biDataSort performs a stable multi-key sort of an Array of Objects;
// fields is an Array of {field, desc} Objects applied in order (earlier
// entries are the primary key).
func biDataSort(args []Value, host HostRef) (Value, error) {
	rows, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	fieldSpecs, ok := arrArg(args, 1)
	if !ok {
		return NewNull(), nil
	}

	type sortKey struct {
		field string
		desc  bool
	}
	keys := make([]sortKey, 0, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		if spec.Type() != Object {
			return NewNull(), nil
		}
		fieldVal, _ := spec.Obj().Get("field")
		if fieldVal.Type() != String {
			return NewNull(), nil
		}
		descVal, _ := spec.Obj().Get("desc")
		keys = append(keys, sortKey{field: fieldVal.Str(), desc: truthy(descVal)})
	}

	out := make([]Value, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range keys {
			var vi, vj Value
			if out[i].Type() == Object {
				vi, _ = out[i].Obj().Get(k.field)
			}
			if out[j].Type() == Object {
				vj, _ = out[j].Obj().Get(k.field)
			}
			c := compare(vi, vj)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return NewArray(out), nil
}

// biDataFilter keeps rows for which a script predicate, called once per row
// via host.CallFunction, returns truthy.
func biDataFilter(args []Value, host HostRef) (Value, error) {
	rows, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	predicate, ok := fnArg(args, 1)
	if !ok {
		return NewNull(), nil
	}

	var out []Value
	for _, row := range rows {
		keep, err := host.CallFunction(predicate, []Value{row})
		if err != nil {
			return Value{}, err
		}
		if truthy(keep) {
			out = append(out, row)
		}
	}
	return NewArray(out), nil
}
