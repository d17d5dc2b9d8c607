package printer

import (
	"fmt"
	"io"

	"codeberg.org/saruga/ctypectx/internal/ctypes"
)

// DumpTypeMap writes a human-readable rendering of tm to w: variables,
// functions, then named structs with their field offset tables. Iteration
// order within each section is sorted by name so the output is
// reproducible across runs, unlike a raw map walk.
func DumpTypeMap(w io.Writer, tm *ctypes.TypeMap) error {
	if _, err := fmt.Fprintln(w, "Variables:"); err != nil {
		return err
	}
	for _, name := range sortedKeys(tm.VarTypes) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, TypeString(tm.VarTypes[name])); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Functions:"); err != nil {
		return err
	}
	for _, name := range sortedKeys(tm.Functions) {
		if _, err := fmt.Fprintln(w, FunctionString(name, tm.Functions[name])); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Structs:"); err != nil {
		return err
	}
	for _, name := range sortedKeys(tm.NamedStructs) {
		s := tm.NamedStructs[name]
		if _, err := fmt.Fprintf(w, "%s: size %d, align %d\n", name, s.Size, s.Align); err != nil {
			return err
		}
		for _, offset := range sortedOffsets(s.Fields) {
			if _, err := fmt.Fprintf(w, "  %d:", offset); err != nil {
				return err
			}
			for _, field := range s.Fields[offset] {
				if _, err := fmt.Fprintf(w, " %s (%s)", field.Name, TypeString(field.Type)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}

	return nil
}
