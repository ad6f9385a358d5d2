package bruntime

import "github.com/tjcardinal/tiny-basic/ast"

// Vars holds the 26 variables A..Z, all zero at start. Names outside A..Z
// read as zero and ignore writes.
type Vars [26]uint32

func (v *Vars) Get(name ast.Var) uint32 {
	if !name.Valid() {
		return 0
	}
	return v[name.Index()]
}

func (v *Vars) Set(name ast.Var, n uint32) {
	if name.Valid() {
		v[name.Index()] = n
	}
}
