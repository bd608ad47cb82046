package ast

// CoreClassID identifies one of the fixed built-in classes recognized by
// identity rather than by name lookup. NotCore marks an ordinary,
// resolver-defined class.
type CoreClassID int

const (
	NotCore CoreClassID = iota
	CoreInt
	CoreFloat
	CoreBool
	CoreChar
	CoreString
	CoreArray
	CoreObject
	CoreVoid
	CoreBoolBox
)

// Boxed reports whether values of this core class are represented boxed
// (pointer-to-struct) as opposed to an unboxed scalar IR value. Every core
// class is boxed at the language level; Boxed distinguishes the ones whose
// *unboxed* payload is a machine scalar from Object/Void, which have no
// unboxed form at all.
func (c CoreClassID) Boxed() bool {
	switch c {
	case CoreInt, CoreFloat, CoreBool, CoreChar, CoreString, CoreArray, CoreBoolBox:
		return true
	default:
		return false
	}
}

// TreatedSpecial reports whether an initializer call on this core class is
// special-cased by the code generator's function-call dispatch: the single
// argument is already the boxed value, so the call becomes an identity push
// rather than an emitted call.
func (c CoreClassID) TreatedSpecial() bool {
	switch c {
	case CoreInt, CoreFloat, CoreBool, CoreChar, CoreString, CoreArray:
		return true
	default:
		return false
	}
}

func (c CoreClassID) String() string {
	switch c {
	case CoreInt:
		return "Int"
	case CoreFloat:
		return "Float"
	case CoreBool:
		return "Bool"
	case CoreChar:
		return "Char"
	case CoreString:
		return "String"
	case CoreArray:
		return "Array"
	case CoreObject:
		return "Object"
	case CoreVoid:
		return "Void"
	case CoreBoolBox:
		return "BoolBox"
	default:
		return "<non-core>"
	}
}
