package ir

// Linkage describes how a global value participates in linking.
type Linkage uint8

const (
	LinkageExternal Linkage = iota
	LinkageAvailableExternally
	LinkageLinkOnceAny
	LinkageLinkOnceODR
	LinkageWeakAny
	LinkageWeakODR
	LinkageAppending
	LinkageInternal
	LinkagePrivate
	LinkageExternalWeak
	LinkageCommon
)

// String returns the textual linkage keyword.
func (l Linkage) String() string {
	switch l {
	case LinkageExternal:
		return "external"
	case LinkageAvailableExternally:
		return "available_externally"
	case LinkageLinkOnceAny:
		return "linkonce"
	case LinkageLinkOnceODR:
		return "linkonce_odr"
	case LinkageWeakAny:
		return "weak"
	case LinkageWeakODR:
		return "weak_odr"
	case LinkageAppending:
		return "appending"
	case LinkageInternal:
		return "internal"
	case LinkagePrivate:
		return "private"
	case LinkageExternalWeak:
		return "extern_weak"
	case LinkageCommon:
		return "common"
	default:
		return "unknown"
	}
}

// Visibility describes symbol visibility.
type Visibility uint8

const (
	VisibilityDefault Visibility = iota
	VisibilityHidden
	VisibilityProtected
)

// String returns the textual visibility style.
func (v Visibility) String() string {
	switch v {
	case VisibilityHidden:
		return "hidden"
	case VisibilityProtected:
		return "protected"
	default:
		return "default"
	}
}

// DLLStorageClass describes DLL import/export storage.
type DLLStorageClass uint8

const (
	StorageDefault DLLStorageClass = iota
	StorageImport
	StorageExport
)

// String returns the textual storage class.
func (s DLLStorageClass) String() string {
	switch s {
	case StorageImport:
		return "dllimport"
	case StorageExport:
		return "dllexport"
	default:
		return "default"
	}
}

// ComdatKind is a comdat selection kind.
type ComdatKind uint8

const (
	ComdatAny ComdatKind = iota
	ComdatExactMatch
	ComdatLargest
	ComdatNoDuplicates
	ComdatSameSize
)

// Comdat names a comdat group and its selection kind.
type Comdat struct {
	Name string
	Kind ComdatKind
}

// MemoryOrdering is an atomic memory ordering.
type MemoryOrdering uint8

const (
	OrderingNotAtomic MemoryOrdering = iota
	OrderingUnordered
	OrderingMonotonic
	OrderingAcquire
	OrderingRelease
	OrderingAcquireRelease
	OrderingSequentiallyConsistent
)

// String returns the textual ordering keyword.
func (o MemoryOrdering) String() string {
	switch o {
	case OrderingUnordered:
		return "unordered"
	case OrderingMonotonic:
		return "monotonic"
	case OrderingAcquire:
		return "acquire"
	case OrderingRelease:
		return "release"
	case OrderingAcquireRelease:
		return "acq_rel"
	case OrderingSequentiallyConsistent:
		return "seq_cst"
	default:
		return "not_atomic"
	}
}

// SyncScope distinguishes single-thread from whole-system atomicity.
type SyncScope uint8

const (
	SyncScopeSystem SyncScope = iota
	SyncScopeSingleThread
)

// IntPredicate is an integer comparison predicate.
type IntPredicate uint8

const (
	IntEQ IntPredicate = iota
	IntNE
	IntUGT
	IntUGE
	IntULT
	IntULE
	IntSGT
	IntSGE
	IntSLT
	IntSLE
)

var intPredNames = [...]string{"eq", "ne", "ugt", "uge", "ult", "ule", "sgt", "sge", "slt", "sle"}

// String returns the textual predicate keyword.
func (p IntPredicate) String() string {
	if int(p) < len(intPredNames) {
		return intPredNames[p]
	}
	return "unknown"
}

// FloatPredicate is a floating-point comparison predicate.
type FloatPredicate uint8

const (
	FloatFalse FloatPredicate = iota
	FloatOEQ
	FloatOGT
	FloatOGE
	FloatOLT
	FloatOLE
	FloatONE
	FloatORD
	FloatUNO
	FloatUEQ
	FloatUGT
	FloatUGE
	FloatULT
	FloatULE
	FloatUNE
	FloatTrue
)

var floatPredNames = [...]string{
	"false", "oeq", "ogt", "oge", "olt", "ole", "one", "ord",
	"uno", "ueq", "ugt", "uge", "ult", "ule", "une", "true",
}

// String returns the textual predicate keyword.
func (p FloatPredicate) String() string {
	if int(p) < len(floatPredNames) {
		return floatPredNames[p]
	}
	return "unknown"
}

// RMWOp is an atomicrmw operation.
type RMWOp uint8

const (
	RMWXchg RMWOp = iota
	RMWAdd
	RMWSub
	RMWAnd
	RMWNand
	RMWOr
	RMWXor
	RMWMax
	RMWMin
	RMWUMax
	RMWUMin
	RMWFAdd
	RMWFSub
)

var rmwOpNames = [...]string{
	"xchg", "add", "sub", "and", "nand", "or", "xor",
	"max", "min", "umax", "umin", "fadd", "fsub",
}

// String returns the textual operation keyword.
func (op RMWOp) String() string {
	if int(op) < len(rmwOpNames) {
		return rmwOpNames[op]
	}
	return "unknown"
}

// DebugLoc is an optional source position attached to instructions,
// terminators, and functions when the session tracks debug locations.
// Function-level locations carry no column.
type DebugLoc struct {
	Line      uint32
	Col       uint32
	HasCol    bool
	Filename  string
	Directory string
}
