package ir

import "fmt"

// CallConvKind enumerates the known calling conventions.
type CallConvKind uint8

const (
	CCC CallConvKind = iota
	CCFast
	CCCold
	CCGHC
	CCHiPE
	CCWebKitJS
	CCAnyReg
	CCPreserveMost
	CCPreserveAll
	CCSwift
	CCCXXFastTLS
	CCX86StdCall
	CCX86FastCall
	CCX86RegCall
	CCX86ThisCall
	CCX86VectorCall
	CCX86Intr
	CCX8664SysV
	CCARMAPCS
	CCARMAAPCS
	CCARMAAPCSVFP
	CCMSP430Intr
	CCMSP430Builtin
	CCPTXKernel
	CCPTXDevice
	CCSPIRFunc
	CCSPIRKernel
	CCIntelOCLBI
	CCWin64
	CCHHVM
	CCHHVMC
	CCAVRIntr
	CCAVRSignal
	CCAVRBuiltin
	CCAMDGPUCS
	CCAMDGPUES
	CCAMDGPUGS
	CCAMDGPUHS
	CCAMDGPULS
	CCAMDGPUPS
	CCAMDGPUVS
	CCAMDGPUKernel
	// CCNumbered is the escape for any foreign integer code not in the
	// enumeration; Num preserves the raw value so nothing is lost.
	CCNumbered
)

// CallingConv is a decoded calling convention.
type CallingConv struct {
	Kind CallConvKind
	Num  uint32 // raw foreign code, set for CCNumbered
}

// Foreign integer codes for the known conventions.
var callConvByCode = map[uint32]CallConvKind{
	0:  CCC,
	8:  CCFast,
	9:  CCCold,
	10: CCGHC,
	11: CCHiPE,
	12: CCWebKitJS,
	13: CCAnyReg,
	14: CCPreserveMost,
	15: CCPreserveAll,
	16: CCSwift,
	17: CCCXXFastTLS,
	64: CCX86StdCall,
	65: CCX86FastCall,
	66: CCARMAPCS,
	67: CCARMAAPCS,
	68: CCARMAAPCSVFP,
	69: CCMSP430Intr,
	70: CCX86ThisCall,
	71: CCPTXKernel,
	72: CCPTXDevice,
	75: CCSPIRFunc,
	76: CCSPIRKernel,
	77: CCIntelOCLBI,
	78: CCX8664SysV,
	79: CCWin64,
	80: CCX86VectorCall,
	81: CCHHVM,
	82: CCHHVMC,
	83: CCX86Intr,
	84: CCAVRIntr,
	85: CCAVRSignal,
	86: CCAVRBuiltin,
	87: CCAMDGPUVS,
	88: CCAMDGPUGS,
	89: CCAMDGPUPS,
	90: CCAMDGPUCS,
	91: CCAMDGPUKernel,
	92: CCX86RegCall,
	93: CCAMDGPUHS,
	94: CCMSP430Builtin,
	95: CCAMDGPULS,
	96: CCAMDGPUES,
}

var callConvNames = map[CallConvKind]string{
	CCC: "ccc", CCFast: "fastcc", CCCold: "coldcc", CCGHC: "ghccc",
	CCHiPE: "hipecc", CCWebKitJS: "webkit_jscc", CCAnyReg: "anyregcc",
	CCPreserveMost: "preserve_mostcc", CCPreserveAll: "preserve_allcc",
	CCSwift: "swiftcc", CCCXXFastTLS: "cxx_fast_tlscc",
	CCX86StdCall: "x86_stdcallcc", CCX86FastCall: "x86_fastcallcc",
	CCX86RegCall: "x86_regcallcc", CCX86ThisCall: "x86_thiscallcc",
	CCX86VectorCall: "x86_vectorcallcc", CCX86Intr: "x86_intrcc",
	CCX8664SysV: "x86_64_sysvcc", CCARMAPCS: "arm_apcscc",
	CCARMAAPCS: "arm_aapcscc", CCARMAAPCSVFP: "arm_aapcs_vfpcc",
	CCMSP430Intr: "msp430_intrcc", CCMSP430Builtin: "msp430_builtincc",
	CCPTXKernel: "ptx_kernel", CCPTXDevice: "ptx_device",
	CCSPIRFunc: "spir_func", CCSPIRKernel: "spir_kernel",
	CCIntelOCLBI: "intel_ocl_bicc", CCWin64: "win64cc",
	CCHHVM: "hhvmcc", CCHHVMC: "hhvm_ccc",
	CCAVRIntr: "avr_intrcc", CCAVRSignal: "avr_signalcc", CCAVRBuiltin: "avr_builtincc",
	CCAMDGPUCS: "amdgpu_cs", CCAMDGPUES: "amdgpu_es", CCAMDGPUGS: "amdgpu_gs",
	CCAMDGPUHS: "amdgpu_hs", CCAMDGPULS: "amdgpu_ls", CCAMDGPUPS: "amdgpu_ps",
	CCAMDGPUVS: "amdgpu_vs", CCAMDGPUKernel: "amdgpu_kernel",
}

// CallConvFromCode maps a foreign integer code to a CallingConv, degrading to
// the CCNumbered escape for codes outside the known set.
func CallConvFromCode(code uint32) CallingConv {
	if kind, ok := callConvByCode[code]; ok {
		return CallingConv{Kind: kind}
	}
	return CallingConv{Kind: CCNumbered, Num: code}
}

// String renders the convention the way the textual IR would.
func (cc CallingConv) String() string {
	if cc.Kind == CCNumbered {
		return fmt.Sprintf("cc %d", cc.Num)
	}
	if s, ok := callConvNames[cc.Kind]; ok {
		return s
	}
	return fmt.Sprintf("cc %d", cc.Num)
}
