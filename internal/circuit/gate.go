package circuit

// Kind identifies a gate type.
type Kind int

// Gate kinds. Controlled kinds store qubits as [control, target].
const (
	KindH Kind = iota
	KindX
	KindY
	KindZ
	KindS
	KindSdg
	KindT
	KindTdg
	KindRX
	KindRY
	KindRZ
	KindP
	KindCX
	KindCY
	KindCZ
	KindCRX
	KindCRY
	KindCRZ
	KindCP
	KindSwap
)

var kindNames = [...]string{
	KindH:    "h",
	KindX:    "x",
	KindY:    "y",
	KindZ:    "z",
	KindS:    "s",
	KindSdg:  "sdg",
	KindT:    "t",
	KindTdg:  "tdg",
	KindRX:   "rx",
	KindRY:   "ry",
	KindRZ:   "rz",
	KindP:    "p",
	KindCX:   "cx",
	KindCY:   "cy",
	KindCZ:   "cz",
	KindCRX:  "crx",
	KindCRY:  "cry",
	KindCRZ:  "crz",
	KindCP:   "cp",
	KindSwap: "swap",
}

// String returns the lowercase gate mnemonic.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Parametric reports whether the kind carries a rotation angle.
func (k Kind) Parametric() bool {
	switch k {
	case KindRX, KindRY, KindRZ, KindP, KindCRX, KindCRY, KindCRZ, KindCP:
		return true
	}
	return false
}

// Controlled reports whether the kind acts on a control/target pair.
func (k Kind) Controlled() bool {
	switch k {
	case KindCX, KindCY, KindCZ, KindCRX, KindCRY, KindCRZ, KindCP:
		return true
	}
	return false
}

// Gate is a single instruction in a circuit.
//
// Qubits holds the targets; for controlled kinds it is [control, target],
// for Swap the two swapped qubits. Angle is nil for non-parametric kinds.
type Gate struct {
	Kind   Kind
	Qubits []int
	Angle  Angle
}

// Arity returns the number of qubits the kind acts on.
func (k Kind) Arity() int {
	if k.Controlled() || k == KindSwap {
		return 2
	}
	return 1
}
