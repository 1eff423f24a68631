package cpu

import (
	"strings"
)

// Opcode is an instruction of the machine.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NADA    = Opcode(0)  // nada
	OP_CRCT    = Opcode(1)  // crct
	OP_CRVL    = Opcode(2)  // crvl
	OP_CRVI    = Opcode(3)  // crvi
	OP_CREN    = Opcode(4)  // cren
	OP_ARMZ    = Opcode(5)  // armz
	OP_ARMI    = Opcode(6)  // armi
	OP_SOMA    = Opcode(7)  // soma
	OP_SUBT    = Opcode(8)  // subt
	OP_MULT    = Opcode(9)  // mult
	OP_DIVI    = Opcode(10) // divi
	OP_MODU    = Opcode(11) // modu
	OP_INVR    = Opcode(12) // invr
	OP_CONJ    = Opcode(13) // conj
	OP_DISJ    = Opcode(14) // disj
	OP_NEGA    = Opcode(15) // nega
	OP_CMME    = Opcode(16) // cmme
	OP_CMMA    = Opcode(17) // cmma
	OP_CMIG    = Opcode(18) // cmig
	OP_CMDG    = Opcode(19) // cmdg
	OP_CMAG    = Opcode(20) // cmag
	OP_CMEG    = Opcode(21) // cmeg
	OP_DSVS    = Opcode(22) // dsvs
	OP_DSVF    = Opcode(23) // dsvf
	OP_LEIT    = Opcode(24) // leit
	OP_IMPR    = Opcode(25) // impr
	OP_INPP    = Opcode(26) // inpp
	OP_AMEM    = Opcode(27) // amem
	OP_DMEM    = Opcode(28) // dmem
	OP_PARA    = Opcode(29) // para
	OP_CHPR    = Opcode(30) // chpr
	OP_ENPR    = Opcode(31) // enpr
	OP_RTPR    = Opcode(32) // rtpr
	OP_DSVR    = Opcode(33) // dsvr
	OP_ENRT    = Opcode(34) // enrt
	OP_ASSERT  = Opcode(35) // assert
	OP_INSPECT = Opcode(36) // inspect
)

// OpcodeFlag marks instructions outside of the base instruction set.
type OpcodeFlag int

const (
	FLAG_EXTENSION    = OpcodeFlag(1 << 0) // Not part of the official MEPA.
	FLAG_EXPERIMENTAL = OpcodeFlag(1 << 1) // Semantics unverified.
)

// OpcodeInfo describes the static properties of an opcode.
type OpcodeInfo struct {
	Args  int        // Maximum number of literal arguments.
	Flags OpcodeFlag // Extension flags.
}

var _opcodeInfo = [...]OpcodeInfo{
	OP_NADA:    {Args: 0, Flags: 0},
	OP_CRCT:    {Args: 1, Flags: 0},
	OP_CRVL:    {Args: 2, Flags: 0},
	OP_CRVI:    {Args: 2, Flags: 0},
	OP_CREN:    {Args: 2, Flags: 0},
	OP_ARMZ:    {Args: 3, Flags: 0},
	OP_ARMI:    {Args: 3, Flags: 0},
	OP_SOMA:    {Args: 2, Flags: 0},
	OP_SUBT:    {Args: 2, Flags: 0},
	OP_MULT:    {Args: 2, Flags: 0},
	OP_DIVI:    {Args: 2, Flags: 0},
	OP_MODU:    {Args: 2, Flags: FLAG_EXTENSION},
	OP_INVR:    {Args: 1, Flags: 0},
	OP_CONJ:    {Args: 2, Flags: 0},
	OP_DISJ:    {Args: 2, Flags: 0},
	OP_NEGA:    {Args: 1, Flags: 0},
	OP_CMME:    {Args: 2, Flags: 0},
	OP_CMMA:    {Args: 2, Flags: 0},
	OP_CMIG:    {Args: 2, Flags: 0},
	OP_CMDG:    {Args: 2, Flags: 0},
	OP_CMAG:    {Args: 2, Flags: 0},
	OP_CMEG:    {Args: 2, Flags: 0},
	OP_DSVS:    {Args: 1, Flags: 0},
	OP_DSVF:    {Args: 2, Flags: 0},
	OP_LEIT:    {Args: 0, Flags: 0},
	OP_IMPR:    {Args: 1, Flags: 0},
	OP_INPP:    {Args: 0, Flags: 0},
	OP_AMEM:    {Args: 1, Flags: 0},
	OP_DMEM:    {Args: 1, Flags: 0},
	OP_PARA:    {Args: 0, Flags: 0},
	OP_CHPR:    {Args: 2, Flags: 0},
	OP_ENPR:    {Args: 1, Flags: 0},
	OP_RTPR:    {Args: 2, Flags: 0},
	OP_DSVR:    {Args: 3, Flags: FLAG_EXPERIMENTAL},
	OP_ENRT:    {Args: 2, Flags: FLAG_EXPERIMENTAL},
	OP_ASSERT:  {Args: 2, Flags: 0},
	OP_INSPECT: {Args: 0, Flags: 0},
}

// _mnemonicMap maps lowercase mnemonics to opcodes.
var _mnemonicMap = func() map[string]Opcode {
	mnemonics := make(map[string]Opcode, len(_opcodeInfo))
	for op := range Opcode(len(_opcodeInfo)) {
		mnemonics[op.String()] = op
	}
	return mnemonics
}()

// LookupOpcode finds the opcode of a mnemonic, ignoring case.
func LookupOpcode(mnemonic string) (op Opcode, err error) {
	op, ok := _mnemonicMap[strings.ToLower(mnemonic)]
	if !ok {
		err = ErrMnemonic{Mnemonic: mnemonic, Err: ErrInstructionInvalid}
		return
	}

	return
}

// Valid is true for a defined opcode.
func (op Opcode) Valid() bool {
	return op >= 0 && int(op) < len(_opcodeInfo)
}

// Info returns the static properties of the opcode.
func (op Opcode) Info() (info OpcodeInfo) {
	if op.Valid() {
		info = _opcodeInfo[op]
	}
	return
}

// Mnemonic returns the canonical, uppercase, mnemonic.
func (op Opcode) Mnemonic() string {
	return strings.ToUpper(op.String())
}

// Extension is true if the opcode is not in the official instruction set.
func (op Opcode) Extension() bool {
	return op.Info().Flags&FLAG_EXTENSION != 0
}

// Experimental is true if the opcode semantics are unverified.
func (op Opcode) Experimental() bool {
	return op.Info().Flags&FLAG_EXPERIMENTAL != 0
}
