package svf

import "fmt"

// Region identifies whether a register belongs to the instruction or the data
// scan path.
type Region uint8

const (
	RegionDR Region = iota
	RegionIR
)

func (r Region) String() string {
	switch r {
	case RegionDR:
		return "DR"
	case RegionIR:
		return "IR"
	}
	return fmt.Sprintf("Region(%d)", r)
}

// Segment identifies the position of a register within a scan.
type Segment uint8

const (
	SegmentHeader Segment = iota
	SegmentBody
	SegmentTrailer
)

func (s Segment) String() string {
	switch s {
	case SegmentHeader:
		return "header"
	case SegmentBody:
		return "body"
	case SegmentTrailer:
		return "trailer"
	}
	return fmt.Sprintf("Segment(%d)", s)
}

// Register is one of the six persistent shift-register contexts.
type Register uint8

const (
	DataHeader Register = iota
	InsnHeader
	DataBody
	InsnBody
	DataTrailer
	InsnTrailer

	numRegisters
)

// Registers lists every register in rendering order.
var Registers = [numRegisters]Register{
	DataHeader, InsnHeader, DataBody, InsnBody, DataTrailer, InsnTrailer,
}

var registerCommands = [numRegisters]string{
	DataHeader:  "HDR",
	InsnHeader:  "HIR",
	DataBody:    "SDR",
	InsnBody:    "SIR",
	DataTrailer: "TDR",
	InsnTrailer: "TIR",
}

// LookupRegister resolves a statement keyword. Keywords are case-sensitive.
func LookupRegister(command string) (Register, bool) {
	for i, name := range registerCommands {
		if name == command {
			return Register(i), true
		}
	}
	return 0, false
}

// RegisterFor returns the register at the given region and segment.
func RegisterFor(region Region, segment Segment) Register {
	return Register(uint8(segment)*2 + uint8(region))
}

// Region reports whether r is an instruction or data register.
func (r Register) Region() Region {
	return Region(r % 2)
}

// Segment reports whether r is a header, body or trailer.
func (r Register) Segment() Segment {
	return Segment(r / 2)
}

// Valid reports whether r names one of the six registers.
func (r Register) Valid() bool {
	return r < numRegisters
}

// String returns the SVF keyword for the register.
func (r Register) String() string {
	if r.Valid() {
		return registerCommands[r]
	}
	return fmt.Sprintf("Register(%d)", r)
}

// Field selects one of the three values held by a BitStore.
type Field uint8

const (
	FieldTDI Field = iota
	FieldTDO
	FieldMask

	numFields
)

var fieldNames = [numFields]string{
	FieldTDI:  "TDI",
	FieldTDO:  "TDO",
	FieldMask: "MASK",
}

func lookupField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

func (f Field) String() string {
	if f < numFields {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", f)
}
