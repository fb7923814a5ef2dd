// Package svf parses the register statements of a Serial Vector Format file
// and keeps the persistent shift-register state they describe.
//
// # Registers
//
// SVF describes a scan chain with six independent registers: a header, a body
// and a trailer for each of the instruction (IR) and data (DR) paths.
//
//	HDR  data header         HIR  instruction header
//	SDR  data body           SIR  instruction body
//	TDR  data trailer        TIR  instruction trailer
//
// Each register is a BitStore holding the width in bits together with the
// TDI, TDO and MASK values. A statement names one register:
//
//	SDR 32 TDI (F1C2E093) TDO (00000000) MASK (FFFFFFFF);
//
// When the width changes, all three values reset to zero before the fields
// present in the statement are applied. When the width is unchanged, fields
// absent from the statement keep their previous value.
//
// # Usage
//
//	ctx, err := svf.NewContext(svf.Options{})
//	if _, err := ctx.ParseLine("HDR 8 TDI (aa)", nil); err != nil {
//		return err
//	}
//	fmt.Println(ctx.Store(svf.DataHeader).TDI)
//
// Whole files are processed by a Converter, which splits the input into
// statements with a Reader and forwards every register update to an Emitter
// such as csvf.Writer.
package svf
