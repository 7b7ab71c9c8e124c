// Package machine implements the CHIP-8 virtual machine.
//
// # Machine State
//
// A Machine owns 4KB of memory, the registers V0-VF, the address register I,
// the program counter, a bounded call stack, a 64x32 monochrome framebuffer,
// the state of the 16 keys of the hexadecimal keypad and the delay and sound timers.
//
// Memory layout:
//   - 0x000-0x04F: built-in hexadecimal font
//   - 0x050-0x1FF: unused interpreter area
//   - 0x200-0xFFF: program and data
//
// # Execution
//
// Step performs one fetch-decode-execute cycle. The program counter is advanced
// before the instruction executes, control flow instructions overwrite it.
// The machine never calls out to the host: the host feeds key states in with
// SetKeys, calls TickTimers at 60Hz and reads the Framebuffer after a step
// reported a dirty display.
//
// The wait for key instruction does not block. Step reports AwaitingKey and
// leaves the program counter on the instruction, the host keeps calling Step
// until a key is pressed.
//
// # Quirks
//
// CHIP-8 interpreters disagree on a few instruction details. Quirks selects
// between the variants, the zero value selects the conventional behavior:
// VF=1 signals a carry for ADD and a collision for DRW, shifts operate on VX,
// sprites are clipped at the display edges and register dump and load leave I unchanged.
//
// # Usage Example
//
//	m := machine.New(machine.DefaultConfig())
//	if err := m.Reset(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//
//	res, err := m.Step()
//	if machine.IsFatal(err) {
//		return err
//	}
//	if res.Dirty {
//		fb := m.Framebuffer()
//		render(&fb)
//	}
package machine
