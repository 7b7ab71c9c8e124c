package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned by Reset when the program does not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrStackUnderflow is returned when a return instruction finds an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrStackOverflow is returned when a call exceeds the configured stack depth.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrInvalidOpcode is returned when an instruction word matches no known instruction.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrOutOfBounds is returned when an operand addresses memory or keys outside the valid range.
	ErrOutOfBounds = errors.New("out of bounds access")
)

// OpcodeError describes an error that occurred while executing a single instruction.
type OpcodeError struct {
	Address uint16 // address the instruction was fetched from
	Word    uint16 // instruction word, 0 if the fetch itself failed
	Err     error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("executing $%04X at $%03X: %v", e.Word, e.Address, e.Err)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}

// IsFatal returns whether the error leaves the machine in a state that should not
// be executed any further. Invalid opcodes are skipped over and are not fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrInvalidOpcode)
}
