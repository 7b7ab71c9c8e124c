package machine

// opDraw implements DXYN - DRW Vx, Vy, nibble.
//
// The sprite is read from memory starting at I, one byte per row. Its origin
// wraps around the display, pixels beyond the display edges are clipped unless
// sprite wrapping is enabled. VF is 1 if no set pixel was cleared and 0 on a
// collision, the collision flag quirk inverts it.
func opDraw(m *Machine, ins Instruction) (Result, error) {
	rows := int(ins.N)
	if err := m.checkRange(rows); err != nil {
		return Result{}, err
	}

	wrap := m.config.Quirks.WrapSprites
	x := int(m.registers[ins.X]) % Width
	y := int(m.registers[ins.Y]) % Height
	collision := false

	for row := range rows {
		line := y + row
		if line >= Height {
			if !wrap {
				break
			}
			line -= Height
		}

		data := m.memory[int(m.index)+row]
		if m.framebuffer.xorRow(x, line, data, wrap) {
			collision = true
		}
	}

	m.setFlag(collision == m.config.Quirks.CollisionFlag)
	return Result{Dirty: true}, nil
}
