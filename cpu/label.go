package cpu

// Label addressing (DSVR, ENRT) jumps to a label of an enclosing
// procedure. These have no authoritative description; the assembler can
// reject them with Assembler.NoExperimental.

// labelJump implements DSVR p,j,k: unwind the frames above the nearest
// level j frame, starting from the level k frame, then continue at p with
// the frame of level j. Each unwound frame restores the display the way
// RTPR does.
func (cpu *Cpu) labelJump() (next_pc int, err error) {
	regs := &cpu.Register
	mem := cpu.Memory

	var p, j, k Word
	err = cpu.pop(&k, &j, &p)
	if err != nil {
		return
	}

	target, err := mem.Display(j)
	if err != nil {
		return
	}

	bp, err := mem.Display(k)
	if err != nil {
		return
	}

	for bp != target {
		var level, saved_bp Word
		level, err = mem.Get(bp - 1)
		if err != nil {
			return
		}
		saved_bp, err = mem.Get(bp - 2)
		if err != nil {
			return
		}
		// Frames lie strictly below their callees.
		if saved_bp >= bp || saved_bp < target {
			err = ErrFrameChain
			return
		}
		err = mem.SetDisplay(level, saved_bp)
		if err != nil {
			return
		}
		bp = saved_bp
	}

	regs.Bp = int(target)
	next_pc = int(p)

	return
}

// labelEnter implements ENRT k,n: reset the stack to the n locals of
// the level k frame.
func (cpu *Cpu) labelEnter() (err error) {
	mem := cpu.Memory

	var k, n Word
	err = cpu.pop(&n, &k)
	if err != nil {
		return
	}

	bp, err := mem.Display(k)
	if err != nil {
		return
	}

	sp := bp + n - 1
	if sp > Word(mem.MaxStackSegment) {
		err = ErrStackFull
		return
	}
	if sp < Word(cpu.Register.Ss-1) {
		err = ErrStackEmpty
		return
	}
	cpu.Register.Sp = int(sp)

	return
}
