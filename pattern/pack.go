package pattern

// packer accumulates palette indices MSB first into out. Bytes past the end
// of out are counted but dropped, which is how the sizing pass runs with a
// nil buffer.
type packer struct {
	out    []byte
	offset int

	acc   byte
	bits  uint8
	shift uint8
}

func (p *packer) push(index uint8) {
	// Flush lazily so the last full byte is written by finish
	if p.bits == 8 {
		p.store()
		p.offset++
		p.acc, p.bits = 0, 0
	}

	p.acc = p.acc<<p.shift | index
	p.bits += p.shift
}

// finish writes whatever is left in the accumulator. A partial byte is not
// shifted up, its pixels stay in the low bits.
func (p *packer) finish() {
	p.store()
}

func (p *packer) store() {
	if p.offset < len(p.out) {
		p.out[p.offset] = p.acc
	}
}
