// Package hll implementa um HyperLogLog mesclável para contagem
// aproximada de visitantes únicos.
//
// Cada sketch usa m = 2^p registradores de um byte. O hash de 64 bits de
// cada elemento é dividido em p bits de índice e 64-p bits usados para o
// rank (posição do primeiro bit 1). Com p=14 o erro padrão é ~0.81%.
//
// A mescla de dois sketches é o máximo registrador a registrador, o que
// torna a estimativa de um intervalo mesclado sempre >= à de qualquer
// subintervalo contido nele.
package hll

import (
	"errors"
	"hash/fnv"
	"math"
	"math/bits"
)

var ErrPrecisionMismatch = errors.New("hll: sketches com precisões diferentes")

// Sketch é um contador HyperLogLog de precisão fixa.
type Sketch struct {
	registers []uint8
	m         uint64
	p         uint8
}

// New cria um sketch com 2^precision registradores (precision entre 4 e 16).
func New(precision uint8) *Sketch {
	if precision < 4 {
		precision = 4
	}
	if precision > 16 {
		precision = 16
	}
	return &Sketch{
		registers: make([]uint8, 1<<precision),
		m:         1 << precision,
		p:         precision,
	}
}

// Add registra um elemento no sketch. Adicionar o mesmo elemento mais de
// uma vez não altera o estado.
func (s *Sketch) Add(data []byte) {
	h := fnv.New64a()
	h.Write(data)
	hash := h.Sum64()

	// p bits mais significativos escolhem o registrador
	idx := hash >> (64 - s.p)

	// o restante do hash determina o rank (zeros à esquerda + 1)
	remaining := hash << s.p
	rank := uint8(bits.LeadingZeros64(remaining)) + 1

	if rank > s.registers[idx] {
		s.registers[idx] = rank
	}
}

// AddString registra uma string no sketch.
func (s *Sketch) AddString(v string) {
	s.Add([]byte(v))
}

// Count retorna a estimativa de cardinalidade.
func (s *Sketch) Count() uint64 {
	sum := 0.0
	zeros := 0
	for _, v := range s.registers {
		sum += 1.0 / float64(uint64(1)<<v)
		if v == 0 {
			zeros++
		}
	}

	m := float64(s.m)
	estimate := alpha(s.m) * m * m / sum

	// correção de pequeno alcance: linear counting enquanto houver
	// registradores zerados e a estimativa for baixa
	if estimate <= 2.5*m && zeros > 0 {
		return uint64(m * math.Log(m/float64(zeros)))
	}

	return uint64(estimate)
}

// Merge incorpora other neste sketch (máximo registrador a registrador).
// O sketch recebido não é modificado.
func (s *Sketch) Merge(other *Sketch) error {
	if other == nil {
		return nil
	}
	if s.p != other.p {
		return ErrPrecisionMismatch
	}
	for i, v := range other.registers {
		if v > s.registers[i] {
			s.registers[i] = v
		}
	}
	return nil
}

// Clone devolve uma cópia independente do sketch.
func (s *Sketch) Clone() *Sketch {
	c := &Sketch{
		registers: make([]uint8, len(s.registers)),
		m:         s.m,
		p:         s.p,
	}
	copy(c.registers, s.registers)
	return c
}

// Precision retorna a precisão p do sketch.
func (s *Sketch) Precision() uint8 {
	return s.p
}

// alpha é o fator de correção de viés do estimador (Flajolet et al.).
func alpha(m uint64) float64 {
	switch m {
	case 16:
		return 0.673
	case 32:
		return 0.697
	case 64:
		return 0.709
	}
	return 0.7213 / (1 + 1.079/float64(m))
}
