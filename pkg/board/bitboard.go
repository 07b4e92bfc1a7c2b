package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 49-bit set of squares on the 7x7 Ataxx grid. Bit i (i < 49)
// represents square i. Bits 49..63 are always zero; every operation that
// returns a Bitboard must preserve that invariant.
type Bitboard uint64

const (
	EmptyBitboard Bitboard = 0

	// FullBitboard is the mask of all 49 legal squares.
	FullBitboard Bitboard = (1 << uint(NumSquares)) - 1
)

// BitMask returns a bitboard with only the given square populated.
func BitMask(sq Square) Bitboard {
	return Bitboard(1) << sq
}

// BitFile returns a bitboard with every square of the given file populated.
func BitFile(f File) Bitboard {
	return fileMask[f]
}

// BitRank returns a bitboard with every square of the given rank populated.
func BitRank(r Rank) Bitboard {
	return Bitboard(0x7f) << (uint(r) * uint(NumFiles))
}

var fileMask [NumFiles]Bitboard

func init() {
	for f := ZeroFile; f < NumFiles; f++ {
		var bb Bitboard
		for r := ZeroRank; r < NumRanks; r++ {
			bb |= BitMask(NewSquare(f, r))
		}
		fileMask[f] = bb
	}
}

func (b Bitboard) IsSet(sq Square) bool {
	return b&BitMask(sq) != 0
}

func (b Bitboard) Set(sq Square) Bitboard {
	return b | BitMask(sq)
}

func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ BitMask(sq)
}

// Union is the set-theoretic union (bitwise or).
func (b Bitboard) Union(o Bitboard) Bitboard {
	return b | o
}

// Intersect is the set-theoretic intersection (bitwise and).
func (b Bitboard) Intersect(o Bitboard) Bitboard {
	return b & o
}

// Xor is the set-theoretic symmetric difference.
func (b Bitboard) Xor(o Bitboard) Bitboard {
	return b ^ o
}

// Complement returns the set of squares not in b, restricted to the 49-bit mask.
func (b Bitboard) Complement() Bitboard {
	return ^b & FullBitboard
}

// PopCount returns the number of set squares.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest-index set square, or Null if b is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return Null
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest-index set square, or Null if b is empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return Null
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest-index set square. Returns Null and an
// unchanged (empty) receiver if b is empty.
func (b Bitboard) PopLSB() (Bitboard, Square) {
	if b == 0 {
		return b, Null
	}
	sq := b.LSB()
	return b &^ BitMask(sq), sq
}

// Squares returns every set square in ascending order.
func (b Bitboard) Squares() []Square {
	var ret []Square
	for bb := b; bb != 0; {
		var sq Square
		bb, sq = bb.PopLSB()
		ret = append(ret, sq)
	}
	return ret
}

// North shifts every square one rank up, masked to the full board.
func (b Bitboard) North() Bitboard {
	return (b << NumFiles) & FullBitboard
}

// South shifts every square one rank down.
func (b Bitboard) South() Bitboard {
	return b >> NumFiles
}

// East shifts every square one file right, dropping file-g sources so they
// do not wrap onto file-a of the next rank.
func (b Bitboard) East() Bitboard {
	return (b &^ fileMask[FileG]) << 1
}

// West shifts every square one file left, dropping file-a sources.
func (b Bitboard) West() Bitboard {
	return (b &^ fileMask[FileA]) >> 1
}

// adjacent returns every square one king-step from any square in x, excluding x.
func adjacent(x Bitboard) Bitboard {
	var out Bitboard
	for _, sq := range x.Squares() {
		out |= neighbor1[sq]
	}
	return out &^ x
}

// jumps returns every square exactly two king-steps from any square in x
// (the 5x5 neighborhood minus the 3x3 neighborhood minus the center),
// excluding x.
func jumps(x Bitboard) Bitboard {
	var out Bitboard
	for _, sq := range x.Squares() {
		out |= neighbor2[sq]
	}
	return out &^ x
}

var (
	neighbor1 [NumSquares]Bitboard // one king-step offsets, per origin square.
	neighbor2 [NumSquares]Bitboard // two king-step ring offsets, per origin square.
)

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		f0, r0 := int(sq.File()), int(sq.Rank())

		var one, two Bitboard
		for df := -2; df <= 2; df++ {
			for dr := -2; dr <= 2; dr++ {
				if df == 0 && dr == 0 {
					continue
				}
				nf, nr := f0+df, r0+dr
				if nf < 0 || nf > int(NumFiles)-1 || nr < 0 || nr > int(NumRanks)-1 {
					continue
				}

				dist := abs(df)
				if abs(dr) > dist {
					dist = abs(dr)
				}

				dst := NewSquare(File(nf), Rank(nr))
				switch dist {
				case 1:
					one |= BitMask(dst)
				case 2:
					two |= BitMask(dst)
				}
			}
		}
		neighbor1[sq] = one
		neighbor2[sq] = two
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// String renders the bitboard as 7 rank rows (rank 7 first), '-' empty, 'X' set.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := NumRanks - 1; ; r-- {
		for f := ZeroFile; f < NumFiles; f++ {
			if b.IsSet(NewSquare(f, r)) {
				sb.WriteRune('X')
			} else {
				sb.WriteRune('-')
			}
		}
		if r == ZeroRank {
			break
		}
		sb.WriteRune('/')
	}
	return sb.String()
}
