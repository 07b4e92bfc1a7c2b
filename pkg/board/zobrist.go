package board

import "math/rand"

// ZobristTable is a pseudo-randomized table for computing a position hash.
// Hashes are used for transposition-table lookups; unlike the teacher's
// chess hash, Ataxx has no castling rights or en-passant metastatus to mix
// in, only a per-side-per-square stone key and a single side-to-move key.
type ZobristTable struct {
	pieces [NumColors][NumSquares]uint64
	turn   uint64
}

// defaultZobrist is the table used throughout the package. Ataxx hashes
// need only be internally consistent (used for TT keys, not interop with
// other engines), so a single process-wide deterministic seed is used.
var defaultZobrist = NewZobristTable(9823710830529454)

func NewZobristTable(seed int64) *ZobristTable {
	ret := &ZobristTable{}

	r := rand.New(rand.NewSource(seed))
	for c := ZeroColor; c < NumColors; c++ {
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			ret.pieces[c][sq] = r.Uint64()
		}
	}
	ret.turn = r.Uint64()

	return ret
}

// Hash recomputes the zobrist hash of the given piece bitboards and side to
// move from scratch. Used to validate the incrementally maintained hash.
func (z *ZobristTable) Hash(pieces [NumColors]Bitboard, side Color) uint64 {
	var hash uint64
	for c := ZeroColor; c < NumColors; c++ {
		for _, sq := range pieces[c].Squares() {
			hash ^= z.pieces[c][sq]
		}
	}
	if side == Knot {
		hash ^= z.turn
	}
	return hash
}

// PieceSquare returns the key for a stone of color c on square sq.
func (z *ZobristTable) PieceSquare(c Color, sq Square) uint64 {
	return z.pieces[c][sq]
}

// SideToMove returns the key XORed in exactly when Knot is to move.
func (z *ZobristTable) SideToMove() uint64 {
	return z.turn
}
