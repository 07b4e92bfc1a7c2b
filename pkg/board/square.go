package board

import "fmt"

// Square represents a square on the 7x7 Ataxx grid, ordered A1=0, B1=1, .., G1=6,
// A2=7, .., G7=48. This numbering matches a 49-bit bitboard interpretation: bit i
// represents square i for i < 49.
//
//	A7 = 42, B7 = 43, C7 = 44, D7 = 45, E7 = 46, F7 = 47, G7 = 48,
//	A6 = 35, B6 = 36, C6 = 37, D6 = 38, E6 = 39, F6 = 40, G6 = 41,
//	A5 = 28, B5 = 29, C5 = 30, D5 = 31, E5 = 32, F5 = 33, G5 = 34,
//	A4 = 21, B4 = 22, C4 = 23, D4 = 24, E4 = 25, F4 = 26, G4 = 27,
//	A3 = 14, B3 = 15, C3 = 16, D3 = 17, E3 = 18, F3 = 19, G3 = 20,
//	A2 =  7, B2 =  8, C2 =  9, D2 = 10, E2 = 11, F2 = 12, G2 = 13,
//	A1 =  0, B1 =  1, C1 =  2, D1 =  3, E1 =  4, F1 =  5, G1 =  6
//
// A square is a bit-index into the bitboard layout. 6 bits.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1

	A2
	B2
	C2
	D2
	E2
	F2
	G2

	A3
	B3
	C3
	D3
	E3
	F3
	G3

	A4
	B4
	C4
	D4
	E4
	F4
	G4

	A5
	B5
	C5
	D5
	E5
	F5
	G5

	A6
	B6
	C6
	D6
	E6
	F6
	G6

	A7
	B7
	C7
	D7
	E7
	F7
	G7
)

// Null is the sentinel square used to encode a pass/null move.
const Null Square = 49

// Iteration helpers to enable "for i := ZeroSquare; i<NumSquares; i++".
const (
	ZeroSquare Square = 0
	NumSquares Square = 49
)

func NewSquare(f File, r Rank) Square {
	return Square(r)*Square(NumFiles) + Square(f)
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %v", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %v", r)
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

func (s Square) IsValid() bool {
	return s < NumSquares
}

func (s Square) Rank() Rank {
	return Rank(int(s) / NumFiles.V())
}

func (s Square) File() File {
	return File(int(s) % NumFiles.V())
}

func (s Square) String() string {
	if s == Null {
		return "0000"
	}
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// Rank represents an Ataxx board rank from Rank1=0, ..Rank7=6. 3 bits.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
)

const (
	ZeroRank Rank = 0
	NumRanks Rank = 7
)

func ParseRank(r rune) (Rank, bool) {
	if r < '1' || r > '7' {
		return 0, false
	}
	return Rank(r - '1'), true
}

func (r Rank) IsValid() bool {
	return r < NumRanks
}

func (r Rank) V() int {
	return int(r)
}

func (r Rank) String() string {
	return fmt.Sprintf("%v", int(r)+1)
}

// File represents an Ataxx board file from FileA=0, ..FileG=6. 3 bits.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
)

const (
	ZeroFile File = 0
	NumFiles File = 7
)

func ParseFile(r rune) (File, bool) {
	switch r {
	case 'a', 'A':
		return FileA, true
	case 'b', 'B':
		return FileB, true
	case 'c', 'C':
		return FileC, true
	case 'd', 'D':
		return FileD, true
	case 'e', 'E':
		return FileE, true
	case 'f', 'F':
		return FileF, true
	case 'g', 'G':
		return FileG, true
	default:
		return 0, false
	}
}

func (f File) IsValid() bool {
	return f < NumFiles
}

func (f File) V() int {
	return int(f)
}

func (f File) String() string {
	return string(rune('a' + int(f)))
}
