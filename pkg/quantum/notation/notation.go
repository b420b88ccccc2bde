// Package notation parses and formats the two plain-text move grammars
// described in spec.md §6.3: ordinary moves ("... -> ... takes ...") and
// quantum moves ("... -> ... -> ..."). It is a boundary collaborator: it
// never consults engine state, only syntax.
package notation

import (
	"fmt"
	"regexp"

	"github.com/herohde/quantumchess/pkg/quantum/board"
	"github.com/herohde/quantumchess/pkg/quantum/engine"
)

var (
	ordinaryRE = regexp.MustCompile(`^(white|black) (pawn|knight|bishop|rook|queen|king) ([a-h][1-8]) -> ([a-h][1-8]) takes (nothing|pawn|knight|bishop|rook|queen|king)$`)
	quantumRE  = regexp.MustCompile(`^(white|black) (pawn|knight|bishop|rook|queen|king) ([a-h][1-8]) -> ([a-h][1-8]) -> ([a-h][1-8])$`)
)

// Parse recognizes a single line of input against the ordinary or quantum
// grammar and returns the corresponding engine.Move. Unparseable input
// returns an error and no move; callers should re-prompt rather than abort.
func Parse(text string) (engine.Move, error) {
	if m := ordinaryRE.FindStringSubmatch(text); m != nil {
		return parseOrdinary(m)
	}
	if m := quantumRE.FindStringSubmatch(text); m != nil {
		return parseQuantum(m)
	}
	return nil, fmt.Errorf("notation: unrecognized move: %q", text)
}

func parseOrdinary(m []string) (engine.Move, error) {
	player, _ := board.ParsePlayer(m[1])
	piece, _ := board.ParsePiece(m[2])
	source, _ := board.ParsePos(m[3])
	target, _ := board.ParsePos(m[4])
	targetPiece, _ := board.ParsePiece(m[5])

	return engine.OrdinaryMove{
		Player:      player,
		Source:      source,
		Target:      target,
		Piece:       piece,
		TargetPiece: targetPiece,
	}, nil
}

func parseQuantum(m []string) (engine.Move, error) {
	player, _ := board.ParsePlayer(m[1])
	piece, _ := board.ParsePiece(m[2])
	source, _ := board.ParsePos(m[3])
	mid, _ := board.ParsePos(m[4])
	target, _ := board.ParsePos(m[5])

	return engine.QuantumMove{
		Player: player,
		Source: source,
		Mid:    mid,
		Target: target,
		Piece:  piece,
	}, nil
}

// Format renders mv back into its canonical text form, the inverse of Parse.
func Format(mv engine.Move) string {
	switch m := mv.(type) {
	case engine.OrdinaryMove:
		return fmt.Sprintf("%v %v %v -> %v takes %v", m.Player, m.Piece, m.Source, m.Target, takesClause(m.TargetPiece))
	case engine.QuantumMove:
		return fmt.Sprintf("%v %v %v -> %v -> %v", m.Player, m.Piece, m.Source, m.Mid, m.Target)
	default:
		return fmt.Sprintf("%v", mv)
	}
}

func takesClause(p board.Piece) string {
	if p == board.Empty {
		return "nothing"
	}
	return p.String()
}
