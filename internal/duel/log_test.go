package duel

import "testing"

func TestClassifyLine(t *testing.T) {
	const jugador = "Obi-Wan Kenobi"
	const oponente = "Jango Fett"

	cases := []struct {
		line string
		want LineKind
	}{
		{"¡Comienza la batalla entre Obi-Wan Kenobi y Jango Fett!", LineSystem},
		{"¡Obi-Wan Kenobi ha ganado la batalla!", LineSystem},
		{"Jango Fett ha esquivado el ataque!", LineDodge},
		{"Obi-Wan Kenobi ha esquivado el ataque especial!", LineDodge},
		{"Obi-Wan Kenobi ataca a Jango Fett y causa 27 de daño.", LinePlayer},
		{"Jango Fett usa su habilidad especial contra Obi-Wan Kenobi y causa 44 de daño.", LineOpponent},
		{"Algo inesperado ocurre.", LinePlain},
	}
	for _, tc := range cases {
		if got := ClassifyLine(tc.line, jugador, oponente); got != tc.want {
			t.Fatalf("ClassifyLine(%q): want %v, got %v", tc.line, tc.want, got)
		}
	}
}

func TestDisplayLogIsMostRecentFirst(t *testing.T) {
	in := []string{"primera", "segunda", "tercera"}
	got := DisplayLog(in)

	want := []string{"tercera", "segunda", "primera"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: want %q, got %q (full: %v)", i, want[i], got[i], got)
		}
	}
	if in[0] != "primera" {
		t.Fatalf("input slice mutated: %v", in)
	}
}
