package molkit

var atomicNumbers = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8,
	"F": 9, "Ne": 10, "Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15,
	"S": 16, "Cl": 17, "Ar": 18, "K": 19, "Ca": 20, "Ti": 22, "Cr": 24,
	"Mn": 25, "Fe": 26, "Co": 27, "Ni": 28, "Cu": 29, "Zn": 30, "Ga": 31,
	"Ge": 32, "As": 33, "Se": 34, "Br": 35, "Kr": 36, "Ag": 47, "Cd": 48,
	"Sn": 50, "Sb": 51, "Te": 52, "I": 53, "Xe": 54, "Pt": 78, "Au": 79,
	"Hg": 80, "Pb": 82, "Bi": 83,
}

// organicSubset atoms may appear outside brackets in SMILES.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// aromaticSymbols maps lowercase SMILES aromatic tokens to element symbols.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S",
	"se": "Se", "as": "As",
}

// defaultValences returns the allowed valence states of an element, adjusted
// for formal charge, in ascending order. A nil result means the element has
// no modeled valence and escapes the sanitizer's valence check.
func defaultValences(symbol string, charge int) []int {
	switch symbol {
	case "H":
		return []int{1}
	case "B":
		// Borate anions gain a bond per negative charge.
		return []int{clampValence(3 - charge)}
	case "C":
		if charge == 0 {
			return []int{4}
		}
		return []int{clampValence(4 - abs(charge))}
	case "N":
		return []int{clampValence(3 + charge)}
	case "P":
		return []int{clampValence(3 + charge), clampValence(5 + charge)}
	case "O":
		return []int{clampValence(2 + charge)}
	case "S", "Se", "Te":
		return []int{
			clampValence(2 + charge),
			clampValence(4 + charge),
			clampValence(6 + charge),
		}
	case "F", "Cl", "Br", "I":
		if charge == 0 {
			return []int{1}
		}
		return []int{clampValence(1 + charge)}
	default:
		return nil
	}
}

func clampValence(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
