package assemble

import "strings"

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	pairs := []string{"AT", "CG", "RY", "KM", "BV", "DH"}
	for _, p := range pairs {
		for _, c := range []string{p, strings.ToLower(p)} {
			complement[c[0]], complement[c[1]] = c[1], c[0]
		}
	}
	complement['U'], complement['u'] = 'A', 'a'
}

// ReverseComplement returns the reverse complement of seq using IUPAC
// nucleotide codes. Case is preserved; bytes that are not nucleotide codes
// (including N, S and W, which are their own complement) are kept as is.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		out[len(seq)-1-i] = complement[c]
	}
	return out
}
