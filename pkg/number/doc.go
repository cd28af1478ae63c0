// Package number implements the numeric literal encodings used by GaiaScript.
//
// Three notations are supported:
//
//   - Base64 numbers: integers written with the Base64 alphabet as base-64
//     digits, most significant first. In source text they appear as #⟨…⟩
//     literals, e.g. #⟨BA⟩ is 64.
//   - Vector numbers: ⊗-prefixed runs of Greek digit symbols (∅ α β … ι),
//     plus a handful of single-symbol constants such as ⊗π and ⊗½.
//   - Han digits: the single characters 零 through 九.
//
// For every non-negative integer n the Base64 encoding round-trips:
//
//	FromBase64(ToBase64(n)) == n
package number
