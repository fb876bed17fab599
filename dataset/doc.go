// Package dataset loads the benchmark inputs of an fm update step from disk.
//
// Supported formats:
//
//   - flat JSON arrays of numbers, reshaped row-major into a matrix.Dense;
//   - COO JSON objects ({"row", "col", "data", "shape"}, or the alternate
//     {"indices", "indptr", "values", "shape"} spelling) turned into a
//     sparse.CSR;
//   - zip archives holding one of the above as a member.
//
// LoadReference assembles the full reference problem: it carves the label
// column out of the raw samples × (attributes+1) matrix, computes the cross
// terms X·V1 and loads V and ΔV.
package dataset
