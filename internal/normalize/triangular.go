// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package normalize

// TriangularTable returns the precomputed lookup array for a triangular
// non-terminal with k rules: index i in [0, k*(k+1)/2) maps to the rule
// chosen when a uniform draw modulo k*(k+1)/2 equals i, with weights
// (k, k-1, ..., 1) biasing toward rule 0. The table is laid out as the rows
// [0], [0 1], ..., [0 .. k-1], so its first n*(n+1)/2 entries are the table
// for n rules; one table built for the grammar's largest rule count thus
// serves every triangular non-terminal. internal/emit renders this as the
// TRIANGULAR_LOOKUP_TABLE_<prefix> constant array; it is omitted entirely
// when no non-terminal has more than one rule.
func TriangularTable(k int) []int {
	if k <= 0 {
		return nil
	}
	total := k * (k + 1) / 2
	table := make([]int, 0, total)
	for row := 1; row <= k; row++ {
		for rule := 0; rule < row; rule++ {
			table = append(table, rule)
		}
	}
	return table
}
