package model

// MonthlyCounts holds one count per calendar month, January first
type MonthlyCounts [12]int64

// Total sums all months
func (m MonthlyCounts) Total() int64 {
	var total int64
	for _, c := range m {
		total += c
	}
	return total
}
