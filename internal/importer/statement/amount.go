package statement

import (
	"strings"

	"centavo/internal/money"
)

// parseAmount parses a statement amount string into milliunits. Both
// "1234.56" and the European "1.234,56" form are accepted:
// "-588,74" -> -588740, "10.50" -> 10500.
func parseAmount(s string) (int64, error) {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	return money.ParseAmount(s)
}
