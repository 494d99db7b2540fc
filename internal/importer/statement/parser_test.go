package statement_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/importer/statement"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Date,Payee,Amount,Notes",
		"2024-01-05,Coffee Shop,-10.50,morning espresso",
		"2024-01-08,Employer,1500.00,",
		"",
	}, "\n")

	p := statement.NewParser()

	params, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, int64(-10500), params[0].Amount)
	assert.Equal(t, "Coffee Shop", params[0].Payee)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), params[0].Date)
	require.NotNil(t, params[0].Notes)
	assert.Equal(t, "morning espresso", *params[0].Notes)

	assert.Equal(t, int64(1500000), params[1].Amount)
	assert.Nil(t, params[1].Notes)
}

func TestParser_Parse_HeaderVariants(t *testing.T) {
	// Columns reordered and mixed case, no notes column.
	input := "AMOUNT,date,Payee\n-5.00,2024-02-01,Bakery\n"

	p := statement.NewParser()

	params, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, int64(-5000), params[0].Amount)
	assert.Equal(t, "Bakery", params[0].Payee)
}

func TestParser_Parse_EuropeanAmountsAndDates(t *testing.T) {
	input := "Date,Payee,Amount\n05-01-2024,Mercado,\"-1.234,56\"\n"

	p := statement.NewParser()

	params, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, int64(-1234560), params[0].Amount)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), params[0].Date)
}

func TestParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "MissingColumns", input: "Date,Description\n2024-01-05,whatever\n"},
		{name: "BadDate", input: "Date,Payee,Amount\nsoon,Shop,-1.00\n"},
		{name: "BadAmount", input: "Date,Payee,Amount\n2024-01-05,Shop,ten\n"},
		{name: "EmptyPayee", input: "Date,Payee,Amount\n2024-01-05, ,-1.00\n"},
		{name: "EmptyFile", input: ""},
	}

	p := statement.NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
