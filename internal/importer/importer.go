package importer

import (
	"io"

	"centavo/internal/transaction"
)

// Parser turns a statement file into transaction params. The account is
// not part of the file; the caller binds the rows to one afterwards.
type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
