package importer

import (
	"io"

	"centavo/internal/importer/statement"
	"centavo/internal/transaction"
)

type Service struct {
	parser Parser
}

func NewService() *Service {
	return &Service{
		parser: statement.NewParser(),
	}
}

func (s *Service) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	return s.parser.Parse(r)
}
