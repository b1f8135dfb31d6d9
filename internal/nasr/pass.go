package nasr

import (
	"bytes"
	"fmt"
	"sort"

	"airnav/internal/domain"
)

// Pass wires one parser per subscriber file, all emitting to the same
// sink. Parsers are independent; files may be processed in any order.
type Pass struct {
	parsers map[string]Parser
}

// NewPass creates the parser set for one ingestion run. Every format
// is validated here so a layout/schema arity mismatch surfaces before
// any record is read.
func NewPass(sink domain.AggregateSink) (*Pass, error) {
	p := &Pass{parsers: map[string]Parser{
		"APT.txt": NewAirportParser(sink),
		"NAV.txt": NewNavaidParser(sink),
		"AWY.txt": NewAirwayParser(sink),
		"ILS.txt": NewILSParser(sink),
	}}
	for name, parser := range p.parsers {
		if err := parser.Format().Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return p, nil
}

// ParserFor returns the parser handling the named subscriber file.
func (p *Pass) ParserFor(filename string) (Parser, bool) {
	parser, ok := p.parsers[filename]
	return parser, ok
}

// Files returns the subscriber file names this pass ingests, sorted.
func (p *Pass) Files() []string {
	names := make([]string, 0, len(p.parsers))
	for name := range p.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecordLines yields each non-empty line of a subscriber file. Lines
// are the record boundaries; a trailing carriage return is not part of
// the record.
func RecordLines(data []byte) func(yield func(rec []byte) bool) {
	return func(yield func(rec []byte) bool) {
		for _, line := range bytes.Split(data, []byte("\n")) {
			line = bytes.TrimSuffix(line, []byte("\r"))
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}
