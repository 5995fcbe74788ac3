package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/tomlcore/tomlcore/errs"
	"github.com/tomlcore/tomlcore/parser"
)

// Diagnose parses text and converts every diagnostic produced into an
// LSP protocol.Diagnostic. Positions are 1-based (line and column) in
// errs.Error and 0-based in LSP, so both are shifted down by one.
func Diagnose(text string) []protocol.Diagnostic {
	_, parseErrors := parser.Parse(text)
	diags := make([]protocol.Diagnostic, 0, len(parseErrors))
	for _, e := range parseErrors {
		diags = append(diags, toDiagnostic(e))
	}
	return diags
}

func toDiagnostic(e *errs.Error) protocol.Diagnostic {
	line := uint32(0)
	if e.Location.Line > 0 {
		line = uint32(e.Location.Line - 1)
	}
	col := uint32(0)
	if e.Location.Column > 0 {
		col = uint32(e.Location.Column - 1)
	}
	end := col + 1
	if e.Context != nil && e.Context.CaretLen > 0 {
		end = col + uint32(e.Context.CaretLen)
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: end},
		},
		Severity: protocol.DiagnosticSeverityError,
		Code:     e.Kind.String(),
		Source:   "tomlls",
		Message:  e.Error(),
	}
}
