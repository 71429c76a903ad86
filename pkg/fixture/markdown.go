package fixture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/yaklabco/gocfail/internal/logging"
)

// extractedFilePermissions is the file mode for extracted doc fixtures.
const extractedFilePermissions = 0644

// ExtractOptions controls doc-fixture extraction.
type ExtractOptions struct {
	// Language is the enry language name a fenced block must match to be
	// extracted. Blocks with a matching info-string alias qualify;
	// untagged blocks qualify when enry detects the language from their
	// content. When empty, every block with an info string is extracted.
	Language string

	// Extension is the file extension given to extracted fixtures,
	// with leading dot.
	Extension string
}

// ExtractMarkdown extracts the fenced code blocks of one Markdown file
// into standalone fixture files under destDir. Expectation annotations
// inside a block refer to lines within that block, so each block is a
// self-contained fixture.
//
// Doc fixtures are named "<doc path>#<n>" with n counting qualifying
// blocks from 1. The full path keeps names and extracted files distinct
// when several docs share a base name (a/README.md, b/README.md).
func ExtractMarkdown(ctx context.Context, docPath, destDir string, opts ExtractOptions) ([]Fixture, error) {
	logger := logging.FromContext(ctx)

	source, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("read doc %s: %w", docPath, err)
	}

	doc := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	docName := filepath.ToSlash(filepath.Clean(docPath))
	stem := sanitizeStem(docName)

	var fixtures []Fixture
	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		content := blockContent(block, source)
		info := string(block.Language(source))
		if !blockQualifies(info, content, opts.Language) {
			return ast.WalkContinue, nil
		}

		index := len(fixtures) + 1
		name := fmt.Sprintf("%s#%d", docName, index)
		path := filepath.Join(destDir, fmt.Sprintf("%s.block%03d%s", stem, index, opts.Extension))

		if err := os.WriteFile(path, content, extractedFilePermissions); err != nil {
			return ast.WalkStop, fmt.Errorf("write doc fixture %s: %w", path, err)
		}

		logger.Debug("extracted doc fixture",
			logging.FieldDoc, docPath,
			logging.FieldBlock, index,
			logging.FieldPath, path,
		)
		fixtures = append(fixtures, Fixture{Name: name, Path: path})
		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return fixtures, nil
}

// sanitizeStem flattens a doc path into a file-name stem: extension
// dropped, separators and drive colons replaced.
func sanitizeStem(docName string) string {
	stem := strings.TrimSuffix(docName, filepath.Ext(docName))
	return strings.NewReplacer("/", "_", ":", "_").Replace(stem)
}

// blockContent reassembles the raw text of a fenced block.
func blockContent(block *ast.FencedCodeBlock, source []byte) []byte {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.Bytes()
}

// blockQualifies decides whether a fenced block is a fixture of the wanted
// language.
func blockQualifies(info string, content []byte, want string) bool {
	if want == "" {
		return info != ""
	}

	if info != "" {
		canonical, ok := enry.GetLanguageByAlias(info)
		return ok && canonical == want
	}

	// Untagged block: fall back to content detection.
	return enry.GetLanguage("block", content) == want
}
