package migration

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// assignmentLexer tokenizes a single top-level Python assignment line.
	// Only literal values are representable: strings, None, and tuples/lists
	// of strings. Anything else fails to lex or parse and falls through to
	// the regex stage.
	assignmentLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[=(),\[\]]`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
	})

	assignmentParser = participle.MustBuild[assignment](
		participle.Lexer(assignmentLexer),
		participle.Elide("Comment", "Whitespace"),
	)

	reRevisionAssign  = regexp.MustCompile(`(?m)^revision\s*=\s*["']([^"']+)["']`)
	reRevisionComment = regexp.MustCompile(`(?m)^Revision ID:\s*([a-f0-9]+)`)
	reDownAssign      = regexp.MustCompile(`(?m)^down_revision\s*=\s*(.+)`)
	reRevisesComment  = regexp.MustCompile(`(?m)^Revises:\s*(.+)`)
	reQuotedHex       = regexp.MustCompile(`["']([a-f0-9]+)["']`)
	reBareHex         = regexp.MustCompile(`[a-f0-9]{12,}`)
)

type (
	// assignment is the participle grammar for `name = <literal>` lines.
	assignment struct {
		Name  string  `parser:"@Ident '='"`
		Value literal `parser:"@@"`
	}

	literal struct {
		Str  *string  `parser:"@String"`
		None bool     `parser:"| @'None'"`
		Seq  *seqExpr `parser:"| @@"`
	}

	seqExpr struct {
		Items []string `parser:"( '(' ( @String ( ',' @String )* ','? )? ')' ) | ( '[' ( @String ( ',' @String )* ','? )? ']' )"`
	}
)

// Parse extracts revision metadata from the content of one migration file.
//
// The parse runs an ordered list of strategies, first result wins:
//
//  1. Structured parse of top-level `revision` / `down_revision` assignments
//     with literal right-hand sides (strings, None, tuples or lists of
//     strings). Computed expressions are not recognized at this stage.
//  2. Regex fallback for the revision: a quoted `revision = "..."` assignment,
//     then the `Revision ID: <hex>` comment emitted by Alembic templates.
//  3. Regex fallback for the down-revision (only when stage 1 did not resolve
//     one): a `down_revision = ...` assignment, then the `Revises: ...`
//     comment, including tuple forms for merge migrations.
//
// A file yielding no revision by any strategy is not a migration; Parse
// returns ok=false rather than an error so callers can skip it.
//
// Example usage:
//
//	content, _ := os.ReadFile("migrations/versions/abc123_add_users.py")
//	rec, ok := migration.Parse("migrations/versions/abc123_add_users.py", content)
//	if !ok {
//		return // not a migration file
//	}
//	fmt.Println(rec.Revision, rec.Parents())
func Parse(path string, content []byte) (*Record, bool) {
	text := string(content)

	revision, down, downResolved := parseAssignments(text)

	if revision == "" {
		if m := reRevisionAssign.FindStringSubmatch(text); m != nil {
			revision = m[1]
		} else if m := reRevisionComment.FindStringSubmatch(text); m != nil {
			revision = m[1]
		}
	}

	if revision == "" {
		return nil, false
	}

	if !downResolved {
		down = parseDownFallback(text)
	}

	return &Record{
		Revision:   revision,
		Down:       down,
		SourcePath: path,
	}, true
}

// parseAssignments runs the structured stage over every top-level assignment
// line. The boolean result reports whether a down-revision was resolved at
// this stage; an explicit `down_revision = None` counts as resolved (absent),
// while a missing or non-literal assignment does not.
func parseAssignments(content string) (string, []string, bool) {
	var (
		revision string
		down     []string
		resolved bool
	)

	for _, line := range strings.Split(content, "\n") {
		// Top-level assignments only: no leading whitespace.
		if !strings.HasPrefix(line, "revision") && !strings.HasPrefix(line, "down_revision") {
			continue
		}

		a, err := assignmentParser.ParseString("", line)
		if err != nil {
			continue
		}

		switch a.Name {
		case "revision":
			if a.Value.Str != nil {
				revision = unquote(*a.Value.Str)
			}
		case "down_revision":
			switch {
			case a.Value.Str != nil:
				down = []string{unquote(*a.Value.Str)}
				resolved = true
			case a.Value.None:
				down = nil
				resolved = true
			case a.Value.Seq != nil:
				items := make([]string, 0, len(a.Value.Seq.Items))
				for _, item := range a.Value.Seq.Items {
					if v := unquote(item); v != "" {
						items = append(items, v)
					}
				}
				if len(items) == 0 {
					items = nil // empty tuple normalizes to absent
				}
				down = items
				resolved = true
			}
		}
	}

	return revision, down, resolved
}

// parseDownFallback extracts down-revisions textually, mirroring the shapes
// Alembic writes into migration files and their doc comments.
func parseDownFallback(content string) []string {
	if m := reDownAssign.FindStringSubmatch(content); m != nil {
		value := strings.TrimSpace(m[1])

		switch {
		case value == "None":
			return nil
		case strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "'"):
			return []string{strings.Trim(value, `"'`)}
		case strings.HasPrefix(value, "(") || strings.HasPrefix(value, "["):
			return quotedHexList(value)
		}
		// Non-literal right-hand side; try the comment form instead.
	}

	if m := reRevisesComment.FindStringSubmatch(content); m != nil {
		value := strings.TrimSpace(m[1])
		if value == "" {
			return nil
		}

		if strings.Contains(value, "(") && strings.Contains(value, ")") {
			if revs := quotedHexList(value); revs != nil {
				return revs
			}
			// No quoted identifiers inside the parens; accept bare hex runs.
			return reBareHex.FindAllString(value, -1)
		}

		// Hand-written comments are accepted verbatim, identifier-shaped or not.
		return []string{value}
	}

	return nil
}

func quotedHexList(value string) []string {
	matches := reQuotedHex.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return nil
	}

	revs := make([]string, 0, len(matches))
	for _, m := range matches {
		revs = append(revs, m[1])
	}

	return revs
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}

	return s
}
