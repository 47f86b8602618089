// Package alembic wraps the alembic command-line tool and its ini
// configuration file.
//
// The package treats alembic as an opaque subprocess: it builds commands of
// the shape `alembic -c <ini> [--name <database>] <args>`, parses the textual
// output of `current` and `history`, and drives `upgrade --sql` for offline
// SQL generation. Multi-database projects are supported by reading the
// configured database names out of alembic.ini, either from an explicit
// `databases` key in the [alembic] section or from sections that carry a
// `sqlalchemy.url` setting.
package alembic
