package sql

import (
	_ "modernc.org/sqlite"
)
