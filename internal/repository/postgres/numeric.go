package postgres

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// numeric carries uint64 counters through NUMERIC(20,0) columns, which is the
// narrowest Postgres type that holds the full unsigned range.
type numeric uint64

// Value implements driver.Valuer.
func (n numeric) Value() (driver.Value, error) {
	return strconv.FormatUint(uint64(n), 10), nil
}

// Scan implements sql.Scanner.
func (n *numeric) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		if v < 0 {
			return fmt.Errorf("numeric: negative value %d", v)
		}
		*n = numeric(v)
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	case nil:
		return fmt.Errorf("numeric: NULL value")
	default:
		return fmt.Errorf("numeric: unsupported type %T", src)
	}
}

func (n *numeric) parse(s string) error {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("numeric: %w", err)
	}
	*n = numeric(u)
	return nil
}
